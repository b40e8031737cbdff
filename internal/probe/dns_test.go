package probe

import (
	"context"
	"testing"
)

func TestClassifyDNS_InvalidURL(t *testing.T) {
	if cls := ClassifyDNS(context.Background(), "://not-a-url"); cls != DNSInvalid {
		t.Fatalf("want invalid_name, got %q", cls)
	}
}

func TestExtractHost(t *testing.T) {
	cases := map[string]string{
		"https://auth.example.com:8443/health": "auth.example.com",
		"http://localhost:8000/health":         "localhost",
		"://broken":                            "",
	}
	for in, want := range cases {
		if got := extractHost(in); got != want {
			t.Fatalf("extractHost(%q) = %q, want %q", in, got, want)
		}
	}
}
