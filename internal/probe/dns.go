package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"
)

// DNSClass buckets a resolution attempt. Used to annotate logs when a probe
// fails at the network level, so an operator can tell "service down" from
// "name does not resolve".
type DNSClass string

const (
	DNSResolves DNSClass = "resolves"
	DNSNXDomain DNSClass = "nxdomain"
	DNSServFail DNSClass = "servfail_or_timeout"
	DNSInvalid  DNSClass = "invalid_name"
)

var dnsTimeout = 3 * time.Second

// ClassifyDNS resolves the host of rawURL with the OS resolver.
func ClassifyDNS(ctx context.Context, rawURL string) DNSClass {
	host := extractHost(rawURL)
	if host == "" {
		return DNSInvalid
	}

	cctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	r := &net.Resolver{}
	ips, err := r.LookupIP(cctx, "ip", host)
	if err == nil && len(ips) > 0 {
		return DNSResolves
	}

	var de *net.DNSError
	if errors.As(err, &de) && de.IsNotFound {
		return DNSNXDomain
	}
	return DNSServFail
}

func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
