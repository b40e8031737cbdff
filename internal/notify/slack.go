package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

func (s *Slack) Notify(ctx context.Context, ev Event) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}

	title := "🔴 Service DOWN: " + ev.Service
	if !ev.Down {
		title = "🟢 Service RECOVERED: " + ev.Service
	}

	detail := ev.Result.Error
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d", ev.Result.HTTPStatus)
	}
	text := fmt.Sprintf(
		"*%s*\nURL: %s\nStatus: %s\nDetail: %s\nLatency: %d ms\nChecked: %s",
		title, ev.URL, ev.Result.Status, detail, ev.Result.DurationMS,
		ev.At.Format(time.RFC3339),
	)

	body, _ := json.Marshal(slackPayload{Text: text})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("slack non-2xx")
	}
	return nil
}
