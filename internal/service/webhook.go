package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/net/publicsuffix"
)

// RequestNotifier is told about newly created funds requests. Delivery is
// best effort: a failed notification never fails the request itself.
type RequestNotifier interface {
	NotifyNewRequest(ctx context.Context, payload NewRequestPayload) error
}

// NewRequestPayload is the JSON body posted to the notification sink.
type NewRequestPayload struct {
	Folio    string  `json:"folio"`
	ClientID string  `json:"cliente_id"`
	Kind     string  `json:"tipo"`
	Amount   float64 `json:"monto"`
	Status   string  `json:"status"`
}

// WebhookConfig configures the outbound notification sink.
type WebhookConfig struct {
	// URL is the sink endpoint. Its host must fall under one of
	// AllowedDomains (registered-domain match).
	URL            string
	AllowedDomains []string
	// AckExpr is an optional JMESPath expression evaluated against the
	// sink's JSON response; AckValue is the string it must yield.
	AckExpr  string
	AckValue string
	Timeout  time.Duration
	// Headers are added verbatim to every delivery (e.g. an auth token).
	Headers map[string]string
}

// WebhookNotifier posts new-request notifications to a single HTTP sink.
type WebhookNotifier struct {
	url      string
	ackExpr  string
	ackValue string
	headers  map[string]string
	client   *http.Client
}

// NewWebhookNotifier validates the sink configuration and returns a notifier.
// The URL host is checked against the allow-list by registered domain, so
// "hooks.example.com" is covered by "example.com" but "evilexample.com" is not.
func NewWebhookNotifier(cfg WebhookConfig) (*WebhookNotifier, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid sink URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid sink URL scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Hostname()) == "" {
		return nil, errors.New("sink URL has no host")
	}
	if !hostAllowed(u.Hostname(), cfg.AllowedDomains) {
		return nil, fmt.Errorf("sink host %s is not allow-listed", u.Hostname())
	}
	if cfg.AckExpr != "" {
		if _, err := jmespath.Compile(cfg.AckExpr); err != nil {
			return nil, fmt.Errorf("invalid ack expression: %w", err)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:      cfg.URL,
		ackExpr:  cfg.AckExpr,
		ackValue: cfg.AckValue,
		headers:  cfg.Headers,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// NotifyNewRequest delivers one notification and verifies the sink's ack.
func (n *WebhookNotifier) NotifyNewRequest(ctx context.Context, payload NewRequestPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read sink response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}

	if n.ackExpr == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("sink response is not JSON: %w", err)
	}
	got, err := jmespath.Search(n.ackExpr, parsed)
	if err != nil {
		return fmt.Errorf("evaluate ack expression: %w", err)
	}
	if fmt.Sprintf("%v", got) != n.ackValue {
		return fmt.Errorf("sink ack mismatch: got %v, want %s", got, n.ackValue)
	}
	return nil
}

// hostAllowed matches a host against allow-listed patterns by registered
// domain (eTLD+1) so subdomains of an allowed domain pass.
func hostAllowed(host string, allowed []string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	hostETLD := registeredDomain(host)
	for _, pattern := range allowed {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if host == pattern {
			return true
		}
		if hostETLD != "" && hostETLD == registeredDomain(pattern) {
			return true
		}
	}
	return false
}

func registeredDomain(host string) string {
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return etld1
}
