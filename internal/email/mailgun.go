// Package email sends transactional email through the Mailgun HTTP API.
package email

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrRejected marks a failure the provider will not accept on retry
// (malformed address, suppressed recipient, bad domain).
var ErrRejected = errors.New("email rejected by provider")

type Client struct {
	apiKey     string
	domain     string
	fromEmail  string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = u
	}
}

func NewClient(apiKey, domain, fromEmail string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		domain:     domain,
		fromEmail:  fromEmail,
		baseURL:    "https://api.mailgun.net/v3",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Send delivers one email. A 4xx response is a permanent rejection; a 5xx
// or transport error is transient and safe to retry.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing api key")
	}

	form := url.Values{}
	form.Set("from", c.fromEmail)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("html", htmlBody)
	if textBody != "" {
		form.Set("text", textBody)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode < 500 {
			return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("mailgun API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
