package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/beevik/etree"

	"github.com/apex-meme-lord/ewsclient/ews"
)

// Connection posts SOAP documents to an Exchange endpoint over HTTP. It
// implements ews.Transport and owns authentication, TLS settings and the
// retry policy.
type Connection struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
	authUser   string
}

var _ ews.Transport = (*Connection)(nil)

// NewConnection builds a connection from a validated config. A nil logger
// falls back to slog.Default.
func NewConnection(cfg *Config, logger *slog.Logger) (*Connection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("connection config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var transport http.RoundTripper = &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}
	if cfg.AuthType == AuthNTLM {
		transport = ntlmssp.Negotiator{RoundTripper: transport}
	}

	return &Connection{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger:   logger,
		authUser: cfg.AuthUsername(),
	}, nil
}

// Send posts the request document and parses the response into a
// document. Transient failures are retried with linear backoff up to
// MaxRetries; the last error is returned when every attempt fails.
func (c *Connection) Send(ctx context.Context, doc *etree.Document) (*etree.Document, error) {
	payload, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize SOAP request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * time.Second
			c.logger.Warn("retrying EWS request", "attempt", attempt, "wait", wait, "err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		response, err := c.post(ctx, payload)
		if err == nil {
			return response, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed after %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *Connection) post(ctx context.Context, payload []byte) (*etree.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ServerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.SetBasicAuth(c.authUser, c.config.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("EWS server returned status %d: %s", resp.StatusCode, string(body))
	}

	response := etree.NewDocument()
	if _, err := response.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("parse SOAP response: %w", err)
	}
	return response, nil
}
