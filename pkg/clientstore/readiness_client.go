package clientstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const readinessPath = "/api/readiness-assessment"

// ReadinessClient fetches and saves the readiness assessment on the server.
type ReadinessClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewReadinessClient targets baseURL (scheme and host, no trailing path).
// A nil hc uses http.DefaultClient.
func NewReadinessClient(baseURL, token string, hc *http.Client, log zerolog.Logger) *ReadinessClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &ReadinessClient{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc, log: log}
}

// Fetch returns the stored assessment. Any failure is logged and yields {}.
func (c *ReadinessClient) Fetch(ctx context.Context) json.RawMessage {
	doc, err := c.fetch(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("fetch readiness assessment")
		return json.RawMessage(`{}`)
	}
	return doc
}

func (c *ReadinessClient) fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch readiness assessment: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("readiness assessment response is not json")
	}
	return json.RawMessage(bytes.TrimSpace(body)), nil
}

// Push saves doc on the server.
func (c *ReadinessClient) Push(ctx context.Context, doc json.RawMessage) error {
	req, err := c.newRequest(ctx, http.MethodPut, bytes.NewReader(doc))
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push readiness assessment: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("push readiness assessment: status %d", resp.StatusCode)
	}
	return nil
}

func (c *ReadinessClient) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+readinessPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
