package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"kbbridge/clients"
)

// Response bodies are drained up to this size so the connection can be reused.
const maxDrainBytes = 64 << 10

// WebhookClient implements the clients.WebhookClient interface
type WebhookClient struct {
	httpClient *http.Client
	url        string
}

// NewWebhookClient creates a client that posts to url. The http client's own
// timeout, if any, applies on top of the caller's context deadline.
func NewWebhookClient(httpClient *http.Client, url string) clients.WebhookClient {
	return &WebhookClient{
		httpClient: httpClient,
		url:        url,
	}
}

// PostJSON sends body once. A non-2xx status is not an error: the status code is
// returned for the caller to interpret.
func (c *WebhookClient) PostJSON(ctx context.Context, body any, headers map[string]string) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute webhook request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, nil
}
