package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// Client posts chat completion payloads to a hosted inference endpoint.
type Client struct {
	URL     string
	Token   string
	Timeout time.Duration // Zero means no per-request deadline
	client  *http.Client
}

// NewClient creates a new LLM client for the full endpoint URL.
func NewClient(url, token string, timeout time.Duration) *Client {
	return &Client{
		URL:     url,
		Token:   token,
		Timeout: timeout,
		client:  http.DefaultClient,
	}
}

// Query sends one payload and returns the outcome.
// Transport, status and shape failures are all reported through Response.Error;
// Query never returns an error to the caller.
func (c *Client) Query(ctx context.Context, payload Payload) Response {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Failure(fmt.Sprintf("failed to marshal request: %v", err), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return Failure(fmt.Sprintf("failed to create request: %v", err), nil)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Failure(fmt.Sprintf("failed to send request: %v", err), nil)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(fmt.Sprintf("failed to read response: %v", err), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failure(fmt.Sprintf("bad status %d: %s", resp.StatusCode, string(raw)), raw)
	}

	return parseResponse(raw)
}

// parseResponse turns a 2xx body into a Response. Only the presence of
// "choices" is checked; any other shape is a failure shown verbatim.
func parseResponse(raw []byte) Response {
	if !gjson.ValidBytes(raw) {
		return Failure(fmt.Sprintf("failed to decode response: %s", string(raw)), raw)
	}

	if !gjson.GetBytes(raw, "choices").Exists() {
		if msg := gjson.GetBytes(raw, "error"); msg.Exists() {
			if msg.IsObject() && msg.Get("message").Exists() {
				return Failure(msg.Get("message").String(), raw)
			}
			return Failure(msg.String(), raw)
		}
		return Failure(string(raw), raw)
	}

	var parsed struct {
		Choices []Choice `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Failure(fmt.Sprintf("failed to decode response: %v", err), raw)
	}
	if len(parsed.Choices) == 0 {
		return Failure("no choices returned", raw)
	}

	return Response{Choices: parsed.Choices, Raw: raw}
}
