// Package adapters provides implementations for external service integrations.
package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// assistantRequest is the wire request of the hosted chat endpoint.
type assistantRequest struct {
	Message   string `json:"message"`
	ImageData string `json:"imageData,omitempty"`
}

// assistantResponse tolerates both field names the endpoint has used
// for its answer.
type assistantResponse struct {
	Reply   string `json:"reply"`
	Message string `json:"message"`
}

// AssistantClient implements the adapter.AssistantService against a
// plain HTTP chat endpoint.
type AssistantClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewAssistantClient creates a new assistant client instance.
func NewAssistantClient(endpoint string, timeout time.Duration) *AssistantClient {
	return &AssistantClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsAvailable checks if the client is configured with an endpoint.
func (c *AssistantClient) IsAvailable() bool {
	return c.endpoint != ""
}

// Reply posts the message (and the image, base64 encoded) to the chat
// endpoint and returns the reply text.
func (c *AssistantClient) Reply(ctx context.Context, message string, imageData []byte) (string, error) {
	if !c.IsAvailable() {
		return "", fmt.Errorf("assistant endpoint is not configured")
	}

	payload := assistantRequest{Message: message}
	if len(imageData) > 0 {
		payload.ImageData = base64.StdEncoding.EncodeToString(imageData)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read assistant response: %w", err)
	}

	var parsed assistantResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse assistant response: %w", err)
	}
	if parsed.Reply != "" {
		return parsed.Reply, nil
	}
	return parsed.Message, nil
}
