package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quiz-platform/internal/app"
)

// tokenHeader carries the pre-shared internal secret between services.
const tokenHeader = "X-Internal-Token"

// BridgeClient is the quiz service's client for the user service's internal
// endpoints. One long-lived client is constructed at startup.
type BridgeClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewBridgeClient(baseURL, token string, timeout time.Duration) *BridgeClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BridgeClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// PushResult posts a computed result to the internal ingestion endpoint.
func (c *BridgeClient) PushResult(ctx context.Context, push app.ResultPush) error {
	return c.post(ctx, "/internal/results", push)
}

// NotifyQuizPending tells the user service a quiz awaits review.
func (c *BridgeClient) NotifyQuizPending(ctx context.Context, quizID, title string) error {
	payload := map[string]string{"quiz_id": quizID, "title": title}
	return c.post(ctx, "/internal/quizzes/pending", payload)
}

func (c *BridgeClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, snippet)
	}
	return nil
}
