// Package llm is the HTTP client for the external LLM workflow provider.
// It owns the provider's exact field names; the rest of the system talks in
// domain types and stays insulated from API evolution.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TransportError is a non-2xx status or decode failure from the provider.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// ClientConfig configures a provider client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	// Timeout bounds the single round trip. The hosting platform imposes a
	// hard wall-clock ceiling, so this must stay configurable per flow.
	Timeout time.Duration
	// RequestsPerSecond paces outbound calls; zero disables pacing.
	RequestsPerSecond float64
}

// Client calls the provider's blocking chat and workflow endpoints.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a provider client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL != "" && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// HasCredentials reports whether an API key is configured. An absent key is
// a recognized configuration state, not a transport error; callers decide
// what to do with it (the review flow serves its demo payload).
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// ChatRequest is the chat-messages call shape.
type ChatRequest struct {
	Query          string            `json:"query"`
	Inputs         map[string]string `json:"inputs"`
	ResponseMode   string            `json:"response_mode"`
	User           string            `json:"user"`
	ConversationID string            `json:"conversation_id,omitempty"`
}

// ChatReply is the subset of the chat answer the orchestrator consumes. The
// answer text is transient: it is handed to the extractor and never stored.
type ChatReply struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

// FileRef attaches an uploaded file to a workflow run.
type FileRef struct {
	Type           string `json:"type"`
	TransferMethod string `json:"transfer_method"`
	URL            string `json:"url,omitempty"`
	UploadFileID   string `json:"upload_file_id,omitempty"`
}

// WorkflowRequest is the workflows/run call shape.
type WorkflowRequest struct {
	Inputs       map[string]string `json:"inputs"`
	ResponseMode string            `json:"response_mode"`
	User         string            `json:"user"`
	Files        []FileRef         `json:"files,omitempty"`
}

// WorkflowReply carries the workflow's keyed output bag.
type WorkflowReply struct {
	Data struct {
		Outputs map[string]interface{} `json:"outputs"`
	} `json:"data"`
}

// ChatMessage performs one blocking chat turn.
func (c *Client) ChatMessage(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	req.ResponseMode = "blocking"

	var reply ChatReply
	if err := c.post(ctx, "/chat-messages", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// RunWorkflow performs one blocking workflow run.
func (c *Client) RunWorkflow(ctx context.Context, req WorkflowRequest) (*WorkflowReply, error) {
	req.ResponseMode = "blocking"

	var reply WorkflowReply
	if err := c.post(ctx, "/workflows/run", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter interrupted: %w", err)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("provider call completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}
