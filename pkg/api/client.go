package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 60 * time.Second

	chatPath = "/api/chat"
)

// ErrInvalidCredential reports that the completion service rejected the
// API key. Callers must clear the stored credential and ask for a new one.
var ErrInvalidCredential = errors.New("completion service rejected the API key")

// Client talks to the completion service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a completion service client.
func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent: "dashchat/1.0",
	}
}

// SetTimeout configures the HTTP client timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Send dispatches one chat turn and classifies failures: a 401 status or
// an error body mentioning an invalid key maps to ErrInvalidCredential,
// everything else is a transport-class error.
func (c *Client) Send(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	slog.Debug("api_request",
		"url", c.BaseURL+chatPath,
		"intent", req.Intent,
		"api_key", maskKey(req.APIKey),
		"message_length", len(req.Message),
		"page_dom_length", len(req.PageDOM))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+chatPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		slog.Error("api_request_failed", "error", err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	slog.Debug("api_response", "status_code", resp.StatusCode, "response_size", len(body))

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &chatResp, nil
}

func classifyError(statusCode int, body []byte) error {
	var apiErr APIError
	message := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message = apiErr.Error.Message
	}

	if statusCode == http.StatusUnauthorized || mentionsInvalidKey(message) {
		slog.Warn("api_auth_rejected", "status_code", statusCode, "message", message)
		if message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidCredential, message)
		}
		return ErrInvalidCredential
	}

	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	slog.Error("api_error_status", "status_code", statusCode, "response_preview", preview)

	if message != "" {
		return fmt.Errorf("completion service error (%d): %s", statusCode, message)
	}
	return fmt.Errorf("completion service error (%d)", statusCode)
}

func mentionsInvalidKey(message string) bool {
	lowered := strings.ToLower(message)
	return strings.Contains(lowered, "invalid api key") ||
		strings.Contains(lowered, "invalid key") ||
		strings.Contains(lowered, "incorrect api key")
}

func maskKey(key string) string {
	if len(key) > 8 {
		return key[:4] + "..." + key[len(key)-4:]
	}
	return ""
}
