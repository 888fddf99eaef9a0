// Package slack is the chat transport: a Socket Mode gateway for inbound
// events and a minimal Web API client for outbound messages.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/asalehi100/ibm-techxchange-hack/internal/httpx"
)

const DefaultAPIBase = "https://slack.com/api"

type Client struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
	appToken   string
}

func NewClient(httpClient *http.Client, botToken, appToken string) *Client {
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	return &Client{
		httpClient: httpClient,
		apiBase:    DefaultAPIBase,
		botToken:   botToken,
		appToken:   appToken,
	}
}

// apiResponse is the common Web API envelope; Slack reports failures with
// HTTP 200 and ok=false.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	URL   string `json:"url"`
}

// ConnectionsOpen requests a fresh Socket Mode websocket URL using the
// app-level token.
func (c *Client) ConnectionsOpen(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/apps.connections.open", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.appToken)

	parsed, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("apps.connections.open failed: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("apps.connections.open returned no url")
	}
	return parsed.URL, nil
}

// PostMessage sends one threaded reply with the bot token.
func (c *Client) PostMessage(ctx context.Context, channel, threadTS, text string) error {
	reqBody, err := json.Marshal(map[string]string{
		"channel":   channel,
		"thread_ts": threadTS,
		"text":      text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/chat.postMessage", bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("chat.postMessage failed: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiResponse{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiResponse{}, &httpx.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiResponse{}, fmt.Errorf("decode failed: %w (body=%s)", err, strings.TrimSpace(string(body)))
	}
	if !parsed.OK {
		return apiResponse{}, fmt.Errorf("slack api error: %s", parsed.Error)
	}
	return parsed, nil
}

// SetAPIBase overrides the Web API base URL; used by tests.
func (c *Client) SetAPIBase(u string) { c.apiBase = strings.TrimRight(u, "/") }
