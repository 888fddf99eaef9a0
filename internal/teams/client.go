// Package teams creates Microsoft Teams online meetings through the Graph
// API. Auth is the client-credentials flow (no interactive login), so the
// organizer the meetings are created for must be configured explicitly.
package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/asalehi100/ibm-techxchange-hack/internal/httpx"
)

const (
	DefaultGraphBaseURL = "https://graph.microsoft.com"

	graphScope        = "https://graph.microsoft.com/.default"
	tokenURLTemplate  = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	maxGraphBodyBytes = 1024 * 1024
)

type Client struct {
	httpClient  *http.Client
	baseURL     string
	organizerID string
	tokens      oauth2.TokenSource
}

func NewClient(httpClient *http.Client, tenantID, clientID, clientSecret, organizerID string) *Client {
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf(tokenURLTemplate, url.PathEscape(tenantID)),
		Scopes:       []string{graphScope},
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	return &Client{
		httpClient:  httpClient,
		baseURL:     DefaultGraphBaseURL,
		organizerID: organizerID,
		tokens:      cc.TokenSource(tokenCtx),
	}
}

type createMeetingRequest struct {
	Subject      string       `json:"subject"`
	Participants participants `json:"participants"`
}

type participants struct {
	Attendees []attendee `json:"attendees"`
}

type attendee struct {
	UPN string `json:"upn"`
}

// Create books one online meeting and returns its join URL. Every call
// creates a new meeting resource; there is no idempotency key.
func (c *Client) Create(ctx context.Context, subject string, attendeeEmails []string) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", &httpx.AuthError{Provider: "microsoft-graph", Detail: err.Error()}
	}

	payload := createMeetingRequest{
		Subject:      subject,
		Participants: participants{Attendees: make([]attendee, 0, len(attendeeEmails))},
	}
	for _, email := range attendeeEmails {
		payload.Participants.Attendees = append(payload.Participants.Attendees, attendee{UPN: email})
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1.0/users/" + url.PathEscape(c.organizerID) + "/onlineMeetings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxGraphBodyBytes))
	if resp.StatusCode != http.StatusCreated {
		return "", &httpx.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed struct {
		JoinURL string `json:"joinUrl"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("meeting response decode failed: %w (body=%s)", err, strings.TrimSpace(string(body)))
	}
	if parsed.JoinURL == "" {
		return "", fmt.Errorf("meeting created but no joinUrl in response (body=%s)", strings.TrimSpace(string(body)))
	}
	return parsed.JoinURL, nil
}

// SetBaseURL overrides the Graph endpoint; used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimRight(u, "/") }

// SetTokenSource overrides the token source; used by tests.
func (c *Client) SetTokenSource(ts oauth2.TokenSource) { c.tokens = ts }
