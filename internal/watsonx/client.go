// Package watsonx calls the watsonx.ai text generation API. It is the default
// backend for meeting extraction.
package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/asalehi100/ibm-techxchange-hack/internal/httpx"
)

const (
	DefaultBaseURL = "https://us-south.ml.cloud.ibm.com"
	DefaultModelID = "ibm/granite-3-8b-instruct"
	DefaultIAMURL  = "https://iam.cloud.ibm.com/identity/token"

	generationPath = "/ml/v1/text/generation?version=2023-05-29"

	// tokenExpirySkew refreshes the cached IAM token slightly before the
	// server-reported expiry.
	tokenExpirySkew = 60 * time.Second
)

// defaultModerations is the fixed content-safety configuration sent with
// every generation call. It is policy, not logic; keep it as raw JSON.
var defaultModerations = json.RawMessage(`{
  "hap": {
    "input": {"enabled": true, "threshold": 0.5, "mask": {"remove_entity_value": true}},
    "output": {"enabled": true, "threshold": 0.5, "mask": {"remove_entity_value": true}}
  },
  "pii": {
    "input": {"enabled": true, "threshold": 0.5, "mask": {"remove_entity_value": true}},
    "output": {"enabled": true, "threshold": 0.5, "mask": {"remove_entity_value": true}}
  },
  "granite_guardian": {
    "input": {"threshold": 1}
  }
}`)

type Client struct {
	httpClient *http.Client
	baseURL    string
	iamURL     string
	apiKey     string
	projectID  string
	modelID    string

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(httpClient *http.Client, baseURL, apiKey, projectID, modelID string) *Client {
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModelID
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		iamURL:     DefaultIAMURL,
		apiKey:     apiKey,
		projectID:  projectID,
		modelID:    modelID,
	}
}

type generationParameters struct {
	DecodingMethod    string `json:"decoding_method"`
	MaxNewTokens      int    `json:"max_new_tokens"`
	MinNewTokens      int    `json:"min_new_tokens"`
	RepetitionPenalty int    `json:"repetition_penalty"`
}

type generationRequest struct {
	Input       string               `json:"input"`
	Parameters  generationParameters `json:"parameters"`
	ModelID     string               `json:"model_id"`
	ProjectID   string               `json:"project_id"`
	Moderations json.RawMessage      `json:"moderations"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// Generate runs one greedy, bounded generation call and returns the raw
// generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	token, err := c.iamToken(ctx)
	if err != nil {
		return "", err
	}

	reqBody, err := json.Marshal(generationRequest{
		Input: prompt,
		Parameters: generationParameters{
			DecodingMethod:    "greedy",
			MaxNewTokens:      200,
			MinNewTokens:      0,
			RepetitionPenalty: 1,
		},
		ModelID:     c.modelID,
		ProjectID:   c.projectID,
		Moderations: defaultModerations,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationPath, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if resp.StatusCode != http.StatusOK {
		return "", &httpx.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed generationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("generation decode failed: %w (body=%s)", err, strings.TrimSpace(string(body)))
	}
	if len(parsed.Results) == 0 {
		return "", fmt.Errorf("generation returned no results (body=%s)", strings.TrimSpace(string(body)))
	}
	return parsed.Results[0].GeneratedText, nil
}

// iamToken exchanges the API key for an IAM bearer token, caching it until
// shortly before expiry.
func (c *Client) iamToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ibm:params:oauth:grant-type:apikey")
	form.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if resp.StatusCode != http.StatusOK {
		return "", &httpx.AuthError{Provider: "ibm-iam", Detail: strings.TrimSpace(string(body))}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("iam token decode failed: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", &httpx.AuthError{Provider: "ibm-iam", Detail: "empty access_token in response"}
	}

	c.token = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(parsed.ExpiresIn)*time.Second - tokenExpirySkew)
	return c.token, nil
}

// SetIAMURL overrides the IAM endpoint; used by tests.
func (c *Client) SetIAMURL(u string) { c.iamURL = u }
