package httpx

import (
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// NewClient builds an HTTP client with an explicit overall timeout.
// All outbound calls (Slack, watsonx, Graph) go through clients built here so
// a hung upstream can never block the dispatch path indefinitely.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
