package httpx

import "fmt"

// StatusError reports a non-success response from an upstream API, carrying
// the raw body so callers can surface it verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status=%d body=%s", e.StatusCode, e.Body)
}

// AuthError reports a failed token acquisition.
type AuthError struct {
	Provider string
	Detail   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth failed: %s", e.Provider, e.Detail)
}
