package t212

import "fmt"

// AuthError reports rejected credentials (HTTP 401 or 403). It is fatal to
// the invocation and never retried.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status == 403 {
		return fmt.Sprintf("access forbidden (http %d): verify API key permissions: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("authentication failed (http %d): check your API key and secret: %s", e.Status, e.Message)
}

// RateLimitError reports HTTP 429. The client performs no backoff; callers
// decide whether to wait for RetryAfter.
type RateLimitError struct {
	RetryAfter string
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("rate limit exceeded, retry after %s: %s", e.RetryAfter, e.Message)
	}
	return "rate limit exceeded: " + e.Message
}

// APIError reports any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (http %d): %s", e.Status, e.Message)
}
