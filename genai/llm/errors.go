package llm

import "fmt"

// AuthError reports a missing or rejected credential.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e == nil {
		return "authorization failed"
	}
	if e.StatusCode == 0 {
		if e.Message == "" {
			return "API key is required"
		}
		return e.Message
	}
	if e.Message == "" {
		return fmt.Sprintf("authorization failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("authorization failed (status %d): %s", e.StatusCode, e.Message)
}

// TransportError reports a network level failure reaching the endpoint.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("failed to %s", e.Op)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UpstreamError reports an endpoint that was reached but answered with an
// error status or an unusable body.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "upstream failed"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode == 0 {
		return msg
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
