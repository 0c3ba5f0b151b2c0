package db

import (
	"encoding/json"
	"fmt"
)

// Op constants name engine endpoints for error context.
const (
	OpSearch        = "_search"
	OpClusterHealth = "_cluster/health"
)

const maxErrorBody = 512

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ResponseError is a non-2xx engine response.
type ResponseError struct {
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("engine status %d: %s", e.Status, reason)
	}
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Sprintf("engine status %d: %s", e.Status, body)
}

// Reason extracts error.type and error.reason from an engine error body.
func (e *ResponseError) Reason() string {
	var parsed struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if json.Unmarshal(e.Body, &parsed) != nil || parsed.Error.Reason == "" {
		return ""
	}
	if parsed.Error.Type == "" {
		return parsed.Error.Reason
	}
	return parsed.Error.Type + ": " + parsed.Error.Reason
}
