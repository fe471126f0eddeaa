package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrServer       = errors.New("server error")
	ErrValidation   = errors.New("validation error")
)

// Kind classifies a failed request.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindUnauthorized
	KindServer
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindUnauthorized:
		return ErrUnauthorized
	case KindServer:
		return ErrServer
	case KindValidation:
		return ErrValidation
	default:
		return nil
	}
}

// FieldError is one entry of a 422 "detail" array.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type,omitempty"`
}

// Error is returned for every request that did not end in a 2xx response.
type Error struct {
	Kind       Kind
	StatusCode int             // zero for network failures
	Detail     json.RawMessage // raw "detail" field of the response body, if any
	Fields     []FieldError    // populated for KindValidation
	Message    string          // transport-level description
	Err        error           // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if d, ok := detailMessage(e.Detail, ""); ok && d != "" {
		msg = d
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// backend response.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ErrorMessage turns any error into a line fit for the user. A "detail"
// string from the backend wins; for a detail array the first item's msg is
// used (or def when it has none); for a detail object its msg. Otherwise
// the transport message is returned, and def when there is nothing else.
func ErrorMessage(err error, def string) string {
	if err == nil {
		return def
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg, ok := detailMessage(apiErr.Detail, def); ok {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return def
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return def
}

// detailMessage reports ok=false when raw has no usable shape, so the
// caller can fall back to the transport message.
func detailMessage(raw json.RawMessage, def string) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}

	switch d := v.(type) {
	case string:
		return d, d != ""
	case []any:
		if len(d) > 0 {
			if item, ok := d[0].(map[string]any); ok {
				if msg, ok := item["msg"].(string); ok && msg != "" {
					return msg, true
				}
			}
		}
		return def, true
	case map[string]any:
		if msg, ok := d["msg"].(string); ok && msg != "" {
			return msg, true
		}
	}
	return "", false
}
