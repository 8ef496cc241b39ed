package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an upstream failure once, at the client boundary.
// Callers branch on the kind instead of re-parsing provider error bodies.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindAuth      ErrorKind = "auth"
	KindQuota     ErrorKind = "quota"
	KindMalformed ErrorKind = "malformed"
	KindNetwork   ErrorKind = "network"
)

type Error struct {
	Kind     ErrorKind
	Provider string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s error (HTTP %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Message)
}

// KindOf returns the classified kind of err, or KindNetwork when err is not
// an upstream error.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}

func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}

func IsQuota(err error) bool {
	return KindOf(err) == KindQuota
}

func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

// classifyStatus maps a non-2xx provider response to a typed error.
func classifyStatus(provider string, status int, body string) *Error {
	kind := KindNetwork
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		kind = KindQuota
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = KindTimeout
	case status >= 400 && status < 500:
		kind = KindMalformed
	}

	if len(body) > 200 {
		body = body[:200]
	}

	return &Error{Kind: kind, Provider: provider, Status: status, Message: body}
}

// classifyTransport maps a transport-level failure (connection refused,
// cancelled context, deadline) to a typed error.
func classifyTransport(provider string, err error) *Error {
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Provider: provider, Message: err.Error()}
}

// malformed reports an unparseable or structurally empty provider response.
func malformed(provider, message string) *Error {
	return &Error{Kind: KindMalformed, Provider: provider, Message: message}
}

// missingKey reports an absent credential without issuing a network call.
func missingKey(provider string) *Error {
	return &Error{Kind: KindAuth, Provider: provider, Message: "API key is not configured"}
}
