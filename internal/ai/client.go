// Package ai wraps the remote chat-completion service behind a small
// gateway: prompt construction, response parsing and a deterministic
// keyword-routed fallback for when the remote service is out of quota.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client is the interface to a remote chat-completion provider.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// RemoteError is a failure reported by the completion provider.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("completion api error (status %d, code %q): %s", e.StatusCode, e.Code, e.Message)
}

type errorClass int

const (
	classOther errorClass = iota
	classRateLimited
)

// classify maps a remote failure into the closed {rate-limited, other} set.
// Only this function inspects raw error shapes; the rest of the gateway
// branches on the class alone.
func classify(err error) errorClass {
	var re *RemoteError
	if !errors.As(err, &re) {
		return classOther
	}
	if re.StatusCode == http.StatusTooManyRequests || re.Code == "insufficient_quota" {
		return classRateLimited
	}
	return classOther
}
