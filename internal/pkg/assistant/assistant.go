// Package assistant talks to the external chat-completion model.
package assistant

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no API key was provided
var ErrNotConfigured = errors.New("assistant API key not configured")

// ErrEmptyResponse is returned when the model answered with no text
var ErrEmptyResponse = errors.New("empty response from model")

// Client sends one question to the model and returns its text answer
type Client interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Unconfigured is the Client used when no API key is set; every call fails.
type Unconfigured struct{}

func (Unconfigured) Ask(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
