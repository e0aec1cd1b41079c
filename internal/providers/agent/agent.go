// Package agent wraps the generative travel-search backend behind a small
// interface so services never see transport details.
package agent

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse means the completion came back without any text.
	ErrEmptyResponse = errors.New("agent: empty response")
	// ErrInvalidConfig means the provider is missing an API key or endpoint.
	ErrInvalidConfig = errors.New("agent: invalid config")
)

// Agent runs a prompt against a completion backend and returns raw prose.
type Agent interface {
	Run(ctx context.Context, prompt string) (string, error)
}

// Func adapts an ordinary function to the Agent interface.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Run(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
