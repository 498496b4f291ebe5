// Package llm abstracts the external text-generation capability so the
// pipeline never depends on a concrete provider.
package llm

import (
	"context"
	"errors"
)

// Client completes a prompt against an external text model. Implementations
// must honor ctx cancellation and deadlines.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("llm not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}
