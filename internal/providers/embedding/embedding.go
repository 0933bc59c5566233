package embedding

import (
	"context"
	"errors"
)

// ErrModelUnavailable is returned when the embedding model was never
// initialized. Fatal to the current request; never retried here.
var ErrModelUnavailable = errors.New("embedding model is not available")

// Provider turns text into a fixed-length vector. Model identity and
// dimensionality are opaque to callers.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}
