package ai

import (
	"context"
)

// Completer turns a prompt into free text. It is the only boundary between the
// interview core and a hosted model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Named is implemented by completers that can report the model they talk to.
type Named interface {
	Model() string
}

// ModelName returns the model reported by c, or an empty string.
func ModelName(c Completer) string {
	if named, ok := c.(Named); ok {
		return named.Model()
	}
	return ""
}
