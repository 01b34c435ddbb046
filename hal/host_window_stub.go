//go:build !cgo

package hal

import (
	"context"
	"fmt"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int
}

func RunWindow(_ context.Context, _ func(h HAL) func() error, _ WindowConfig) error {
	return fmt.Errorf("%w: window mode requires cgo (build/run with CGO_ENABLED=1)", ErrNotImplemented)
}
