// Package notify delivers a rendered digest to its destinations.
package notify

import (
	"context"
	"fmt"
	"io"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// Writer prints the message instead of delivering it. Used for dry runs.
type Writer struct {
	Out io.Writer
}

func (w *Writer) Name() string { return "stdout" }

func (w *Writer) Send(_ context.Context, text string) error {
	if _, err := fmt.Fprintln(w.Out, text); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}
