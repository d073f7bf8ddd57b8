package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WaitForCancel returns a context that is canceled on Ctrl+C or SIGTERM.
func WaitForCancel(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
