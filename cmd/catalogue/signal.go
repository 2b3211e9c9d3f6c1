package main

import (
	"context"
	"os/signal"
)

// notifyContext cancels the returned context on the first shutdown signal
// so in-flight renders stop between pages. A second signal kills the
// process with the default handler.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
