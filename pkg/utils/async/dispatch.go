package async

import (
	"context"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine on a context detached from
// ctx. Only the logger and the Sentry hub of ctx are carried over, so the
// handler keeps running after the caller's context is cancelled.
//
// Panics are recovered. Panics and returned errors are logged and sent to
// Sentry.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		hub := sentry.GetHubFromContext(newCtx)

		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				hub.RecoverWithContext(newCtx, r)
			}
		}()

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "error", err)
			hub.CaptureException(err)
		}
	}()
}

// newBackgroundContext returns context.Background() carrying the logger of
// ctx and a Sentry hub cloned from ctx (or the current hub)
func newBackgroundContext(ctx context.Context) context.Context {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	newCtx := context.Background()
	newCtx = ctxlog.With(newCtx, ctxlog.From(ctx))
	newCtx = sentry.SetHubOnContext(newCtx, hub.Clone())
	return newCtx
}
