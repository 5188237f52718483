package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type handler func(ctx context.Context) error

// traceMiddleware gives every action its own span context so log lines of one
// action can be correlated.
func (c *Console) traceMiddleware() func(next handler) handler {
	return func(next handler) handler {
		return func(ctx context.Context) error {
			id := uuid.New()

			var spanID trace.SpanID

			copy(spanID[:], id[8:])

			sc := trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    trace.TraceID(id),
				SpanID:     spanID,
				TraceFlags: trace.FlagsSampled,
			})

			return next(trace.ContextWithSpanContext(ctx, sc))
		}
	}
}

func (c *Console) loggerMiddleware(action string) func(next handler) handler {
	return func(next handler) handler {
		return func(ctx context.Context) error {
			start := time.Now().UTC()

			err := next(ctx)

			var traceID string

			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				traceID = sc.TraceID().String()
			}

			outcome := "ok"
			if err != nil {
				outcome = err.Error()
			}

			c.l.LogInfo(
				"type: access, action: %s, traceID: %s, latency: %s, outcome: %s",
				action,
				traceID,
				time.Since(start),
				outcome,
			)

			return err
		}
	}
}

// reportMiddleware tells the operator that an action failed. The error is
// still returned so the access log records it.
func (c *Console) reportMiddleware() func(next handler) handler {
	return func(next handler) handler {
		return func(ctx context.Context) error {
			err := next(ctx)
			if err == nil || errors.Is(err, io.EOF) {
				return err
			}

			fmt.Fprintf(c.out, "Operation failed: %s\n", describe(err))

			return err
		}
	}
}

func (c *Console) recoverMiddleware() func(next handler) handler {
	return func(next handler) handler {
		return func(ctx context.Context) (err error) {
			defer func() {
				if re := recover(); re != nil {
					var ok bool

					err, ok = re.(error)
					if !ok {
						err = fmt.Errorf("%v: %w", re, ErrPanic)
					}

					c.l.LogErrorf("type: panic, error: %v", err)
				}
			}()

			return next(ctx)
		}
	}
}

func (c *Console) applyMiddlewares(h handler, middlewares ...func(handler) handler) handler {
	for _, middleware := range middlewares {
		h = middleware(h)
	}

	return h
}
