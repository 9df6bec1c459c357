package uow

import (
	"context"
	"log/slog"
	"net/http"
)

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report commit-hook failures.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware opens a unit of work per request. The unit commits after the
// handler returns with a status below 500; it rolls back on 5xx responses
// and on panics (the panic still propagates).
//
// Commit-hook failures cannot change the response, which has already been
// written, so they are logged instead.
func Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := New()
			ctx := WithContext(r.Context(), u)
			sw := &statusWriter{ResponseWriter: w}

			panicked := true
			defer func() {
				if panicked || sw.Status() >= http.StatusInternalServerError {
					u.Rollback()
					return
				}
				// The request context may be canceled as soon as the handler
				// returns; hooks get a detached copy so an in-flight send is
				// not cut short.
				if err := u.Commit(context.WithoutCancel(r.Context())); err != nil {
					cfg.logger.ErrorContext(r.Context(), "commit hooks failed",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("error", err),
					)
				}
			}()

			next.ServeHTTP(sw, r.WithContext(ctx))
			panicked = false
		})
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the written status code, defaulting to 200 when the handler
// wrote nothing explicit.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
