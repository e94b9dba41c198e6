package input

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

type requestKeyType struct{}

var requestKey = requestKeyType{} //nolint:gochecknoglobals

// FromContext returns the Request stored by Middleware.
func FromContext(ctx context.Context) (*Request, bool) {
	request, ok := ctx.Value(requestKey).(*Request)

	return request, ok
}

// NewContext returns a copy of ctx carrying request.
func NewContext(ctx context.Context, request *Request) context.Context {
	return context.WithValue(ctx, requestKey, request)
}

// Middleware parses every request with Parse and stores the result in its context.
// Bodies over maxBytes are answered with 413 and undecodable ones with 400.
func Middleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		slog.Warn("input: maxBytes must be positive, using default",
			"provided", maxBytes, "default", DefaultMaxBodyBytes)

		maxBytes = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request, err := Parse(r, maxBytes)
			if err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, ErrBodyTooLarge) {
					status = http.StatusRequestEntityTooLarge
				}

				slog.Debug("input: rejecting request",
					slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("error", err))
				http.Error(w, http.StatusText(status), status)

				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), request)))
		})
	}
}
