// Package middleware validates and defaults JSON request bodies in net/http
// servers. Framework adapters (see middleware/gin) build on Process.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/conform"
	"github.com/reoring/conform/source"
)

// ErrBodyTooLarge is returned by Process when the body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("middleware: request body too large")

// Config controls how request bodies are handled.
type Config struct {
	Schema  *conform.Schema
	Options conform.Options
	// Strict rejects bodies that repeat an object key.
	Strict bool
	// Defaults fills schema defaults before the final validation.
	Defaults bool
	// MaxBodyBytes limits the body size; zero means unlimited.
	MaxBodyBytes int64
}

// DefaultConfig is the recommended setting for HTTP JSON boundaries:
// duplicate keys are errors, defaults are applied and bodies are capped at 1 MiB.
func DefaultConfig(s *conform.Schema) Config {
	return Config{Schema: s, Strict: true, Defaults: true, MaxBodyBytes: 1 << 20}
}

// ctxKeyDecoded is the context key for the processed body.
type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a processed body to the context.
func ContextWithDecoded(ctx context.Context, d conform.Decoded) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, d)
}

// DecodedFromContext retrieves the processed body from context.
func DecodedFromContext(ctx context.Context) (conform.Decoded, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(conform.Decoded)
	return d, ok
}

// Process decodes body, applies defaults when configured and validates the
// result. A non-conforming body yields conform.Issues as the error.
func Process(body io.Reader, cfg Config) (conform.Decoded, error) {
	if cfg.MaxBodyBytes > 0 {
		body = &limitedReader{r: io.LimitReader(body, cfg.MaxBodyBytes+1), n: cfg.MaxBodyBytes}
	}
	v, err := source.DecodeJSON(body, source.Options{Strict: cfg.Strict})
	if err != nil {
		return conform.Decoded{}, err
	}
	d := conform.Decoded{Value: v}
	if cfg.Defaults {
		d = conform.GetValidValueOrDefaultWithMeta(cfg.Schema, v, cfg.Options)
	}
	if iss := conform.Validate(d.Value, cfg.Schema, cfg.Options); iss != nil {
		return d, iss
	}
	return d, nil
}

// limitedReader fails once more than n bytes have been read.
type limitedReader struct {
	r    io.Reader
	n    int64
	read int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	k, err := l.r.Read(p)
	l.read += int64(k)
	if l.read > l.n {
		return k, ErrBodyTooLarge
	}
	return k, err
}

// Status maps a Process error to an HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	if _, ok := conform.AsIssues(err); ok {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// ErrorPayload shapes a Process error for JSON responses.
func ErrorPayload(err error) map[string]any {
	if iss, ok := conform.AsIssues(err); ok {
		return map[string]any{"issues": []conform.Issue(iss)}
	}
	return map[string]any{"error": err.Error()}
}

// Handler runs Process on every request body. On success the processed body
// is stored in the request context for next; otherwise the error payload is
// written as JSON.
func Handler(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := Process(r.Body, cfg)
		if err != nil {
			WriteJSON(w, Status(err), ErrorPayload(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), d)))
	})
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := gojson.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
