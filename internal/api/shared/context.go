package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// UserEmailContextKey holds the authenticated user's email.
	UserEmailContextKey ContextKey = "userEmail"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID (32 hex chars).
	TraceIDLength = 16
)

// SetTraceID returns a child context carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from ctx, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithUser stores the authenticated identity in ctx.
func WithUser(ctx context.Context, id uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, id)
	return context.WithValue(ctx, UserEmailContextKey, email)
}

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// UserEmailFromContext returns the authenticated user's email, if any.
func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailContextKey).(string)
	return email, ok && email != ""
}

func generateTraceID() string {
	return traceIDFrom(rand.Read)
}

// traceIDFrom falls back to a time-derived ID when read fails, so a request
// never goes without a trace ID.
func traceIDFrom(read func([]byte) (int, error)) string {
	b := make([]byte, TraceIDLength)
	n, err := read(b)
	if err == nil && n == TraceIDLength {
		return hex.EncodeToString(b)
	}

	slog.Error("failed to generate random trace ID",
		slog.Any("error", err),
		slog.Int("bytes_read", n))

	now := time.Now()
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint64(b[8:], uint64(now.Nanosecond())^uint64(now.Unix()))
	return hex.EncodeToString(b)
}
