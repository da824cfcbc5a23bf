package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-manager/internal/auth"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	identityKey
)

// TokenParser resolves a bearer token into the caller's identity.
type TokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// ActiveChecker reports whether an authenticated account may still act.
type ActiveChecker interface {
	IsActive(ctx context.Context, id uint) (bool, error)
}

type middleware func(http.Handler) http.Handler

func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// requestID reuses the caller's X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(log *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"request_id", requestIDFrom(r.Context()),
			)
		})
	}
}

func recoverer(log *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic while serving request",
						"panic", rec,
						"request_id", requestIDFrom(r.Context()),
						"stack", string(debug.Stack()),
					)
					writeError(log, w, http.StatusInternalServerError, "internal server error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// authenticate rejects requests without a valid bearer token or whose account
// was deactivated, and stores the caller's identity in the request context.
func authenticate(log *slog.Logger, tokens TokenParser, accounts ActiveChecker) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				writeError(log, w, http.StatusUnauthorized, "authentication required", "missing bearer token")
				return
			}
			id, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.Debug("token rejected", "error", err, "request_id", requestIDFrom(r.Context()))
				writeError(log, w, http.StatusUnauthorized, "authentication required", "invalid or expired token")
				return
			}
			active, err := accounts.IsActive(r.Context(), id.ID)
			if err != nil {
				log.Error("cannot check account", "error", err, "user_id", id.ID, "request_id", requestIDFrom(r.Context()))
				writeError(log, w, http.StatusInternalServerError, "internal server error", "internal error")
				return
			}
			if !active {
				writeError(log, w, http.StatusUnauthorized, "authentication required", "account is no longer active")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

func identityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}
