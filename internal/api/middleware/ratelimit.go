package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rings-s/booking/internal/api/handlers"
)

// Limiter ограничитель частоты запросов (pkg/ratelimit)
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает запросы по пользователю, а без X-User-ID по IP.
// Ошибка лимитера пропускает запрос.
func RateLimit(limiter Limiter, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit: limiter failed for key=%s, request_id=%s: %v", key, GetRequestID(r.Context()), err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.Warn("RateLimit: too many requests key=%s, request_id=%s", key, GetRequestID(r.Context()))
				handlers.RespondErrorWithCode(w, http.StatusTooManyRequests, "слишком много запросов", "rate_limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID := r.Header.Get(UserIDHeader); userID != "" {
		return fmt.Sprintf("user:%s", userID)
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return "ip:" + strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
