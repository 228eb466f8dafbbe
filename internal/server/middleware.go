package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type contextKey string

const loggerKey contextKey = "logger"

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// contextualLogger tags each request with a fresh id and stores a logger
// carrying it in the request context.
func (s *Server) contextualLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set(RequestIDHeader, requestID)

		l := s.logger.With(slog.String("request_id", requestID))
		ctx := context.WithValue(r.Context(), loggerKey, l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit applies a token bucket per client address.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !s.limiterFor(client).Allow() {
			s.loggerFrom(r.Context()).Warn("rate limit exceeded", "path", r.URL.Path, "client", client)
			writeError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limiterFor returns the limiter for client, creating it on first use.
// Each lookup pushes back its expiry.
func (s *Server) limiterFor(client string) *rate.Limiter {
	if v, ok := s.limiters.Get(client); ok {
		l := v.(*rate.Limiter)
		s.limiters.SetDefault(client, l)
		return l
	}
	rl := s.cfg.Server.RateLimit
	l := rate.NewLimiter(rate.Every(rl.Interval), rl.Burst)
	if err := s.limiters.Add(client, l, cache.DefaultExpiration); err != nil {
		// Another request for the same client got there first.
		if v, ok := s.limiters.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// clientAddr is the host part of the request's remote address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return s.logger
}
