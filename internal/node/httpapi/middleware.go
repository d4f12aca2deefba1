package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/dmitrijs2005/locshare/internal/node/auth"
	"golang.org/x/time/rate"
)

type contextKey string

const accountContextKey contextKey = "account"

// accountFrom returns the authenticated account stored by requireSession.
func accountFrom(ctx context.Context) string {
	account, _ := ctx.Value(accountContextKey).(string)
	return account
}

// requireSession validates the bearer session token and stores the account
// in the request context.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing session token")
			return
		}
		account, err := auth.GetAccountFromToken(token, s.secretKey)
		if err != nil {
			writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid session token")
			return
		}
		ctx := context.WithValue(r.Context(), accountContextKey, account)
		next(w, r.WithContext(ctx))
	}
}

// limiterPool keeps one token bucket per account for write endpoints.
type limiterPool struct {
	mu    sync.Mutex
	m     map[string]*rate.Limiter
	rps   float64
	burst int
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &limiterPool{m: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (p *limiterPool) allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.m[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(p.rps), p.burst)
		p.m[key] = l
	}
	return l.Allow()
}

// rateLimit throttles write requests per authenticated account. Must run
// after requireSession.
func (s *Server) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiters.allow(accountFrom(r.Context())) {
			writeError(w, http.StatusTooManyRequests, api.CodeRateLimited, "too many write requests")
			return
		}
		next(w, r)
	}
}

// logRequests is router-level middleware logging method and path.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug(r.Context(), "http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
