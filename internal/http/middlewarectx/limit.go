package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/home-inventory/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов отдельно для каждого пользователя.
// Запросы без пользователя в контексте делят общий лимитер.
func RateLimitMiddleware(log *slog.Logger, rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if p, ok := PrincipalFrom(r.Context()); ok {
				key = p.UserID
			}
			if !limiterFor(key).Allow() {
				log.Error("too many requests", slog.String("user_id", key))
				response.RenderStatus(w, r, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
