package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"

	"github.com/gin-gonic/gin"
)

// rateLimiter counts requests per client IP within a fixed window. Each
// limiter owns its map and purge goroutine, so the login limiter and the
// general API limiter never share state.
type rateLimiter struct {
	mu      sync.Mutex
	counts  map[string]*windowCount
	limit   int
	window  time.Duration
	mensaje string
}

type windowCount struct {
	n         int
	windowEnd time.Time
}

func newRateLimiter(limit int, window time.Duration, mensaje string) *rateLimiter {
	rl := &rateLimiter{
		counts:  make(map[string]*windowCount),
		limit:   limit,
		window:  window,
		mensaje: mensaje,
	}
	go rl.purge()
	return rl
}

func (rl *rateLimiter) allow(ip string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	wc, ok := rl.counts[ip]
	if !ok || now.After(wc.windowEnd) {
		wc = &windowCount{windowEnd: now.Add(rl.window)}
		rl.counts[ip] = wc
	}
	wc.n++
	return wc.n <= rl.limit, wc.windowEnd
}

// purge drops expired entries so IPs that never return don't accumulate.
func (rl *rateLimiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, wc := range rl.counts {
			if now.After(wc.windowEnd) {
				delete(rl.counts, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := rl.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.mensaje))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newRateLimiter(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.").handler()
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
