package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// entry tracks the limiter for one identifier.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token-bucket limiter per identifier (IP or user)
// and evicts identifiers not seen for a while.
type RateLimiter struct {
	entries map[string]*entry
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	cleanup time.Duration
}

// NewRateLimiter creates a limiter issuing r tokens per second with the
// given burst.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		rate:    r,
		burst:   b,
		cleanup: 5 * time.Minute,
	}

	go rl.evictStale()

	return rl
}

// GetLimiter returns the limiter for an identifier, creating it on
// first sight.
func (rl *RateLimiter) GetLimiter(identifier string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, exists := rl.entries[identifier]
	if !exists {
		e = &entry{
			limiter:  rate.NewLimiter(rl.rate, rl.burst),
			lastSeen: time.Now(),
		}
		rl.entries[identifier] = e
	} else {
		e.lastSeen = time.Now()
	}

	return e.limiter
}

func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for id, e := range rl.entries {
			if time.Since(e.lastSeen) > rl.cleanup {
				delete(rl.entries, id)
			}
		}
		rl.mu.Unlock()
	}
}

// PerIP rate limits by client IP address.
func PerIP(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PerUser rate limits by authenticated user ID. Unauthenticated
// requests pass through; PerIP covers those.
func PerUser(requestsPerSecond float64, burst int) gin.HandlerFunc {
	limiter := NewRateLimiter(rate.Limit(requestsPerSecond), burst)

	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}

		if !limiter.GetLimiter(userID.(string)).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please slow down.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebSocketLimiter caps message rate on a single WebSocket connection.
type WebSocketLimiter struct {
	limiter *rate.Limiter
}

// NewWebSocketLimiter creates a per-connection message limiter.
func NewWebSocketLimiter(messagesPerMinute int) *WebSocketLimiter {
	return &WebSocketLimiter{
		limiter: rate.NewLimiter(rate.Limit(messagesPerMinute)/60.0, messagesPerMinute),
	}
}

// Allow reports whether another message may be processed now.
func (wsl *WebSocketLimiter) Allow() bool {
	return wsl.limiter.Allow()
}
