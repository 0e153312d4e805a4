package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Tier is a named rate policy. Limit is the sustained rate per second.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

// Rate Limit Tiers
var (
	// Token issuance and registration (Strict)
	TierStrict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}

	// General (Default)
	TierGeneral = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}

	// Frontend-heavy apps
	TierFrontend = Tier{Name: "frontend", Limit: rate.Limit(20), Burst: 40}
)

// RateLimiter decides whether the bucket identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string, tier Tier) bool
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, tier Tier) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, exists := m.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		m.visitors[key] = v
	}
	v.lastSeen = m.now()
	return v.limiter.Allow()
}

// Cleanup removes buckets idle for longer than maxIdle and reports how many
// remain.
func (m *MemoryLimiter) Cleanup(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, v := range m.visitors {
		if m.now().Sub(v.lastSeen) > maxIdle {
			delete(m.visitors, key)
		}
	}
	return len(m.visitors)
}

// RunCleanup calls Cleanup every minute until ctx is done.
func (m *MemoryLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup(3 * time.Minute)
		}
	}
}

// RedisLimiter is a fixed-window counter shared by every instance that uses
// the same redis. When redis is unreachable requests are let through.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, prefix: "ratelimit"}
}

// Max is the number of requests a tier may make per window.
func (l *RedisLimiter) Max(tier Tier) int64 {
	n := int64(float64(tier.Limit) * l.window.Seconds())
	if n < int64(tier.Burst) {
		n = int64(tier.Burst)
	}
	return n
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, tier Tier) bool {
	redisKey := l.prefix + ":" + key

	// SET NX EX creates the window with its TTL in one step; INCR keeps it.
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, l.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	return incr.Val() <= l.Max(tier)
}

// RateLimitMiddleware checks if the request is allowed by the rate limiter.
func RateLimitMiddleware(limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier := resolveRateTier(r)

			// Same identity gets separate quotas per tier, e.g. "ip:1.2.3.4:strict".
			key := fmt.Sprintf("%s:%s", identityKey(r), tier.Name)

			if !limiter.Allow(r.Context(), key, tier) {
				w.Header().Set("Retry-After", strconv.Itoa(1))
				utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// identityKey runs before Authenticate, so only the device header and the
// remote address are available.
func identityKey(r *http.Request) string {
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(r *http.Request) Tier {
	if r.Method == http.MethodPost && (r.URL.Path == "/authentication" || r.URL.Path == "/users") {
		return TierStrict
	}
	if r.Header.Get("X-Action") == "auth" {
		return TierStrict
	}
	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return TierFrontend
	}
	return TierGeneral
}
