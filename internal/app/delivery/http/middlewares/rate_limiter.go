package middlewares

import (
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles mutating booking requests per client IP and blocks
// a client for blockTime once it exceeds its budget. Clients idle for longer
// than idleTTL are forgotten.
type RateLimiter struct {
	limiters  map[string]*clientLimiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	Log       *zap.Logger
}

func NewRateLimiter(requests int, per, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	// A limiter idle for a full window has refilled its burst, so dropping it
	// is the same as starting over.
	idleTTL := per
	if blockTime > idleTTL {
		idleTTL = blockTime
	}
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		Log:       logger,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		r.mu.Lock()
		now := r.now()
		r.sweepLocked(now)

		if blockedUntil, found := r.blocked[ip]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				r.reject(w, req, ip, now, blockedUntil)
				return
			}
			delete(r.blocked, ip)
		}

		client, exists := r.limiters[ip]
		if !exists {
			// requests per `per`, with a burst of the same size
			client = &clientLimiter{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
			r.limiters[ip] = client
		}
		client.lastSeen = now
		allowed := client.limiter.AllowN(now, 1)

		if !allowed {
			blockedUntil := now.Add(r.blockTime)
			r.blocked[ip] = blockedUntil
			r.mu.Unlock()

			r.reject(w, req, ip, now, blockedUntil)
			return
		}
		r.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

// sweepLocked runs at most once per idleTTL and drops idle limiters and
// expired blocks. Caller holds r.mu.
func (r *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now

	for ip, client := range r.limiters {
		if now.Sub(client.lastSeen) >= r.idleTTL {
			delete(r.limiters, ip)
		}
	}
	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
}

func (r *RateLimiter) reject(w http.ResponseWriter, req *http.Request, ip string, now, blockedUntil time.Time) {
	retryAfter := int(blockedUntil.Sub(now).Seconds()) + 1
	r.Log.Warn("RateLimiter.Limit request blocked",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
		zap.String(constvars.LoggingRemoteAddrKey, ip),
		zap.String(constvars.LoggingEndpointKey, req.URL.Path),
		zap.Int("retry_after_seconds", retryAfter),
	)
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(retryAfter))
	utils.BuildErrorResponse(r.Log, w, exceptions.ErrTooManyRequests(nil))
}
