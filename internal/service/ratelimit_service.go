package service

import (
	"sync"
	"time"

	"videograb/internal/model"
	"videograb/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimitEntry tracks the token bucket for an IP
type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitService manages per-IP request rate limiting
type RateLimitService struct {
	cfg      *model.RateLimitConfig
	limits   map[string]*rateLimitEntry
	mu       sync.Mutex
	quitChan chan struct{}
	stopOnce sync.Once
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(cfg *model.RateLimitConfig) *RateLimitService {
	service := &RateLimitService{
		cfg:      cfg,
		limits:   make(map[string]*rateLimitEntry),
		quitChan: make(chan struct{}),
	}

	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go service.cleanupRoutine()
	}

	return service
}

// IsAllowed reports whether ip may make a request now, consuming a token if so
func (rls *RateLimitService) IsAllowed(ip string) bool {
	if !rls.cfg.Enabled {
		return true
	}

	allowed := rls.entry(ip).limiter.Allow()
	if !allowed {
		logger.Logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.Int("limit", rls.cfg.RequestsPerMinute))
	}
	return allowed
}

// GetRemaining returns the whole tokens left for ip, or -1 when unlimited
func (rls *RateLimitService) GetRemaining(ip string) int {
	if !rls.cfg.Enabled {
		return -1
	}

	tokens := int(rls.entry(ip).limiter.Tokens())
	if tokens < 0 {
		return 0
	}
	return tokens
}

func (rls *RateLimitService) entry(ip string) *rateLimitEntry {
	rls.mu.Lock()
	defer rls.mu.Unlock()

	e, exists := rls.limits[ip]
	if !exists {
		perSecond := rate.Limit(float64(rls.cfg.RequestsPerMinute) / 60)
		burst := rls.cfg.BurstSize
		if burst < 1 {
			burst = 1
		}
		e = &rateLimitEntry{limiter: rate.NewLimiter(perSecond, burst)}
		rls.limits[ip] = e
	}
	e.lastSeen = time.Now()
	return e
}

// cleanupRoutine periodically drops idle entries
func (rls *RateLimitService) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(rls.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-rls.quitChan:
			logger.Logger.Info("Rate limit service stopped")
			return
		case <-ticker.C:
			rls.cleanup(time.Now())
		}
	}
}

func (rls *RateLimitService) cleanup(now time.Time) {
	rls.mu.Lock()
	defer rls.mu.Unlock()

	idle := time.Duration(rls.cfg.CleanupInterval) * time.Second
	removed := 0
	for ip, e := range rls.limits {
		if now.Sub(e.lastSeen) > idle {
			delete(rls.limits, ip)
			removed++
		}
	}

	if removed > 0 {
		logger.Logger.Debug("Rate limit entries cleaned up", zap.Int("removed", removed), zap.Int("remaining", len(rls.limits)))
	}
}

// Stop stops the cleanup routine
func (rls *RateLimitService) Stop() {
	rls.stopOnce.Do(func() { close(rls.quitChan) })
}
