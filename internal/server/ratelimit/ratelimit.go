// Package ratelimit applies per-client token-bucket limits to API endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client+endpoint+method combination.
// Tokens refill continuously at rate per second up to cap; touched records
// the last use so idle buckets can be dropped.
type bucket struct {
	mu      sync.Mutex
	cap     float64
	rate    float64
	tokens  float64
	last    time.Time
	touched time.Time
}

func newBucket(capacity int, ratePerSecond float64) *bucket {
	now := time.Now()
	return &bucket{
		cap:     float64(capacity),
		rate:    ratePerSecond,
		tokens:  float64(capacity),
		last:    now,
		touched: now,
	}
}

// refill credits tokens for the time elapsed since the last update.
// Callers must hold mu.
func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.cap, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now
}

// take consumes one token if available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)
	b.touched = now

	if b.tokens < 1.0 {
		return false
	}
	b.tokens--
	return true
}

// status reports the whole tokens remaining and when the bucket refills
// completely, without consuming anything.
func (b *bucket) status() (remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)

	remaining = int(b.tokens)
	reset = now
	if b.tokens < b.cap {
		reset = now.Add(time.Duration((b.cap - b.tokens) / b.rate * float64(time.Second)))
	}
	return remaining, reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.touched.Before(cutoff)
}

// Info describes the limit decision for one request, for response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds the limiter's global settings and per-endpoint overrides.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one token bucket per client+endpoint+method.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter. A nil config enables limiting with the
// stock defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow decides whether a request from clientID to endpoint may proceed and
// returns header information either way.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	// Limit 0 marks an unlimited endpoint, such as the health check.
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+":"+endpoint+":"+method, ec)
	allowed := b.take()
	remaining, reset := b.status()

	info := Info{
		Allowed:   allowed,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return allowed, info
}

// bucketFor returns the bucket for key, creating it from the endpoint
// config on first sight.
func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	fresh := newBucket(capacity, float64(ec.Limit)/ec.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	l.buckets[key] = fresh
	return fresh
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropIdleBuckets(time.Now().Add(-1 * time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

// dropIdleBuckets removes buckets untouched since cutoff so long-gone
// clients do not accumulate.
func (l *Limiter) dropIdleBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the background cleanup.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
