// Package dedup decides whether a freshly generated question was already
// seen, checking an in-process set, an optional shared cache, and finally the
// remote question store.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"questgenius/internal/cache"
	"questgenius/internal/domain"
	"questgenius/internal/logger"

	"go.uber.org/zap"
)

// SeenSet is an explicitly scoped in-memory set of question texts. It grows
// monotonically between Reset calls and is never persisted.
type SeenSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Contains reports whether text was recorded before.
func (s *SeenSet) Contains(text string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[text]
	return ok
}

// Add records text as seen.
func (s *SeenSet) Add(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[text] = struct{}{}
}

// Len returns the number of recorded texts.
func (s *SeenSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

// Reset clears the set. Tests and long-lived processes use this instead of
// restarting to discard the session history.
func (s *SeenSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
}

// Scope controls how duplicate checks against the store and the shared cache
// are keyed. Per-user scoping is the default; ScopeGlobal treats a question
// seen by anyone as a duplicate for everyone.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeGlobal
)

// ParseScope maps the configured scope name to a Scope, defaulting to
// per-user scoping for anything unrecognized.
func ParseScope(name string) Scope {
	if name == "global" {
		return ScopeGlobal
	}
	return ScopeUser
}

// Checker combines the dedup tiers. The shared cache and the store are both
// optional; a nil tier is skipped.
type Checker struct {
	local  *SeenSet
	shared domain.Cache
	store  domain.QuestionStore
	scope  Scope
	ttl    time.Duration
}

// NewChecker creates a Checker. ttl bounds how long shared-cache entries
// live; zero keeps them indefinitely.
func NewChecker(local *SeenSet, shared domain.Cache, store domain.QuestionStore, scope Scope, ttl time.Duration) *Checker {
	return &Checker{
		local:  local,
		shared: shared,
		store:  store,
		scope:  scope,
		ttl:    ttl,
	}
}

// Seen reports whether the question text was seen before, in this session or
// in any earlier one reachable through the shared cache or the store. Tier
// failures are logged and treated as "not seen" so a degraded cache or store
// never blocks generation.
func (c *Checker) Seen(ctx context.Context, text string, userID string) bool {
	if c.local.Contains(text) {
		return true
	}

	if c.shared != nil {
		_, err := c.shared.Get(ctx, c.cacheKey(text, userID))
		switch err {
		case nil:
			return true
		case domain.ErrCacheMiss:
			// fall through to the store
		default:
			logger.Get().Warn("Dedup shared cache lookup failed",
				zap.Error(err))
		}
	}

	if c.store != nil {
		exists, err := c.store.Exists(ctx, text, c.storeUserID(userID))
		if err != nil {
			logger.Get().Warn("Dedup store lookup failed, proceeding as not seen",
				zap.Error(err))
			return false
		}
		return exists
	}

	return false
}

// Record marks the question text as seen in the session set and, when
// available, the shared cache. Store persistence is the caller's concern.
func (c *Checker) Record(ctx context.Context, text string, userID string) {
	c.local.Add(text)

	if c.shared != nil {
		if err := c.shared.Set(ctx, c.cacheKey(text, userID), "1", c.ttl); err != nil {
			logger.Get().Warn("Dedup shared cache write failed",
				zap.Error(err))
		}
	}
}

func (c *Checker) cacheKey(text string, userID string) string {
	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])
	if uid := c.storeUserID(userID); uid != "" {
		return cache.GenerateCacheKey("dedup", "question", digest, uid)
	}
	return cache.GenerateCacheKey("dedup", "question", digest)
}

func (c *Checker) storeUserID(userID string) string {
	if c.scope == ScopeGlobal {
		return ""
	}
	return userID
}
