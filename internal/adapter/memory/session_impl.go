package memory

import (
	"context"
	"sync"
	"time"

	"github.com/user/vidmeta/internal/entity"
)

type sessionEntry struct {
	state     entity.SubmissionState
	latest    uint64
	expiresAt time.Time
}

// SessionRepoImpl keeps session state in process memory. Expired entries
// are hidden on read and swept by a janitor goroutine.
type SessionRepoImpl struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionRepo creates an empty store.
func NewSessionRepo() *SessionRepoImpl {
	return &SessionRepoImpl{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

func (r *SessionRepoImpl) Load(ctx context.Context, id string) (entity.SubmissionState, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok || !r.now().Before(e.expiresAt) {
		return entity.SubmissionState{}, false, nil
	}
	return e.state.Clone(), true, nil
}

func (r *SessionRepoImpl) Save(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.storeLocked(id, state, ttl)
	return nil
}

func (r *SessionRepoImpl) Claim(ctx context.Context, id string, ttl time.Duration) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.liveLocked(id)
	if !ok {
		e = sessionEntry{state: entity.SubmissionState{Phase: entity.PhaseIdle}}
	}
	e.latest = max(e.latest, e.state.Seq) + 1
	e.expiresAt = r.now().Add(ttl)
	r.sessions[id] = e
	return e.latest, nil
}

func (r *SessionRepoImpl) SaveIfLatest(ctx context.Context, id string, state entity.SubmissionState, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.liveLocked(id); ok && state.Seq < e.latest {
		return false, nil
	}
	r.storeLocked(id, state, ttl)
	return true, nil
}

func (r *SessionRepoImpl) liveLocked(id string) (sessionEntry, bool) {
	e, ok := r.sessions[id]
	if !ok || !r.now().Before(e.expiresAt) {
		return sessionEntry{}, false
	}
	return e, true
}

func (r *SessionRepoImpl) storeLocked(id string, state entity.SubmissionState, ttl time.Duration) {
	latest := state.Seq
	if e, ok := r.liveLocked(id); ok {
		latest = max(latest, e.latest)
	}
	r.sessions[id] = sessionEntry{state: state.Clone(), latest: latest, expiresAt: r.now().Add(ttl)}
}

func (r *SessionRepoImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (r *SessionRepoImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (r *SessionRepoImpl) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (r *SessionRepoImpl) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
