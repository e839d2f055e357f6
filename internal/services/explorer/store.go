package explorer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-explorer/internal/repositories"
	"weather-explorer/pkg/logger"
)

// Store keeps live sessions in memory and evicts idle ones.
type Store struct {
	repo repositories.SampleRepository
	l    *logger.Logger
	opts Options
	ttl  time.Duration
	now  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates sessions over repo. A non-positive ttl disables eviction.
func NewStore(repo repositories.SampleRepository, l *logger.Logger, opts Options, ttl time.Duration) *Store {
	return &Store{
		repo:     repo,
		l:        l,
		opts:     opts,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (st *Store) Create() *Session {
	id := uuid.NewString()

	s := NewSession(id, st.repo, st.l, st.opts)
	s.now = st.now
	s.lastSeen = st.now()

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.l.Debug("session created", map[string]any{"session": id})

	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete unmounts the session: carousel timer and in-flight fetches are torn down.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.Destroy()
	st.l.Debug("session deleted", map[string]any{"session": id})
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Evict destroys sessions idle for longer than the TTL.
func (st *Store) Evict() int {
	if st.ttl <= 0 {
		return 0
	}

	cutoff := st.now().Add(-st.ttl)

	var stale []*Session
	st.mu.Lock()
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range stale {
		s.Destroy()
	}

	if len(stale) > 0 {
		st.l.Info("evicted idle sessions", map[string]any{"count": len(stale)})
	}
	return len(stale)
}

// Run evicts idle sessions every interval until ctx is done, then destroys
// whatever is left. Extra sweep funcs run on the same tick.
func (st *Store) Run(ctx context.Context, interval time.Duration, sweeps ...func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			st.closeAll()
			return
		case <-ticker.C:
			st.Evict()
			for _, f := range sweeps {
				f()
			}
		}
	}
}

func (st *Store) closeAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Destroy()
	}
}
