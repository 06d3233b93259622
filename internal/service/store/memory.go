package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mainport/internal/model"
)

// ErrSessionNotFound unknown or expired session
var ErrSessionNotFound = errors.New("session not found")

// Session scenario levers of one dashboard user plus the last derived result
type Session struct {
	State     model.ScenarioState
	Result    *model.DerivedResult
	UpdatedAt time.Time
}

// entry one stored session. mu serializes updates of this session only; session and
// expiresAt are written with both mu and the store lock held.
type entry struct {
	mu        sync.Mutex
	session   Session
	expiresAt time.Time
}

// MemoryStore in-memory session storage with idle expiry
type MemoryStore struct {
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryStore creates a store; ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) expiry(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Create stores a new session under a fresh ID, which is also written to State.ID.
func (s *MemoryStore) Create(st model.ScenarioState, res *model.DerivedResult) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	st = st.Clone()
	st.ID = uuid.New().String()
	sess := Session{State: st, Result: res, UpdatedAt: now}
	s.sessions[st.ID] = &entry{session: sess, expiresAt: s.expiry(now)}
	return sess
}

// Get returns a copy of the session and refreshes its expiry.
func (s *MemoryStore) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if e.expired(now) {
		delete(s.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	e.expiresAt = s.expiry(now)

	out := e.session
	out.State = out.State.Clone()
	return out, nil
}

// Update replaces the session with fn's result. Updates of one session are serialized
// by its own lock; fn runs without the store lock, so other sessions are not held up.
// Nothing is stored when fn fails or the session is deleted or expires meanwhile.
func (s *MemoryStore) Update(id string, fn func(Session) (Session, error)) (Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.session
	cur.State = cur.State.Clone()
	next, err := fn(cur)
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if live, ok := s.sessions[id]; !ok || live != e {
		return Session{}, ErrSessionNotFound
	}
	if e.expired(now) {
		delete(s.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	next.State.ID = id
	next.UpdatedAt = now
	e.session = next
	e.expiresAt = s.expiry(now)
	return next, nil
}

// lookup returns the live entry for id.
func (s *MemoryStore) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || e.expired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Count live sessions
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeExpired drops idle sessions and returns how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeExpiredLocked(s.now())
}

func (s *MemoryStore) purgeExpiredLocked(now time.Time) int {
	n := 0
	for k, e := range s.sessions {
		if e.expired(now) {
			delete(s.sessions, k)
			n++
		}
	}
	return n
}

// RunPurger purges expired sessions every interval until ctx is done.
func (s *MemoryStore) RunPurger(ctx context.Context, every time.Duration) {
	if every <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PurgeExpired(); n > 0 {
				log.Debug().Int("purged", n).Int("live", s.Count()).Msg("expired sessions purged")
			}
		}
	}
}
