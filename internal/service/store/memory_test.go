package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mainport/internal/model"
)

func testState() model.ScenarioState {
	return model.ScenarioState{
		Title:           model.DefaultTitle,
		Slots:           478000,
		FreightSharePct: 5,
		Archetype:       model.ArchetypeHubOptimized,
		HaulMix:         model.HaulMix{ShortPct: 40, MediumPct: 35, LongPct: 25},
		RunwayShares:    map[string]float64{"Polderbaan": 0.5, "Kaagbaan": 0.5},
	}
}

// fakeClock lets tests move time forward
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl)
	s.now = clock.Now
	return s, clock
}

// TestNewMemoryStore empty store
func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	if store == nil {
		t.Fatal("NewMemoryStore() returned nil")
	}
	if store.Count() != 0 {
		t.Errorf("New store should be empty, got %d sessions", store.Count())
	}
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	sess := store.Create(testState(), &model.DerivedResult{})
	if sess.State.ID == "" {
		t.Fatal("Create should assign an ID")
	}
	if store.Count() != 1 {
		t.Errorf("Count = %d, want 1", store.Count())
	}

	got, err := store.Get(sess.State.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.State.Title != model.DefaultTitle || got.Result == nil {
		t.Errorf("unexpected session %+v", got)
	}

	// returned state is a copy
	got.State.RunwayShares["Polderbaan"] = 1
	again, _ := store.Get(sess.State.ID)
	if again.State.RunwayShares["Polderbaan"] != 0.5 {
		t.Error("Get should return a copy of the runway shares")
	}
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	a := store.Create(testState(), nil)
	b := store.Create(testState(), nil)
	if a.State.ID == b.State.ID {
		t.Errorf("IDs should differ, both %s", a.State.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	if _, err := store.Get("non-existent"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	sess := store.Create(testState(), nil)

	clock.Advance(time.Minute)
	updated, err := store.Update(sess.State.ID, func(s Session) (Session, error) {
		s.State.Slots = 500000
		s.State.ID = "ignored"
		return s, nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.State.ID != sess.State.ID {
		t.Errorf("Update must keep the session ID, got %s", updated.State.ID)
	}
	if !updated.UpdatedAt.After(sess.UpdatedAt) {
		t.Error("UpdatedAt should move forward")
	}

	got, _ := store.Get(sess.State.ID)
	if got.State.Slots != 500000 {
		t.Errorf("Slots = %d, want 500000", got.State.Slots)
	}
}

func TestUpdateErrorKeepsSession(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess := store.Create(testState(), nil)

	boom := errors.New("boom")
	_, err := store.Update(sess.State.ID, func(s Session) (Session, error) {
		s.State.Slots = 1
		s.State.RunwayShares["Kaagbaan"] = 0
		return s, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, _ := store.Get(sess.State.ID)
	if got.State.Slots != 478000 || got.State.RunwayShares["Kaagbaan"] != 0.5 {
		t.Errorf("session modified by failed update: %+v", got.State)
	}

	if _, err := store.Update("missing", func(s Session) (Session, error) { return s, nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess := store.Create(testState(), nil)

	if err := store.Delete(sess.State.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count = %d after delete", store.Count())
	}
	if err := store.Delete(sess.State.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second delete: expected ErrSessionNotFound, got %v", err)
	}
}

func TestExpiry(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	idle := store.Create(testState(), nil)
	active := store.Create(testState(), nil)

	clock.Advance(45 * time.Minute)
	if _, err := store.Get(active.State.ID); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	clock.Advance(30 * time.Minute)
	if n := store.PurgeExpired(); n != 1 {
		t.Errorf("PurgeExpired = %d, want 1", n)
	}
	if _, err := store.Get(idle.State.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session should have expired, got %v", err)
	}
	if _, err := store.Get(active.State.ID); err != nil {
		t.Errorf("active session should survive: %v", err)
	}
}

func TestNoExpiryWithoutTTL(t *testing.T) {
	store, clock := newTestStore(0)
	sess := store.Create(testState(), nil)

	clock.Advance(1000 * time.Hour)
	if n := store.PurgeExpired(); n != 0 {
		t.Errorf("PurgeExpired = %d, want 0", n)
	}
	if _, err := store.Get(sess.State.ID); err != nil {
		t.Errorf("Get failed: %v", err)
	}
}

// TestConcurrentUpdates updates of one session are serialized
func TestConcurrentUpdates(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess := store.Create(testState(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(sess.State.ID, func(s Session) (Session, error) {
				s.State.Slots++
				return s, nil
			})
		}()
	}
	wg.Wait()

	got, _ := store.Get(sess.State.ID)
	if got.State.Slots != 478050 {
		t.Errorf("Slots = %d, want 478050", got.State.Slots)
	}
}

func TestSlowUpdateDoesNotBlockOtherSessions(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	a := s.Create(testState(), nil)
	b := s.Create(testState(), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := s.Update(a.State.ID, func(cur Session) (Session, error) {
			close(entered)
			<-release
			cur.State.Slots = 1
			return cur, nil
		})
		done <- err
	}()
	<-entered

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if _, err := s.Update(b.State.ID, func(cur Session) (Session, error) {
			cur.State.Slots = 2
			return cur, nil
		}); err != nil {
			t.Errorf("Update b failed: %v", err)
		}
		if _, err := s.Get(b.State.ID); err != nil {
			t.Errorf("Get b failed: %v", err)
		}
		if _, err := s.Get(a.State.ID); err != nil {
			t.Errorf("Get a failed: %v", err)
		}
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("other sessions blocked by a running update")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Update a failed: %v", err)
	}
	got, _ := s.Get(a.State.ID)
	if got.State.Slots != 1 {
		t.Errorf("a slots = %d, want 1", got.State.Slots)
	}
}

func TestUpdateAfterConcurrentDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	sess := s.Create(testState(), nil)

	_, err := s.Update(sess.State.ID, func(cur Session) (Session, error) {
		if err := s.Delete(sess.State.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		return cur, nil
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("deleted session came back: count = %d", s.Count())
	}
}
