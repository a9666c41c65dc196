package session

import (
	"testing"
	"time"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)

	s := m.Create(7)
	if s.OwnerID != 7 {
		t.Errorf("OwnerID = %d, want 7", s.OwnerID)
	}
	if s.Builder == nil {
		t.Fatal("session has no builder")
	}

	got := m.Get(s.ID)
	if got != s {
		t.Error("Get returned a different session")
	}
	if m.Get("missing") != nil {
		t.Error("Get for unknown id should be nil")
	}
}

func TestManager_ExpiredSessionRemoved(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)

	s := m.Create(1)
	s.CreatedAt = time.Now().Add(-2 * time.Hour)

	if m.Get(s.ID) != nil {
		t.Error("expired session should not be returned")
	}
	// Second lookup confirms removal rather than repeated expiry checks.
	if m.Get(s.ID) != nil {
		t.Error("expired session should be gone")
	}
}

func TestManager_IdleSessionRemoved(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)

	s := m.Create(1)
	s.LastActiveAt = time.Now().Add(-2 * time.Minute)

	if m.Get(s.ID) != nil {
		t.Error("idle session should not be returned")
	}
}

func TestManager_TouchKeepsSessionAlive(t *testing.T) {
	m := NewManager(time.Hour, time.Minute)

	s := m.Create(1)
	s.LastActiveAt = time.Now().Add(-2 * time.Minute)
	s.Touch()

	if m.Get(s.ID) == nil {
		t.Error("touched session should survive the idle check")
	}
}

func TestManager_Cleanup(t *testing.T) {
	m := NewManager(time.Hour, time.Hour)

	live := m.Create(1)
	stale := m.Create(2)
	stale.CreatedAt = time.Now().Add(-2 * time.Hour)

	m.Cleanup()

	if m.Get(live.ID) == nil {
		t.Error("live session removed by cleanup")
	}
	if _, ok := m.sessions[stale.ID]; ok {
		t.Error("stale session survived cleanup")
	}
}
