package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bcare-id/bcare/internal/domain"
)

func TestMemoryGetPutDelete(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get("missing"); err != ErrNotFound {
		t.Fatalf("Get on empty store: got %v, want ErrNotFound", err)
	}

	sess := domain.NewSession("s1")
	if err := m.Put(sess); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := m.Get("s1")
	if err != nil {
		t.Fatalf("Get after Put: %v", err)
	}
	if got != sess {
		t.Fatal("Get returned a different session pointer")
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	if err := m.Delete("s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get("s1"); err != ErrNotFound {
		t.Fatalf("Get after Delete: got %v, want ErrNotFound", err)
	}
	if m.Len() != 0 {
		t.Fatalf("Len after Delete = %d, want 0", m.Len())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_ = m.Put(domain.NewSession(id))
			if _, err := m.Get(id); err != nil {
				t.Errorf("Get(%s): %v", id, err)
			}
			_ = m.Len()
		}(i)
	}
	wg.Wait()

	if m.Len() != 32 {
		t.Fatalf("Len = %d, want 32", m.Len())
	}
}

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	m := NewMemory()

	stale := domain.NewSession("stale")
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	_ = m.Put(stale)

	fresh := domain.NewSession("fresh")
	_ = m.Put(fresh)

	sweep(m, time.Hour)

	if _, err := m.Get("stale"); err != ErrNotFound {
		t.Fatalf("stale session survived the sweep: %v", err)
	}
	if _, err := m.Get("fresh"); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}

func TestSweepEvictsCompletedSessions(t *testing.T) {
	m := NewMemory()

	done := domain.NewSession("done")
	done.IsComplete = true
	done.UpdatedAt = time.Now().Add(-2 * time.Hour)
	_ = m.Put(done)

	sweep(m, time.Hour)

	if _, err := m.Get("done"); err != ErrNotFound {
		t.Fatal("completed sessions must age out like abandoned ones")
	}
}

func TestClarifyStoreTakeIsOneShot(t *testing.T) {
	c := NewClarifyStore()
	c.Put("st1", domain.CollectedInfo{Channel: "ATM"})

	got, ok := c.Take("st1")
	if !ok {
		t.Fatal("Take: state not found")
	}
	if got.Channel != "ATM" {
		t.Fatalf("Take returned %q, want ATM", got.Channel)
	}

	if _, ok := c.Take("st1"); ok {
		t.Fatal("second Take must fail: the state id is one-time")
	}
}

func TestClarifyStoreUnknownID(t *testing.T) {
	c := NewClarifyStore()
	if _, ok := c.Take("nope"); ok {
		t.Fatal("Take on unknown id must fail")
	}
}
