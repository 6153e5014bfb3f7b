package store

import (
	"sync"
	"time"

	"github.com/bcare-id/bcare/internal/domain"
)

// clarifyTTL bounds how long a pending extraction waits for its follow-up
// answers before the state id stops being valid.
const clarifyTTL = 30 * time.Minute

type clarifyState struct {
	extracted domain.CollectedInfo
	createdAt time.Time
}

// ClarifyStore holds extraction payloads that failed validation, keyed by a
// one-time state id, until the legacy clarify endpoint merges the missing
// answers in.
type ClarifyStore struct {
	mu     sync.Mutex
	states map[string]clarifyState
}

// NewClarifyStore creates an empty clarify-state store.
func NewClarifyStore() *ClarifyStore {
	return &ClarifyStore{states: make(map[string]clarifyState)}
}

// Put stores a pending extraction under id.
func (c *ClarifyStore) Put(id string, extracted domain.CollectedInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[id] = clarifyState{extracted: extracted, createdAt: time.Now()}
}

// Take removes and returns the pending extraction for id. Expired entries
// count as absent.
func (c *ClarifyStore) Take(id string) (domain.CollectedInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[id]
	if !ok {
		return domain.CollectedInfo{}, false
	}
	delete(c.states, id)
	if time.Since(st.createdAt) > clarifyTTL {
		return domain.CollectedInfo{}, false
	}
	return st.extracted, true
}
