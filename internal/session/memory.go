package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRevoker is a process-local Revoker for tests and single-instance development
// runs without Redis.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: map[string]time.Time{}, now: time.Now}
}

func (m *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = m.now().Add(ttl)
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if m.now().After(until) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
