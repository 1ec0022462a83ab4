package directory

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"slices"
	"sync"

	"servicehub/pkg/model"
)

// SnapshotStore keeps the last provider list fetched successfully.
type SnapshotStore interface {
	Save(ctx context.Context, providers []model.ServiceProvider) error
	Load(ctx context.Context) ([]model.ServiceProvider, error)
}

type MemorySnapshotStore struct {
	mu        sync.RWMutex
	providers []model.ServiceProvider
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Save(_ context.Context, providers []model.ServiceProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = slices.Clone(providers)
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context) ([]model.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.providers == nil {
		return []model.ServiceProvider{}, nil
	}
	return slices.Clone(s.providers), nil
}

// ChangeOnlyStore forwards Save to the wrapped store only when the provider
// list differs from the last one saved through it. Load is passed through.
type ChangeOnlyStore struct {
	SnapshotStore
	mu     sync.Mutex
	digest [sha256.Size]byte
	saved  bool
}

func SaveOnChange(store SnapshotStore) *ChangeOnlyStore {
	return &ChangeOnlyStore{SnapshotStore: store}
}

func (s *ChangeOnlyStore) Save(ctx context.Context, providers []model.ServiceProvider) error {
	data, err := json.Marshal(providers)
	if err != nil {
		return s.SnapshotStore.Save(ctx, providers)
	}
	digest := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved && digest == s.digest {
		return nil
	}
	if err := s.SnapshotStore.Save(ctx, providers); err != nil {
		return err
	}
	s.digest, s.saved = digest, true
	return nil
}
