package ledger

import (
	"context"
	"sort"
	"sync"
)

// Store is the persistence contract the ledger runs against. Optional
// lookups return a nil pointer and a nil error when the record is absent.
type Store interface {
	LoadConfig(ctx context.Context) (*Config, error)
	LoadState(ctx context.Context) (*GlobalState, error)
	LoadUser(ctx context.Context, addr Addr) (*UserEntry, error)
	LoadUnbond(ctx context.Context, addr Addr) (*UnbondEntry, error)
	// Commit persists every record in the batch or none of them.
	Commit(ctx context.Context, batch *Batch) error
	// ListUsers returns up to limit user entries with an address strictly
	// greater than after, sorted by address.
	ListUsers(ctx context.Context, after Addr, limit int64) ([]UserRecord, error)
}

type UserRecord struct {
	Address Addr
	Entry   UserEntry
}

// Batch collects the writes of a single operation.
type Batch struct {
	Config  *Config
	State   *GlobalState
	Users   map[Addr]UserEntry
	Unbonds map[Addr]UnbondEntry
}

func NewBatch() *Batch {
	return &Batch{
		Users:   make(map[Addr]UserEntry),
		Unbonds: make(map[Addr]UnbondEntry),
	}
}

func (b *Batch) SaveConfig(cfg Config) {
	b.Config = &cfg
}

func (b *Batch) SaveState(state GlobalState) {
	b.State = &state
}

func (b *Batch) SaveUser(addr Addr, entry UserEntry) {
	b.Users[addr] = entry
}

func (b *Batch) SaveUnbond(addr Addr, entry UnbondEntry) {
	b.Unbonds[addr] = entry
}

func (b *Batch) IsEmpty() bool {
	return b.Config == nil && b.State == nil && len(b.Users) == 0 && len(b.Unbonds) == 0
}

// MemoryStore keeps the ledger in process memory. It backs tests and the
// single-node mode of the service.
type MemoryStore struct {
	mu      sync.RWMutex
	config  *Config
	state   *GlobalState
	users   map[Addr]UserEntry
	unbonds map[Addr]UnbondEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[Addr]UserEntry),
		unbonds: make(map[Addr]UnbondEntry),
	}
}

func (s *MemoryStore) LoadConfig(_ context.Context) (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return nil, nil
	}
	cfg := *s.config
	return &cfg, nil
}

func (s *MemoryStore) LoadState(_ context.Context) (*GlobalState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, nil
	}
	state := *s.state
	return &state, nil
}

func (s *MemoryStore) LoadUser(_ context.Context, addr Addr) (*UserEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.users[addr]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) LoadUnbond(_ context.Context, addr Addr) (*UnbondEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.unbonds[addr]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) Commit(_ context.Context, batch *Batch) error {
	if batch == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if batch.Config != nil {
		cfg := *batch.Config
		s.config = &cfg
	}
	if batch.State != nil {
		state := *batch.State
		s.state = &state
	}
	for addr, entry := range batch.Users {
		s.users[addr] = entry
	}
	for addr, entry := range batch.Unbonds {
		s.unbonds[addr] = entry
	}
	return nil
}

func (s *MemoryStore) ListUsers(_ context.Context, after Addr, limit int64) ([]UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]UserRecord, 0, len(s.users))
	for addr, entry := range s.users {
		if addr > after {
			records = append(records, UserRecord{Address: addr, Entry: entry})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Address < records[j].Address
	})
	if limit > 0 && int64(len(records)) > limit {
		records = records[:limit]
	}
	return records, nil
}
