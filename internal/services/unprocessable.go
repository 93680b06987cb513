package services

import (
	"context"
	"sync"

	"github.com/babylonchain/staking-ledger-service/internal/db/model"
)

type memoryUnprocessableStore struct {
	mu       sync.Mutex
	messages []model.UnprocessableMessageDocument
}

func newMemoryUnprocessableStore() *memoryUnprocessableStore {
	return &memoryUnprocessableStore{}
}

func (m *memoryUnprocessableStore) SaveUnprocessableMessage(_ context.Context, messageBody, receipt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *model.NewUnprocessableMessageDocument(messageBody, receipt))
	return nil
}

func (m *memoryUnprocessableStore) FindUnprocessableMessages(_ context.Context) ([]model.UnprocessableMessageDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.UnprocessableMessageDocument, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *memoryUnprocessableStore) DeleteUnprocessableMessage(_ context.Context, receipt interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.Receipt != receipt {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}
