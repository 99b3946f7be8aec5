package wizard

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository keeps a draft as serialized JSON in process memory.
type MemoryRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, nil
	}
	return DecodeDocument(r.data)
}

func (r *MemoryRepository) Save(_ context.Context, doc Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	r.data = nil
	r.mu.Unlock()
	return nil
}

// Raw returns the stored bytes, nil when there is no draft.
func (r *MemoryRepository) Raw() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil
	}
	return append([]byte(nil), r.data...)
}

// SetRaw replaces the stored bytes, including with data that is not a valid
// draft.
func (r *MemoryRepository) SetRaw(data []byte) {
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
}
