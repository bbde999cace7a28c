package storage

import (
	"context"
	"sync"

	"github.com/claude/workouttracker/internal/performance"
)

// MemorySlot keeps the blob in process memory. Nothing survives a restart.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

var _ performance.Slot = (*MemorySlot)(nil)

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, performance.ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
