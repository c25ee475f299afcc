package record

import (
	"context"
	"sync"
)

type memRepo struct {
	mu     sync.Mutex
	keep   int
	rounds map[string][]Round // room -> newest first
}

func NewMemoryRepo(keep int) Repo {
	return &memRepo{
		keep:   keep,
		rounds: make(map[string][]Round),
	}
}

func (m *memRepo) Save(ctx context.Context, r Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append([]Round{r}, m.rounds[r.Room]...)
	if m.keep > 0 && len(list) > m.keep {
		list = list[:m.keep]
	}
	m.rounds[r.Room] = list
	return nil
}

func (m *memRepo) List(ctx context.Context, room string, limit int) ([]Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.rounds[room]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]Round, len(list))
	copy(out, list)
	return out, nil
}
