package queue

import (
	"context"
	"sync"
)

// ChangeNotifier keeps a monotonically increasing revision per topic. Clients compare revisions
// instead of re-reading whole collections on a timer.
type ChangeNotifier interface {
	Notify(ctx context.Context, topic string) error
	Revisions(ctx context.Context, topics []string) (map[string]int64, error)
}

type MemoryNotifier struct {
	mu        sync.RWMutex
	revisions map[string]int64
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{revisions: make(map[string]int64)}
}

func (n *MemoryNotifier) Notify(_ context.Context, topic string) error {
	n.mu.Lock()
	n.revisions[topic]++
	n.mu.Unlock()
	return nil
}

func (n *MemoryNotifier) Revisions(_ context.Context, topics []string) (map[string]int64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make(map[string]int64, len(topics))
	for _, topic := range topics {
		out[topic] = n.revisions[topic]
	}
	return out, nil
}
