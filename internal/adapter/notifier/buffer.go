package notifier

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/cart-store/internal/core/domain"
)

// Buffer queues user-facing messages until the UI collects them, the
// server-side analog of a toast queue. Error never blocks and never fails.
type Buffer struct {
	mu      sync.Mutex
	pending []domain.Notification
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Error(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, domain.Notification{
		ID:        uuid.New(),
		Severity:  domain.SeverityError,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// Drain returns all pending notifications in arrival order and clears the
// queue. Each notification is delivered at most once.
func (b *Buffer) Drain() []domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	b.pending = nil
	return out
}
