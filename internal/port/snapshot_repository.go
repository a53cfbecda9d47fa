package port

import (
	"context"

	"github.com/rl1809/cart-store/internal/core/domain"
)

type SnapshotRepository interface {
	// Load returns the last persisted cart, or nil if no snapshot exists
	Load(ctx context.Context) ([]domain.CartItem, error)

	// Save overwrites the persisted cart in a single atomic write
	Save(ctx context.Context, cart []domain.CartItem) error
}
