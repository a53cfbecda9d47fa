package port

import (
	"context"

	"github.com/rl1809/cart-store/internal/core/domain"
)

type CatalogRepository interface {
	// GetProduct retrieves a product record by ID, error if unknown
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// GetStock retrieves the live stock record for a product, error if unknown
	GetStock(ctx context.Context, productID int64) (*domain.Stock, error)
}
