package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/port"
)

var (
	ErrOutOfStock = errors.New("insufficient stock")
	ErrNotInCart  = errors.New("product not in cart")
)

const (
	msgOutOfStock   = "requested quantity out of stock"
	msgAddFailed    = "error adding product"
	msgRemoveFailed = "error removing product"
	msgUpdateFailed = "error changing product quantity"
)

// CartService holds the in-memory cart, validates mutations against live
// stock, and mirrors every committed state to the snapshot store.
//
// The public mutation methods never return errors: failures are reported
// through the Notifier and logged. A single mutex is held across each whole
// operation, including the catalog calls, so two in-flight mutations can
// never commit from the same stale base state.
type CartService struct {
	catalog   port.CatalogRepository
	snapshots port.SnapshotRepository
	notifier  port.Notifier
	logger    *zap.Logger

	mu   sync.Mutex
	cart []domain.CartItem
}

func NewCartService(catalog port.CatalogRepository, snapshots port.SnapshotRepository, notifier port.Notifier, logger *zap.Logger) *CartService {
	return &CartService{
		catalog:   catalog,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
	}
}

// Hydrate loads the persisted cart snapshot. A missing snapshot means an
// empty cart. This is the only operation that reports errors to its caller.
func (s *CartService) Hydrate(ctx context.Context) error {
	cart, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.logger.Info("cart hydrated", zap.Int("items", len(cart)))
	return nil
}

// Cart returns a copy of the current cart in insertion order.
func (s *CartService) Cart() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneCart()
}

// AddProduct puts one unit of the product into the cart: a new line item
// with amount 1, or an increment of the existing line. Availability is
// live stock minus the quantity already held in the cart.
func (s *CartService) AddProduct(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addProduct(ctx, productID); err != nil {
		s.report("add", productID, msgAddFailed, err)
	}
}

// RemoveProduct drops the product's line item from the cart. Removing an
// absent product is reported as a failure, not ignored.
func (s *CartService) RemoveProduct(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeProduct(ctx, productID); err != nil {
		s.report("remove", productID, msgRemoveFailed, err)
	}
}

// UpdateProductAmount sets the product's line item to an absolute quantity.
// A target below 1 is a silent no-op.
func (s *CartService) UpdateProductAmount(ctx context.Context, productID int64, amount int) {
	if amount < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.updateProductAmount(ctx, productID, amount); err != nil {
		s.report("update", productID, msgUpdateFailed, err)
	}
}

func (s *CartService) addProduct(ctx context.Context, productID int64) error {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch product %d: %w", productID, err)
	}

	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch stock %d: %w", productID, err)
	}

	idx := s.indexOf(productID)
	inCart := 0
	if idx >= 0 {
		inCart = s.cart[idx].Amount
	}

	if stock.Amount-inCart < 1 {
		return ErrOutOfStock
	}

	next := s.cloneCart()
	if idx >= 0 {
		next[idx].Amount++
	} else {
		next = append(next, domain.CartItem{Product: *product, Amount: 1})
	}

	return s.commit(ctx, next)
}

func (s *CartService) removeProduct(ctx context.Context, productID int64) error {
	idx := s.indexOf(productID)
	if idx < 0 {
		return ErrNotInCart
	}

	next := s.cloneCart()
	next = append(next[:idx], next[idx+1:]...)

	return s.commit(ctx, next)
}

func (s *CartService) updateProductAmount(ctx context.Context, productID int64, amount int) error {
	idx := s.indexOf(productID)
	if idx < 0 {
		return ErrNotInCart
	}

	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch stock %d: %w", productID, err)
	}

	if stock.Amount-amount < 0 {
		return ErrOutOfStock
	}

	next := s.cloneCart()
	next[idx].Amount = amount

	return s.commit(ctx, next)
}

// commit persists the candidate cart first and only then swaps it into
// memory, so a failed snapshot write leaves no observable mutation.
func (s *CartService) commit(ctx context.Context, next []domain.CartItem) error {
	if err := s.snapshots.Save(ctx, next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.cart = next
	return nil
}

func (s *CartService) report(op string, productID int64, fallback string, err error) {
	msg := fallback
	if errors.Is(err, ErrOutOfStock) {
		msg = msgOutOfStock
	}

	s.logger.Warn("cart mutation rejected",
		zap.String("op", op),
		zap.Int64("product_id", productID),
		zap.Error(err),
	)
	s.notifier.Error(msg)
}

func (s *CartService) indexOf(productID int64) int {
	for i, item := range s.cart {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (s *CartService) cloneCart() []domain.CartItem {
	next := make([]domain.CartItem, len(s.cart))
	copy(next, s.cart)
	return next
}
