package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/cart-store/internal/core/domain"
)

var ErrNotFound = errors.New("not found")

// MySQLCatalog serves product and stock records from the products and
// stock tables. It backs the catalogd HTTP endpoints the cart server
// consumes.
type MySQLCatalog struct {
	db *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

func (m *MySQLCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, title, price, image
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Title, &p.Price, &p.Image)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	return &p, nil
}

func (m *MySQLCatalog) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	var st domain.Stock
	err := m.db.QueryRowContext(ctx, `
		SELECT id, amount
		FROM stock WHERE id = ?`, productID,
	).Scan(&st.ID, &st.Amount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stock %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}

	return &st, nil
}

// UpsertProduct writes a product record and its stock level. catalogd uses
// it to seed demo data; tests use it to arrange fixtures.
func (m *MySQLCatalog) UpsertProduct(ctx context.Context, p domain.Product, stockAmount int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, title, price, image)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE title = VALUES(title), price = VALUES(price), image = VALUES(image)`,
		p.ID, p.Title, p.Price, p.Image,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock (id, amount)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount)`,
		p.ID, stockAmount,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}

	return tx.Commit()
}
