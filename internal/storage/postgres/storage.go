package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
	"github.com/gearmart/checkout/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage relies on; it also matches
// the pgxmock pool used in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. It owns the cart
// state and the read-only product catalog mirror.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type cartRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price BIGINT NOT NULL,
            discount_percentage DOUBLE PRECISION,
            uti_coins_cashback_percentage DOUBLE PRECISION,
            uti_coins_discount_percentage DOUBLE PRECISION,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            user_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL,
            size TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '',
            added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, product_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id, added_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CartRepository implementation ---

func (r *cartRepository) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	result := line
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const existsQuery = `SELECT 1 FROM products WHERE id=$1`
		var one int
		if err := tx.QueryRow(ctx, existsQuery, line.ProductID).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const upsertQuery = `INSERT INTO cart_items (user_id, product_id, quantity, size, color)
                             VALUES ($1, $2, $3, $4, $5)
                             ON CONFLICT (user_id, product_id) DO UPDATE
                             SET quantity = cart_items.quantity + EXCLUDED.quantity,
                                 size = EXCLUDED.size,
                                 color = EXCLUDED.color
                             RETURNING quantity, added_at`
		return tx.QueryRow(ctx, upsertQuery, userID, line.ProductID, line.Quantity, line.Size, line.Color).
			Scan(&result.Quantity, &result.AddedAt)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity=$1 WHERE user_id=$2 AND product_id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) RemoveLine(ctx context.Context, userID, productID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	const query = `SELECT product_id, quantity, size, color, added_at
                   FROM cart_items WHERE user_id=$1 ORDER BY added_at`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.Size, &line.Color, &line.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	const query = `SELECT id, name, price, discount_percentage, uti_coins_cashback_percentage, uti_coins_discount_percentage
                   FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, productIDs []int64) (map[int64]model.Product, error) {
	result := make(map[int64]model.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	const query = `SELECT id, name, price, discount_percentage, uti_coins_cashback_percentage, uti_coins_discount_percentage
                   FROM products WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[product.ID] = *product
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanProduct normalizes nullable percentage columns at the storage boundary
// so the pricing core always sees concrete, defaulted values.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		product  model.Product
		price    int64
		discount *float64
		cashback *float64
		cap      *float64
	)
	if err := row.Scan(&product.ID, &product.Name, &price, &discount, &cashback, &cap); err != nil {
		return nil, err
	}
	product.Pricing = model.NormalizePricing(price, discount, cashback, cap)
	return &product, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
