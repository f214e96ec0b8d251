package repository

import (
	"context"

	"github.com/gearmart/checkout/internal/domain/model"
)

// CatalogRepository provides read-only access to product pricing configuration.
type CatalogRepository interface {
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	ListProducts(ctx context.Context, productIDs []int64) (map[int64]model.Product, error)
}
