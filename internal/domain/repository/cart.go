package repository

import (
	"context"

	"github.com/gearmart/checkout/internal/domain/model"
)

// CartRepository manages persistent cart state per user. Adding an existing
// product increments its quantity; setting quantity to zero removes the line.
type CartRepository interface {
	AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveLine(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)
}
