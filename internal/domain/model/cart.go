package model

import "time"

// CartLine is one entry of a user's cart. Owned by the cart state holder;
// the pricing engine only reads snapshots of it.
type CartLine struct {
	ProductID int64
	Quantity  int
	Size      string
	Color     string
	AddedAt   time.Time
}
