package test

import (
	"context"

	domainErrors "github.com/gearmart/checkout/internal/domain/errors"
	"github.com/gearmart/checkout/internal/domain/model"
)

// CartRepositoryStub stores cart lines in-memory for tests.
type CartRepositoryStub struct {
	Lines map[int64][]model.CartLine
	Err   error
}

// NewCartRepositoryStub constructs stub repository with initialized maps.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Lines: make(map[int64][]model.CartLine)}
}

// AddLine appends the line or increments quantity of an existing one.
func (s *CartRepositoryStub) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Lines == nil {
		s.Lines = make(map[int64][]model.CartLine)
	}
	for i, existing := range s.Lines[userID] {
		if existing.ProductID == line.ProductID {
			s.Lines[userID][i].Quantity += line.Quantity
			result := s.Lines[userID][i]
			return &result, nil
		}
	}
	s.Lines[userID] = append(s.Lines[userID], line)
	return &line, nil
}

// UpdateQuantity sets quantity of an existing line.
func (s *CartRepositoryStub) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if s.Err != nil {
		return s.Err
	}
	for i, existing := range s.Lines[userID] {
		if existing.ProductID == productID {
			s.Lines[userID][i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// RemoveLine deletes the line for the product.
func (s *CartRepositoryStub) RemoveLine(ctx context.Context, userID, productID int64) error {
	if s.Err != nil {
		return s.Err
	}
	lines := s.Lines[userID]
	for i, existing := range lines {
		if existing.ProductID == productID {
			s.Lines[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear drops the whole cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Lines, userID)
	return nil
}

// ListByUser returns the current cart snapshot.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Lines[userID], nil
}

// CatalogRepositoryStub serves products from an in-memory map.
type CatalogRepositoryStub struct {
	Products map[int64]model.Product
	Err      error
}

// NewCatalogRepositoryStub constructs stub catalog with initialized map.
func NewCatalogRepositoryStub(products ...model.Product) *CatalogRepositoryStub {
	stub := &CatalogRepositoryStub{Products: make(map[int64]model.Product)}
	for _, p := range products {
		stub.Products[p.ID] = p
	}
	return stub
}

// GetProduct fetches one product or returns not found.
func (s *CatalogRepositoryStub) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[productID]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListProducts fetches known products for the given ids.
func (s *CatalogRepositoryStub) ListProducts(ctx context.Context, productIDs []int64) (map[int64]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[int64]model.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := s.Products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}
