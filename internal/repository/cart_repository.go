package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/model"
)

// Quantity change for a product the cart has no line for.
var ErrLineNotFound = errors.New("line not found")

// CartRepository owns carts and their lines. Every mutation locks the cart
// row first, so concurrent writers to the same cart serialize inside the
// store instead of racing on a whole-record read-modify-write.
type CartRepository interface {
	Create(ctx context.Context) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	ListLines(ctx context.Context, cartID string) ([]model.CartLine, error)

	// AddLine merges: an existing (cart, product) line gains qty,
	// otherwise a new line is appended with quantity qty.
	AddLine(ctx context.Context, cartID string, productID int64, qty int64) error
	// SetLineQuantity is an absolute set, ErrLineNotFound when absent.
	SetLineQuantity(ctx context.Context, cartID string, productID int64, qty int64) error
	// RemoveLine is a no-op when the line is absent.
	RemoveLine(ctx context.Context, cartID string, productID int64) error
	Clear(ctx context.Context, cartID string) error
	// ReplaceLines swaps the full line set in one transaction.
	ReplaceLines(ctx context.Context, cartID string, lines []model.CartLine) error
}
