package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// Business-key collision on products.code. Soft-deleted rows still
	// count: a code is never freed by flipping status.
	ErrDuplicateCode = errors.New("duplicate code")

	// Soft delete on a product whose status is already false.
	ErrAlreadyDeleted = errors.New("already deleted")
)

// Listing parameters for the catalog. Zero value means: no filter, store
// order, first page.
type ProductListQuery struct {
	OnlyAvailable bool   // status = true only ("available" sentinel)
	Category      string // case-insensitive substring match on category
	Sort          string // "asc" | "desc" on price, "" keeps store order
	Page          int
	Limit         int
}

type ProductRepository interface {
	// List returns one page plus the total match count. Ordering is
	// deterministic: price sorts break ties by id, unsorted listings
	// come back in id order.
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// Update applies an allow-listed partial; when fields contains
	// "code" the duplicate check re-runs excluding id.
	Update(ctx context.Context, id int64, fields map[string]interface{}) (model.Product, error)
	SoftDelete(ctx context.Context, id int64) (model.Product, error)
}
