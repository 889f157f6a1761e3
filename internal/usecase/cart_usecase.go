package usecase

import (
	"context"
	"errors"
	"fmt"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
)

// CartUsecase keeps a cart's line items consistent with product identity
// and quantity rules. Every mutation goes through the store's per-cart
// transaction, never through a whole-record rewrite.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ResolvedLine is a line with its product reference substituted by the
// current record. Product is nil when the reference dangles (the row is
// gone entirely); soft-deleted products come back with Status=false so a
// caller can render "unavailable" instead of dropping the line.
type ResolvedLine struct {
	Product  *model.Product `json:"product"`
	Quantity int64          `json:"quantity"`
}

type CartView struct {
	ID       string         `json:"id"`
	Products []ResolvedLine `json:"products"`
}

// LineInput is one incoming (product, quantity) pair for ReplaceAll.
type LineInput struct {
	ProductID int64 `json:"product"`
	Quantity  int64 `json:"quantity"`
}

func (u *CartUsecase) CreateCart(ctx context.Context) (CartView, error) {
	cart, err := u.cartRepo.Create(ctx)
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}
	return CartView{ID: cart.ID, Products: []ResolvedLine{}}, nil
}

// GetCart returns the cart with its lines resolved to product snapshots.
func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (CartView, error) {
	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cart.ID)
}

// AddProduct merges a quantity delta into the cart: an existing line for
// the product grows by qty, otherwise a new line appears.
func (u *CartUsecase) AddProduct(ctx context.Context, cartID string, productID int64, qty int64) (CartView, error) {
	if qty < 1 {
		return CartView{}, NewError(KindInvalidQuantity, "quantity must be at least 1")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindProductNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}
	if !p.Status {
		return CartView{}, NewError(KindInactiveProduct, fmt.Sprintf("product %d is no longer available", productID))
	}

	if err := u.cartRepo.AddLine(ctx, cartID, productID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
		}
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cartID)
}

// UpdateQuantity sets a line's quantity to exactly qty.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cartID string, productID int64, qty int64) (CartView, error) {
	if qty <= 0 {
		return CartView{}, NewError(KindInvalidQuantity, "quantity must be greater than 0")
	}

	err := u.cartRepo.SetLineQuantity(ctx, cartID, productID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
	}
	if errors.Is(err, repo.ErrLineNotFound) {
		return CartView{}, NewError(KindLineNotFound, fmt.Sprintf("product %d is not in the cart", productID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cartID)
}

// RemoveProduct drops the line when present; removing an absent line
// succeeds and changes nothing.
func (u *CartUsecase) RemoveProduct(ctx context.Context, cartID string, productID int64) (CartView, error) {
	err := u.cartRepo.RemoveLine(ctx, cartID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cartID)
}

func (u *CartUsecase) ClearCart(ctx context.Context, cartID string) (CartView, error) {
	err := u.cartRepo.Clear(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cartID)
}

// ReplaceAll swaps the whole line set. Every product must resolve before
// anything is written; the first unresolvable id fails the call and the
// cart keeps its prior lines. Repeated ids in the input merge by summing.
func (u *CartUsecase) ReplaceAll(ctx context.Context, cartID string, lines []LineInput) (CartView, error) {
	merged := make([]model.CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))

	for _, in := range lines {
		if in.Quantity < 1 {
			return CartView{}, NewError(KindInvalidQuantity, "quantity must be at least 1")
		}

		if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return CartView{}, NewError(KindProductNotFound, fmt.Sprintf("product %d not found", in.ProductID))
			}
			return CartView{}, NewError(KindStorage, "db error")
		}

		if i, ok := index[in.ProductID]; ok {
			merged[i].Quantity += in.Quantity
			continue
		}
		index[in.ProductID] = len(merged)
		merged = append(merged, model.CartLine{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	err := u.cartRepo.ReplaceLines(ctx, cartID, merged)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewError(KindCartNotFound, fmt.Sprintf("cart %s not found", cartID))
	}
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	return u.buildCartView(ctx, cartID)
}

func (u *CartUsecase) buildCartView(ctx context.Context, cartID string) (CartView, error) {
	lines, err := u.cartRepo.ListLines(ctx, cartID)
	if err != nil {
		return CartView{}, NewError(KindStorage, "db error")
	}

	resolved := make([]ResolvedLine, 0, len(lines))
	for _, line := range lines {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			// Dangling reference: the product row is gone. The line
			// stays, the snapshot is null.
			resolved = append(resolved, ResolvedLine{Product: nil, Quantity: line.Quantity})
			continue
		}
		if err != nil {
			return CartView{}, NewError(KindStorage, "db error")
		}

		resolved = append(resolved, ResolvedLine{Product: &p, Quantity: line.Quantity})
	}

	return CartView{ID: cartID, Products: resolved}, nil
}
