package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
)

// FilterAvailable is the sentinel filter value restricting a listing to
// active products. Any other non-empty filter matches against category.
const FilterAvailable = "available"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ProductValidator checks catalog inputs before they reach the store.
type ProductValidator interface {
	ValidateCreate(in CreateProductInput) error
	ValidateUpdate(in UpdateProductInput) error
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	validator   ProductValidator
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, validator ProductValidator) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		validator:   validator,
	}
}

type QueryInput struct {
	Filter string // "", "available", or a category fragment
	Sort   string // "", "asc", "desc"
	Page   int    // 0 means default
	Limit  int    // 0 means default
}

// ProductPage mirrors the listing payload: one page of items plus the
// navigation metadata for the adjacent pages.
type ProductPage struct {
	Payload     []model.Product `json:"payload"`
	TotalPages  int             `json:"totalPages"`
	PrevPage    *int            `json:"prevPage"`
	NextPage    *int            `json:"nextPage"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
	HasPrevPage bool            `json:"hasPrevPage"`
	HasNextPage bool            `json:"hasNextPage"`
	PrevLink    *string         `json:"prevLink"`
	NextLink    *string         `json:"nextLink"`
}

// Query lists the catalog filtered, sorted and paginated. No filter means
// the unrestricted listing, soft-deleted products included.
func (u *ProductUsecase) Query(ctx context.Context, in QueryInput) (ProductPage, error) {
	page := in.Page
	if page == 0 {
		page = defaultPage
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	if page < 1 {
		return ProductPage{}, NewError(KindValidation, "invalid page")
	}
	if limit < 1 || limit > maxLimit {
		return ProductPage{}, NewError(KindValidation, "invalid limit")
	}
	switch in.Sort {
	case "", "asc", "desc":
	default:
		return ProductPage{}, NewError(KindValidation, "invalid sort")
	}

	filter := strings.TrimSpace(in.Filter)
	q := repo.ProductListQuery{
		Sort:  in.Sort,
		Page:  page,
		Limit: limit,
	}
	if filter == FilterAvailable {
		q.OnlyAvailable = true
	} else if filter != "" {
		q.Category = filter
	}

	items, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductPage{}, NewError(KindStorage, "db error")
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if page > totalPages && totalPages > 0 {
		return ProductPage{}, NewError(KindPageOutOfRange, fmt.Sprintf("page %d does not exist", page))
	}

	out := ProductPage{
		Payload:     items,
		TotalPages:  totalPages,
		Page:        page,
		Limit:       limit,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}

	if out.HasPrevPage {
		prev := page - 1
		link := buildPageLink(prev, limit, in.Sort, filter)
		out.PrevPage = &prev
		out.PrevLink = &link
	}
	if out.HasNextPage {
		next := page + 1
		link := buildPageLink(next, limit, in.Sort, filter)
		out.NextPage = &next
		out.NextLink = &link
	}

	return out, nil
}

// buildPageLink encodes the parameters of an adjacent page. Parameter order
// is fixed so identical queries produce identical links.
func buildPageLink(page int, limit int, sort string, filter string) string {
	link := fmt.Sprintf("/api/products?page=%d&limit=%d", page, limit)
	if sort != "" {
		link += "&sort=" + sort
	}
	if filter != "" {
		link += "&query=" + filter
	}
	return link
}

// Get returns the product whatever its status; callers decide how to
// surface soft-deleted ones.
func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewError(KindNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return model.Product{}, NewError(KindStorage, "db error")
	}
	return p, nil
}

type CreateProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int64   `json:"stock" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,oneof=celular notebook smartwatch auriculares general"`
	Thumbnails  []string `json:"thumbnails" validate:"omitempty,dive,uri"`
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if err := u.validator.ValidateCreate(in); err != nil {
		return model.Product{}, err
	}

	thumbnails := in.Thumbnails
	if thumbnails == nil {
		thumbnails = []string{}
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Code:        strings.TrimSpace(in.Code),
		Price:       *in.Price,
		Stock:       *in.Stock,
		Category:    model.Category(in.Category),
		Status:      true,
		Thumbnails:  pq.StringArray(thumbnails),
	})
	if errors.Is(err, repo.ErrDuplicateCode) {
		return model.Product{}, NewError(KindDuplicateCode, fmt.Sprintf("code %s already exists", strings.TrimSpace(in.Code)))
	}
	if err != nil {
		return model.Product{}, NewError(KindStorage, "db error")
	}
	return p, nil
}

// UpdateProductInput is a partial: nil fields stay untouched. Neither id
// nor status can travel through here; status only flips via Delete.
type UpdateProductInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	Code        *string   `json:"code" validate:"omitempty,min=1"`
	Price       *float64  `json:"price" validate:"omitempty,gte=0"`
	Stock       *int64    `json:"stock" validate:"omitempty,gte=0"`
	Category    *string   `json:"category" validate:"omitempty,oneof=celular notebook smartwatch auriculares general"`
	Thumbnails  *[]string `json:"thumbnails" validate:"omitempty,dive,uri"`
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if err := u.validator.ValidateUpdate(in); err != nil {
		return model.Product{}, err
	}

	// Explicit allow-list; nothing else can be injected into the row.
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Code != nil {
		fields["code"] = strings.TrimSpace(*in.Code)
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Thumbnails != nil {
		fields["thumbnails"] = pq.StringArray(*in.Thumbnails)
	}

	p, err := u.productRepo.Update(ctx, productID, fields)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewError(KindNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if errors.Is(err, repo.ErrDuplicateCode) {
		return model.Product{}, NewError(KindDuplicateCode, "another product already has this code")
	}
	if err != nil {
		return model.Product{}, NewError(KindStorage, "db error")
	}
	return p, nil
}

// Delete flips status to false and returns the flipped record.
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewError(KindNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if errors.Is(err, repo.ErrAlreadyDeleted) {
		return model.Product{}, NewError(KindAlreadyDeleted, fmt.Sprintf("product %d is already deleted", productID))
	}
	if err != nil {
		return model.Product{}, NewError(KindStorage, "db error")
	}
	return p, nil
}
