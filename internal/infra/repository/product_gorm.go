package repository

import (
	"context"
	"errors"
	"strings"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// List returns one catalog page plus the total match count.
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.OnlyAvailable {
		tx = tx.Where("status = ?", true)
	} else if strings.TrimSpace(q.Category) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(q.Category)) + "%"
		tx = tx.Where("LOWER(category) LIKE ?", like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	// id is the tie key in every branch so identical queries page
	// identically against an unchanged store.
	switch q.Sort {
	case "asc":
		tx = tx.Order("price asc").Order("id asc")
	case "desc":
		tx = tx.Order("price desc").Order("id asc")
	default:
		tx = tx.Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Create inserts a product after checking the code against every row,
// soft-deleted ones included.
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Product{}).
			Where("code = ?", p.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return repo.ErrDuplicateCode
		}

		return tx.Create(&p).Error
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Update applies an already allow-listed partial. The duplicate check only
// re-runs when the partial touches code, excluding the row being updated.
func (r *ProductGormRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (model.Product, error) {
	var updated model.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if code, ok := fields["code"]; ok {
			var count int64
			if err := tx.Model(&model.Product{}).
				Where("code = ? AND id <> ?", code, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return repo.ErrDuplicateCode
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&model.Product{}).
				Where("id = ?", id).
				Updates(fields).Error; err != nil {
				return err
			}
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

// SoftDelete flips status to false. Flipping twice is an error, not a no-op.
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) (model.Product, error) {
	var deleted model.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if !p.Status {
			return repo.ErrAlreadyDeleted
		}

		if err := tx.Model(&model.Product{}).
			Where("id = ?", id).
			Update("status", false).Error; err != nil {
			return err
		}

		return tx.First(&deleted, id).Error
	})
	if err != nil {
		return model.Product{}, err
	}
	return deleted, nil
}
