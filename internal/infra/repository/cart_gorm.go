package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// Create inserts an empty cart with a fresh UUID.
func (r *CartGormRepository) Create(ctx context.Context) (model.Cart, error) {
	cart := model.Cart{ID: uuid.NewString()}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) ListLines(ctx context.Context, cartID string) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// lockCart loads the cart row under FOR UPDATE so concurrent mutations to
// the same cart serialize. sqlite has no row locks; its single writer gives
// the same guarantee.
func lockCart(tx *gorm.DB, cartID string) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart model.Cart
	err := q.Where("id = ?", cartID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}

// AddLine merges: same product increments quantity, new product appends.
func (r *CartGormRepository) AddLine(ctx context.Context, cartID string, productID int64, qty int64) error {
	if qty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		var line model.CartLine
		err := tx.
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&line).Error

		if err == nil {
			return tx.Model(&model.CartLine{}).
				Where("id = ?", line.ID).
				Update("quantity", line.Quantity+qty).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newLine := model.CartLine{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  qty,
		}
		return tx.Create(&newLine).Error
	})
}

// SetLineQuantity is an absolute set, never a delta.
func (r *CartGormRepository) SetLineQuantity(ctx context.Context, cartID string, productID int64, qty int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		res := tx.Model(&model.CartLine{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", qty)

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrLineNotFound
		}
		return nil
	})
}

// RemoveLine deletes the line when present; absent is fine.
func (r *CartGormRepository) RemoveLine(ctx context.Context, cartID string, productID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		return tx.
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&model.CartLine{}).Error
	})
}

func (r *CartGormRepository) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		return tx.
			Where("cart_id = ?", cartID).
			Delete(&model.CartLine{}).Error
	})
}

// ReplaceLines swaps the whole line set atomically.
func (r *CartGormRepository) ReplaceLines(ctx context.Context, cartID string, lines []model.CartLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCart(tx, cartID); err != nil {
			return err
		}

		if err := tx.
			Where("cart_id = ?", cartID).
			Delete(&model.CartLine{}).Error; err != nil {
			return err
		}

		for i := range lines {
			newLine := model.CartLine{
				CartID:    cartID,
				ProductID: lines[i].ProductID,
				Quantity:  lines[i].Quantity,
			}
			if err := tx.Create(&newLine).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
