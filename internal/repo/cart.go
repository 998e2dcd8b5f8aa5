package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/models"
)

func (r *GormRepo) CartLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	var items []models.CartLine
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertCartLine adds line.Quantity to the existing (user, product) line or
// creates a new one. The unique index idx_user_product closes the race
// between two concurrent first adds: the losing insert comes back as a
// duplicate key and falls through to the increment.
func (r *GormRepo) UpsertCartLine(ctx context.Context, line *models.CartLine) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).First(line).Error
		}

		if err := tx.Create(line).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.Model(&models.CartLine{}).
					Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).
					Update("quantity", gorm.Expr("quantity + ?", line.Quantity)).Error
			}
			return err
		}
		return nil
	})
}
