package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/models"
)

// CreateOrder reads the flower price and inserts the order row in one
// transaction, so the captured price cannot race a concurrent price change.
func (r *GormRepo) CreateOrder(ctx context.Context, userID, flowerID uint, quantity uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flower models.Flower
		if err := tx.Where("id = ?", flowerID).First(&flower).Error; err != nil {
			return err
		}

		order = models.Order{
			UserID:     userID,
			FlowerID:   flowerID,
			Quantity:   quantity,
			TotalPrice: flower.Price * float64(quantity),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.OrderWithFlower, error) {
	rows := []models.OrderWithFlower{}
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.user_id, orders.flower_id, orders.quantity, orders.total_price, orders.created_at, flowers.name AS flower_name, flowers.image_url").
		Joins("JOIN flowers ON orders.flower_id = flowers.id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
