package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/models"
	"github.com/xxpisal/flower-shop/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder captures the flower's current price into the order row;
// later price changes do not touch existing orders.
func (s *OrderService) CreateOrder(ctx context.Context, userID, flowerID uint, quantity uint) (*models.Order, error) {
	if flowerID == 0 {
		return nil, fmt.Errorf("%w: flower_id required", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	order, err := s.Repo.CreateOrder(ctx, userID, flowerID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: flower not found", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.OrderWithFlower, error) {
	return s.Repo.ListOrders(ctx, userID)
}
