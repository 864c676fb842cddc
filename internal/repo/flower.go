package repo

import (
	"context"

	"github.com/xxpisal/flower-shop/internal/models"
)

func (r *GormRepo) GetFlower(ctx context.Context, id uint) (*models.Flower, error) {
	flower := models.Flower{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&flower).Error; err != nil {
		return nil, err
	}
	return &flower, nil
}

func (r *GormRepo) ListFlowers(ctx context.Context) ([]models.Flower, error) {
	items := []models.Flower{}
	if err := r.DB.WithContext(ctx).Model(&models.Flower{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
