package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/models"
	"github.com/xxpisal/flower-shop/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetFlower(ctx context.Context, id uint) (*models.Flower, error) {
	flower, err := s.Repo.GetFlower(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: flower not found", ErrNotFound)
		}
		return nil, err
	}
	return flower, nil
}

func (s *CatalogService) ListFlowers(ctx context.Context) ([]models.Flower, error) {
	return s.Repo.ListFlowers(ctx)
}
