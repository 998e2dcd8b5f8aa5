package catalog

import (
	"context"
	"errors"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
	"github.com/Skotchmaster/ecommerce_backend/internal/service/search"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrBadID    = errors.New("invalid product id")
)

type Service struct {
	Repo *repo.GormRepo

	// ES is optional; when set, created products are indexed for search.
	ES    *elasticsearch.Client
	Index string
}

func (s *Service) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.IndexProduct(ctx, s.ES, s.Index, p); err != nil {
			logging.FromContext(ctx).Warn("product_index_failed", "productID", p.ID, "error", err)
		}
	}
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBadID
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}
