package product

import (
	"context"

	"comanda/internal/domain"

	"github.com/shopspring/decimal"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context, name string) ([]domain.Product, error) {
	return s.repo.List(ctx, name)
}

func (s *productService) Create(ctx context.Context, name string, price decimal.Decimal) (int, error) {
	return s.repo.Insert(ctx, name, price)
}

func (s *productService) Update(ctx context.Context, id int, name string, price decimal.Decimal) error {
	return s.repo.Update(ctx, id, name, price)
}

func (s *productService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
