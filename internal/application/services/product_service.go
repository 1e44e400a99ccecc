package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
)

// ProductService has no cache layer; every call reaches the repository.
type ProductService struct {
	repo    ports.ProductRepository
	logger  *logrus.Logger
	metrics ports.OperationMetrics
}

func NewProductService(repo ports.ProductRepository, logger *logrus.Logger, metrics ports.OperationMetrics) ports.ProductService {
	return &ProductService{repo: repo, logger: logger, metrics: metrics}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.observe("create")
	return p, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.observe("get")
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.observe("list")
	return products, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.observe("list_by_category")
	return products, nil
}

// UpdateProduct rejects invalid or empty patches before any store access.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithField("product_id", id).Info("product updated")
	}
	s.observe("update")
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.observe("delete")
	return p, nil
}

func (s *ProductService) Inventory(ctx context.Context) (*product.Inventory, error) {
	return s.repo.Inventory(ctx)
}

func (s *ProductService) observe(op string) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(op)
	}
}
