package ports

import (
	"context"

	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	List(ctx context.Context, filter product.Filter) ([]*product.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*product.Product, error)
	Update(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error)
	Delete(ctx context.Context, id int64) (*product.Product, error)
	Inventory(ctx context.Context) (*product.Inventory, error)
}

// ProductService defines the interface for product business logic
type ProductService interface {
	CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	ListProducts(ctx context.Context, filter product.Filter) ([]*product.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*product.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*product.Product, error)
	Inventory(ctx context.Context) (*product.Inventory, error)
}
