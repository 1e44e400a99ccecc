package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
	"github.com/cloudnative-labs/microservices/internal/core/ports"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/db"
)

// ProductRepository implements the product repository interface
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{db: database, logger: logger}
}

// Create inserts a product; stock defaults to 0 when not supplied.
func (r *ProductRepository) Create(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if req.Price == nil {
		return nil, apperrors.Validation(`the "price" field is required`)
	}
	var p product.Product
	query := `INSERT INTO products (name, description, price, stock, category)
		VALUES ($1, $2, $3, $4, $5) RETURNING ` + productColumns

	err := r.db.DB.GetContext(ctx, &p, query, req.Name, req.Description, *req.Price, req.StockOrDefault(), req.Category)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"name": req.Name}).WithError(err).Error("db: failed to create product")
		}
		return nil, apperrors.Dependency("failed to create product", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Info("db: product created")
	}
	return &p, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	if err := r.db.DB.GetContext(ctx, &p, query, id); err != nil {
		return nil, r.rowError(err, id, "get")
	}
	return &p, nil
}

// List retrieves products matching filter ordered by ascending id.
func (r *ProductRepository) List(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	products := []*product.Product{}
	query, args := buildListQuery(filter)

	if err := r.db.DB.SelectContext(ctx, &products, query, args...); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"params": len(args)}).WithError(err).Error("db: failed to list products")
		}
		return nil, apperrors.Dependency("failed to list products", err)
	}
	return products, nil
}

// ListByCategory retrieves the products of one category ordered by name.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	products := []*product.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &products, query, category); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"category": category}).WithError(err).Error("db: failed to list products by category")
		}
		return nil, apperrors.Dependency("failed to list products by category", err)
	}
	return products, nil
}

// Update writes the fields present in req and returns the updated row.
func (r *ProductRepository) Update(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error) {
	query, args, err := buildUpdateQuery(id, req)
	if err != nil {
		return nil, err
	}

	var p product.Product
	if err := r.db.DB.GetContext(ctx, &p, query, args...); err != nil {
		return nil, r.rowError(err, id, "update")
	}
	return &p, nil
}

// Delete removes a product and returns the deleted row.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	query := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns

	if err := r.db.DB.GetContext(ctx, &p, query, id); err != nil {
		return nil, r.rowError(err, id, "delete")
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"product_id": id}).Info("db: product deleted")
	}
	return &p, nil
}

// Inventory returns the product count and summed stock.
func (r *ProductRepository) Inventory(ctx context.Context) (*product.Inventory, error) {
	var inv product.Inventory
	query := `SELECT COUNT(*) AS count, COALESCE(SUM(stock), 0) AS total_stock FROM products`

	if err := r.db.DB.GetContext(ctx, &inv, query); err != nil {
		return nil, apperrors.Dependency("failed to read inventory", err)
	}
	return &inv, nil
}

// rowError maps a single-row lookup failure to NotFound or Dependency.
func (r *ProductRepository) rowError(err error, id int64, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"product_id": id, "operation": op}).Debug("db: product not found")
		}
		return apperrors.NotFound(fmt.Sprintf("product with ID %d not found", id))
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"product_id": id, "operation": op}).WithError(err).Error("db: product query failed")
	}
	return apperrors.Dependency(fmt.Sprintf("failed to %s product", op), err)
}
