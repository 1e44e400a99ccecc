package product

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/optional"
)

func init() {
	// Prices are rendered as JSON numbers, matching what clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// Column bounds of the products table.
const (
	MaxNameLength     = 255
	MaxCategoryLength = 100
	MaxStock          = math.MaxInt32
)

// MaxPrice is the smallest price NUMERIC(12,2) cannot hold once rounded to cents.
var MaxPrice = decimal.New(1, 10)

type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Category    *string         `json:"category" db:"category"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// CreateProductRequest represents the request to create a product. Stock defaults to 0.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
}

func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" || r.Price == nil {
		return apperrors.Validation(`the "name" and "price" fields are required`)
	}
	if err := validatePrice(*r.Price); err != nil {
		return err
	}
	if r.Stock != nil {
		if err := validateStock(*r.Stock); err != nil {
			return err
		}
	}
	if err := validateLength("name", r.Name, MaxNameLength); err != nil {
		return err
	}
	if r.Category != nil {
		return validateLength("category", *r.Category, MaxCategoryLength)
	}
	return nil
}

// StockOrDefault returns the requested stock, or 0 when none was supplied.
func (r *CreateProductRequest) StockOrDefault() int {
	if r.Stock == nil {
		return 0
	}
	return *r.Stock
}

// UpdateProductRequest is a partial update. Only fields present in the request
// body are written; description and category may be cleared with null.
type UpdateProductRequest struct {
	Name        optional.Field[string]          `json:"name"`
	Description optional.Field[string]          `json:"description"`
	Price       optional.Field[decimal.Decimal] `json:"price"`
	Stock       optional.Field[int]             `json:"stock"`
	Category    optional.Field[string]          `json:"category"`
}

// IsEmpty reports whether no field was supplied.
func (r *UpdateProductRequest) IsEmpty() bool {
	return !r.Name.IsSet() && !r.Description.IsSet() && !r.Price.IsSet() &&
		!r.Stock.IsSet() && !r.Category.IsSet()
}

func (r *UpdateProductRequest) Validate() error {
	if p, ok := r.Price.Value(); ok {
		if err := validatePrice(p); err != nil {
			return err
		}
	}
	if s, ok := r.Stock.Value(); ok {
		if err := validateStock(s); err != nil {
			return err
		}
	}
	if n, ok := r.Name.Value(); ok {
		if err := validateLength("name", n, MaxNameLength); err != nil {
			return err
		}
	}
	if c, ok := r.Category.Value(); ok {
		if err := validateLength("category", c, MaxCategoryLength); err != nil {
			return err
		}
	}
	var nulls []apperrors.FieldError
	if r.Name.IsNull() {
		nulls = append(nulls, apperrors.FieldError{Field: "name", Message: "cannot be null"})
	}
	if r.Price.IsNull() {
		nulls = append(nulls, apperrors.FieldError{Field: "price", Message: "cannot be null"})
	}
	if r.Stock.IsNull() {
		nulls = append(nulls, apperrors.FieldError{Field: "stock", Message: "cannot be null"})
	}
	if len(nulls) > 0 {
		return apperrors.Validation("required fields cannot be null", nulls...)
	}
	if n, ok := r.Name.Value(); ok && strings.TrimSpace(n) == "" {
		return apperrors.Validation("name cannot be empty", apperrors.FieldError{Field: "name", Message: "cannot be empty"})
	}
	if r.IsEmpty() {
		return apperrors.Validation("no fields to update")
	}
	return nil
}

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return apperrors.Validation("price cannot be negative", apperrors.FieldError{Field: "price", Message: "must be >= 0", Value: p})
	}
	if p.Round(2).GreaterThanOrEqual(MaxPrice) {
		return apperrors.Validation("price is out of range", apperrors.FieldError{Field: "price", Message: "must be < " + MaxPrice.String(), Value: p})
	}
	return nil
}

func validateStock(s int) error {
	if s < 0 {
		return apperrors.Validation("stock cannot be negative", apperrors.FieldError{Field: "stock", Message: "must be >= 0", Value: s})
	}
	if int64(s) > MaxStock {
		return apperrors.Validation("stock is out of range", apperrors.FieldError{Field: "stock", Message: fmt.Sprintf("must be <= %d", MaxStock), Value: s})
	}
	return nil
}

func validateLength(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return apperrors.Validation(field+" is too long", apperrors.FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", limit)})
	}
	return nil
}

// Filter narrows a product listing. Nil fields and InStock=false apply no predicate.
type Filter struct {
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  bool
}

// Inventory summarizes the products table for gauges.
type Inventory struct {
	Count      int64 `db:"count"`
	TotalStock int64 `db:"total_stock"`
}
