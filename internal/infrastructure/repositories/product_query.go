package repositories

import (
	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
	"github.com/cloudnative-labs/microservices/internal/core/optional"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/db/query"
)

const productColumns = `id, name, description, price, stock, category, created_at`

// buildListQuery turns a sparse filter into a SELECT. Each supplied field adds one
// ANDed predicate; omitted fields add nothing.
func buildListQuery(f product.Filter) (string, []any) {
	var b query.Builder
	where := query.NewWhere(&b)
	if f.Category != nil {
		where.Cmp("category", "=", *f.Category)
	}
	if f.MinPrice != nil {
		where.Cmp("price", ">=", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where.Cmp("price", "<=", *f.MaxPrice)
	}
	if f.InStock {
		where.Raw("stock > 0")
	}
	sql := `SELECT ` + productColumns + ` FROM products ` + where.String() + ` ORDER BY id ASC`
	return sql, b.Args()
}

// buildUpdateQuery assigns only the fields present in req and binds id last.
func buildUpdateQuery(id int64, req *product.UpdateProductRequest) (string, []any, error) {
	if err := req.Validate(); err != nil {
		return "", nil, err
	}

	var b query.Builder
	set := query.NewAssignments(&b)
	if req.Name.IsSet() {
		set.Set("name", nullable(req.Name))
	}
	if req.Description.IsSet() {
		set.Set("description", nullable(req.Description))
	}
	if req.Price.IsSet() {
		set.Set("price", nullable(req.Price))
	}
	if req.Stock.IsSet() {
		set.Set("stock", nullable(req.Stock))
	}
	if req.Category.IsSet() {
		set.Set("category", nullable(req.Category))
	}

	idPlaceholder := b.Bind(id)
	sql := `UPDATE products SET ` + set.String() + ` WHERE id = ` + idPlaceholder + ` RETURNING ` + productColumns
	return sql, b.Args(), nil
}

// nullable yields an untyped nil for a null field so the driver writes NULL.
func nullable[T any](f optional.Field[T]) any {
	if v, ok := f.Value(); ok {
		return v
	}
	return nil
}
