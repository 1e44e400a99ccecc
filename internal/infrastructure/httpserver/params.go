package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
)

// parseID reads the :id path parameter, which must be a positive integer.
func parseID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid ID", apperrors.FieldError{Field: "id", Message: "must be a positive integer", Value: raw})
	}
	return id, nil
}

// parseProductFilter reads the listing query string. Empty parameters are
// treated as absent and inStock only filters for the literal "true".
func parseProductFilter(c echo.Context) (product.Filter, error) {
	var f product.Filter
	if v := c.QueryParam("category"); v != "" {
		f.Category = &v
	}
	var err error
	if f.MinPrice, err = decimalParam(c, "minPrice"); err != nil {
		return product.Filter{}, err
	}
	if f.MaxPrice, err = decimalParam(c, "maxPrice"); err != nil {
		return product.Filter{}, err
	}
	f.InStock = c.QueryParam("inStock") == "true"
	return f, nil
}

func decimalParam(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.Validation("invalid "+name, apperrors.FieldError{Field: name, Message: "must be a number", Value: raw})
	}
	return &d, nil
}
