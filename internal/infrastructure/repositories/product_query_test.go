package repositories

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuildListQuery_NoFilters(t *testing.T) {
	sql, args := buildListQuery(product.Filter{})
	require.Equal(t, "SELECT "+productColumns+" FROM products WHERE 1=1 ORDER BY id ASC", sql)
	require.Empty(t, args)
}

func TestBuildListQuery_EverySubset(t *testing.T) {
	category := strPtr("tools")
	minPrice := decPtr("5")
	maxPrice := decPtr("20.50")

	for mask := 0; mask < 16; mask++ {
		f := product.Filter{}
		var wantPreds []string
		var wantArgs []any
		n := 0
		next := func() string {
			n++
			return "$" + string(rune('0'+n))
		}
		if mask&1 != 0 {
			f.Category = category
			wantPreds = append(wantPreds, "category = "+next())
			wantArgs = append(wantArgs, "tools")
		}
		if mask&2 != 0 {
			f.MinPrice = minPrice
			wantPreds = append(wantPreds, "price >= "+next())
			wantArgs = append(wantArgs, *minPrice)
		}
		if mask&4 != 0 {
			f.MaxPrice = maxPrice
			wantPreds = append(wantPreds, "price <= "+next())
			wantArgs = append(wantArgs, *maxPrice)
		}
		if mask&8 != 0 {
			f.InStock = true
			wantPreds = append(wantPreds, "stock > 0")
		}

		sql, args := buildListQuery(f)
		where := "WHERE 1=1"
		for _, p := range wantPreds {
			where += " AND " + p
		}
		assert.Equal(t, "SELECT "+productColumns+" FROM products "+where+" ORDER BY id ASC", sql, "mask %04b", mask)
		assert.Equal(t, len(wantArgs), len(args), "mask %04b", mask)
		for i := range wantArgs {
			assert.Equal(t, wantArgs[i], args[i], "mask %04b arg %d", mask, i)
		}
		assert.Equal(t, len(args), strings.Count(sql, "$"), "placeholders must match args")
		if f.MinPrice == nil {
			assert.NotContains(t, sql, "price >=")
		}
	}
}

func TestBuildListQuery_ValuesNeverInterpolated(t *testing.T) {
	injection := "x' OR '1'='1"
	sql, args := buildListQuery(product.Filter{Category: &injection})
	require.NotContains(t, sql, injection)
	require.Equal(t, []any{injection}, args)
}

func decodePatch(t *testing.T, body string) *product.UpdateProductRequest {
	t.Helper()
	var req product.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestBuildUpdateQuery_OnlySuppliedFields(t *testing.T) {
	sql, args, err := buildUpdateQuery(42, decodePatch(t, `{"stock":5}`))
	require.NoError(t, err)
	require.Equal(t, "UPDATE products SET stock = $1 WHERE id = $2 RETURNING "+productColumns, sql)
	require.Equal(t, []any{5, int64(42)}, args)
	for _, col := range []string{"name =", "price =", "category =", "description ="} {
		require.NotContains(t, sql, col)
	}
}

func TestBuildUpdateQuery_AllFieldsInOrderWithNull(t *testing.T) {
	sql, args, err := buildUpdateQuery(7, decodePatch(t, `{"name":"Gadget","description":null,"price":12.5,"stock":0,"category":"toys"}`))
	require.NoError(t, err)
	require.Equal(t, "UPDATE products SET name = $1, description = $2, price = $3, stock = $4, category = $5 WHERE id = $6 RETURNING "+productColumns, sql)
	require.Len(t, args, 6)
	require.Equal(t, "Gadget", args[0])
	require.Nil(t, args[1])
	require.True(t, decimal.RequireFromString("12.5").Equal(args[2].(decimal.Decimal)))
	require.Equal(t, 0, args[3])
	require.Equal(t, "toys", args[4])
	require.Equal(t, int64(7), args[5])
}

func TestBuildUpdateQuery_Rejections(t *testing.T) {
	for _, body := range []string{`{}`, `{"price":-1}`, `{"stock":-2}`, `{"name":null}`} {
		_, _, err := buildUpdateQuery(1, decodePatch(t, body))
		require.True(t, apperrors.Is(err, apperrors.KindValidation), "body %s: got %v", body, err)
	}
}
