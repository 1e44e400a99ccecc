package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_NumbersPlaceholdersInBindOrder(t *testing.T) {
	var b Builder
	require.Equal(t, "$1", b.Bind("a"))
	require.Equal(t, "$2", b.Bind(2))
	require.Equal(t, []any{"a", 2}, b.Args())
	require.Equal(t, 2, b.Len())
}

func TestWhere_BasePredicateOnly(t *testing.T) {
	var b Builder
	require.Equal(t, "WHERE 1=1", NewWhere(&b).String())
	require.Empty(t, b.Args())
}

func TestWhere_RawBindsNothing(t *testing.T) {
	var b Builder
	w := NewWhere(&b).Cmp("category", "=", "tools").Raw("stock > 0").Cmp("price", "<=", 10)
	require.Equal(t, "WHERE 1=1 AND category = $1 AND stock > 0 AND price <= $2", w.String())
	require.Equal(t, []any{"tools", 10}, b.Args())
}

func TestAssignments(t *testing.T) {
	var b Builder
	a := NewAssignments(&b)
	require.True(t, a.Empty())
	a.Set("stock", 5).Set("category", nil)
	require.False(t, a.Empty())
	require.Equal(t, "stock = $1, category = $2", a.String())
	require.Equal(t, []any{5, nil}, b.Args())
}
