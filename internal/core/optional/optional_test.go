package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/internal/core/optional"
)

type patch struct {
	Name     optional.Field[string] `json:"name"`
	Category optional.Field[string] `json:"category"`
	Stock    optional.Field[int]    `json:"stock"`
}

func TestField_DecodeDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"category": null, "stock": 5}`), &p))

	assert.True(t, p.Name.IsAbsent())
	assert.False(t, p.Name.IsSet())

	assert.True(t, p.Category.IsNull())
	assert.True(t, p.Category.IsSet())
	assert.Nil(t, p.Category.Ptr())

	v, ok := p.Stock.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestField_DecodeTypeMismatch(t *testing.T) {
	var p patch
	require.Error(t, json.Unmarshal([]byte(`{"stock": "five"}`), &p))
}

func TestField_Constructors(t *testing.T) {
	f := optional.Of("widget")
	require.Equal(t, "widget", *f.Ptr())
	require.True(t, optional.Null[int]().IsNull())

	b, err := json.Marshal(optional.Null[string]())
	require.NoError(t, err)
	require.JSONEq(t, `null`, string(b))
}
