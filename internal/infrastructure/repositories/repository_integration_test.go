//go:build integration

package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
)

func TestUserRepository_Integration(t *testing.T) {
	usersDB, _ := setupDatabases(t)
	repo := NewUserRepository(usersDB, nil)
	ctx := context.Background()

	jean, err := repo.Create(ctx, &user.CreateUserRequest{Name: "Jean Dupont", Email: "jean@example.com"})
	require.NoError(t, err)
	require.NotZero(t, jean.ID)
	require.False(t, jean.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &user.CreateUserRequest{Name: "Other", Email: "jean@example.com"})
	require.True(t, apperrors.Is(err, apperrors.KindConflict), "got %v", err)

	alice, err := repo.Create(ctx, &user.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, jean.ID, list[0].ID)
	require.Equal(t, alice.ID, list[1].ID)

	got, err := repo.GetByID(ctx, jean.ID)
	require.NoError(t, err)
	require.Equal(t, "jean@example.com", got.Email)

	deleted, err := repo.Delete(ctx, jean.ID)
	require.NoError(t, err)
	require.Equal(t, jean.ID, deleted.ID)

	_, err = repo.GetByID(ctx, jean.ID)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	_, err = repo.Delete(ctx, jean.ID)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestProductRepository_Integration(t *testing.T) {
	_, productsDB := setupDatabases(t)
	repo := NewProductRepository(productsDB, nil)
	ctx := context.Background()

	tools := "tools"
	price := decimal.RequireFromString("9.99")
	widget, err := repo.Create(ctx, &product.CreateProductRequest{Name: "Widget", Price: &price})
	require.NoError(t, err)
	require.Equal(t, 0, widget.Stock)
	require.True(t, price.Equal(widget.Price))
	require.Nil(t, widget.Category)

	hammerPrice := decimal.RequireFromString("25.50")
	stock := 4
	hammer, err := repo.Create(ctx, &product.CreateProductRequest{Name: "Hammer", Price: &hammerPrice, Stock: &stock, Category: &tools})
	require.NoError(t, err)
	anvilPrice := decimal.NewFromInt(80)
	_, err = repo.Create(ctx, &product.CreateProductRequest{Name: "Anvil", Price: &anvilPrice, Category: &tools})
	require.NoError(t, err)

	inStock, err := repo.List(ctx, product.Filter{InStock: true})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	require.Equal(t, hammer.ID, inStock[0].ID)

	minPrice := decimal.NewFromInt(10)
	maxPrice := decimal.NewFromInt(50)
	ranged, err := repo.List(ctx, product.Filter{Category: &tools, MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	require.Equal(t, "Hammer", ranged[0].Name)

	byCategory, err := repo.ListByCategory(ctx, "tools")
	require.NoError(t, err)
	require.Equal(t, "Anvil", byCategory[0].Name)
	require.Equal(t, "Hammer", byCategory[1].Name)

	var patch product.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"stock":5,"category":"gadgets"}`), &patch))
	updated, err := repo.Update(ctx, widget.ID, &patch)
	require.NoError(t, err)
	require.Equal(t, 5, updated.Stock)
	require.Equal(t, "Widget", updated.Name)
	require.Equal(t, "gadgets", *updated.Category)

	var clear product.UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"category":null}`), &clear))
	updated, err = repo.Update(ctx, widget.ID, &clear)
	require.NoError(t, err)
	require.Nil(t, updated.Category)
	require.Equal(t, 5, updated.Stock)

	_, err = repo.Update(ctx, 9999, &patch)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))

	inv, err := repo.Inventory(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), inv.Count)
	require.Equal(t, int64(9), inv.TotalStock)

	_, err = repo.Delete(ctx, widget.ID)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, widget.ID)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestRateLimitRedisRepository_Integration(t *testing.T) {
	client := setupRedis(t)
	repo := NewRateLimitRedisRepository(client)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, start, err := repo.IncrementWindow(ctx, "rl:test:10.0.0.1", time.Hour, 2*time.Hour)
		require.NoError(t, err)
		require.Equal(t, want, count)
		require.Equal(t, time.Now().Truncate(time.Hour).Unix(), start.Unix())
	}

	keys, err := client.Keys(ctx, "rl:test:10.0.0.1:*").Result()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	ttl, err := client.TTL(ctx, keys[0]).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Hour)
}
