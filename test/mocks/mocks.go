package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
)

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	CreateFn  func(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetByIDFn func(ctx context.Context, id int64) (*user.User, error)
	DeleteFn  func(ctx context.Context, id int64) (*user.User, error)
	ListAllFn func(ctx context.Context) ([]*user.User, error)
}

func (m *UserRepositoryMock) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	return &user.User{ID: 1, Name: req.Name, Email: req.Email}, nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *UserRepositoryMock) Delete(ctx context.Context, id int64) (*user.User, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return &user.User{ID: id}, nil
}
func (m *UserRepositoryMock) ListAll(ctx context.Context) ([]*user.User, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return []*user.User{}, nil
}

// ProductRepositoryMock is a lightweight mock for ProductRepository
type ProductRepositoryMock struct {
	CreateFn         func(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetByIDFn        func(ctx context.Context, id int64) (*product.Product, error)
	ListFn           func(ctx context.Context, filter product.Filter) ([]*product.Product, error)
	ListByCategoryFn func(ctx context.Context, category string) ([]*product.Product, error)
	UpdateFn         func(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error)
	DeleteFn         func(ctx context.Context, id int64) (*product.Product, error)
	InventoryFn      func(ctx context.Context) (*product.Inventory, error)
}

func (m *ProductRepositoryMock) Create(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	return &product.Product{ID: 1, Name: req.Name, Stock: req.StockOrDefault()}, nil
}
func (m *ProductRepositoryMock) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ProductRepositoryMock) List(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*product.Product{}, nil
}
func (m *ProductRepositoryMock) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, category)
	}
	return []*product.Product{}, nil
}
func (m *ProductRepositoryMock) Update(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, req)
	}
	return &product.Product{ID: id}, nil
}
func (m *ProductRepositoryMock) Delete(ctx context.Context, id int64) (*product.Product, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return &product.Product{ID: id}, nil
}
func (m *ProductRepositoryMock) Inventory(ctx context.Context) (*product.Inventory, error) {
	if m.InventoryFn != nil {
		return m.InventoryFn(ctx)
	}
	return &product.Inventory{}, nil
}

// CacheMock is a lightweight mock for Cache
type CacheMock struct {
	GetFn    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}

// UserServiceMock is a lightweight mock implementing ports.UserService
type UserServiceMock struct {
	CreateUserFn func(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetUserFn    func(ctx context.Context, id int64) (*user.User, error)
	DeleteUserFn func(ctx context.Context, id int64) (*user.User, error)
	ListUsersFn  func(ctx context.Context) ([]*user.User, bool, error)
}

func (m *UserServiceMock) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, req)
	}
	return &user.User{ID: 1, Name: req.Name, Email: req.Email}, nil
}
func (m *UserServiceMock) GetUser(ctx context.Context, id int64) (*user.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *UserServiceMock) DeleteUser(ctx context.Context, id int64) (*user.User, error) {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return &user.User{ID: id}, nil
}
func (m *UserServiceMock) ListUsers(ctx context.Context) ([]*user.User, bool, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []*user.User{}, false, nil
}

// ProductServiceMock is a lightweight mock implementing ports.ProductService
type ProductServiceMock struct {
	CreateProductFn  func(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetProductFn     func(ctx context.Context, id int64) (*product.Product, error)
	ListProductsFn   func(ctx context.Context, filter product.Filter) ([]*product.Product, error)
	ListByCategoryFn func(ctx context.Context, category string) ([]*product.Product, error)
	UpdateProductFn  func(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error)
	DeleteProductFn  func(ctx context.Context, id int64) (*product.Product, error)
	InventoryFn      func(ctx context.Context) (*product.Inventory, error)
}

func (m *ProductServiceMock) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, req)
	}
	return &product.Product{ID: 1, Name: req.Name}, nil
}
func (m *ProductServiceMock) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ProductServiceMock) ListProducts(ctx context.Context, filter product.Filter) ([]*product.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, filter)
	}
	return []*product.Product{}, nil
}
func (m *ProductServiceMock) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, category)
	}
	return []*product.Product{}, nil
}
func (m *ProductServiceMock) UpdateProduct(ctx context.Context, id int64, req *product.UpdateProductRequest) (*product.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, id, req)
	}
	return &product.Product{ID: id}, nil
}
func (m *ProductServiceMock) DeleteProduct(ctx context.Context, id int64) (*product.Product, error) {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, id)
	}
	return &product.Product{ID: id}, nil
}
func (m *ProductServiceMock) Inventory(ctx context.Context) (*product.Inventory, error) {
	if m.InventoryFn != nil {
		return m.InventoryFn(ctx)
	}
	return &product.Inventory{}, nil
}

// RateLimiterMock is a lightweight mock implementing ports.RateLimiter
type RateLimiterMock struct {
	AllowFn func(ctx context.Context, key string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterMock) Allow(ctx context.Context, key string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}
	return true, 99, 100, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, key, window, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// MetricsRecorder implements ports.OperationMetrics by counting calls.
type MetricsRecorder struct {
	mu                   sync.Mutex
	Operations           map[string]int
	Hits                 int
	Misses               int
	InvalidationFailures int
}

func (m *MetricsRecorder) ObserveOperation(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Operations == nil {
		m.Operations = map[string]int{}
	}
	m.Operations[operation]++
}
func (m *MetricsRecorder) CacheHit(string) {
	m.mu.Lock()
	m.Hits++
	m.mu.Unlock()
}
func (m *MetricsRecorder) CacheMiss(string) {
	m.mu.Lock()
	m.Misses++
	m.mu.Unlock()
}
func (m *MetricsRecorder) CacheInvalidationFailed(string) {
	m.mu.Lock()
	m.InvalidationFailures++
	m.mu.Unlock()
}

// Snapshot returns hit, miss and invalidation failure counts.
func (m *MetricsRecorder) Snapshot() (hits, misses, invalidationFailures int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Hits, m.Misses, m.InvalidationFailures
}
