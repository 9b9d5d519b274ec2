package httphandler_test

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) UpdateProduct(ctx context.Context, id string, p domain.ProductPatch) (domain.Product, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) RelatedProducts(ctx context.Context, id string) ([]domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) TopRatedProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) StockOutProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockCatalog) DeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) DeleteProductReviews(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalog) AddProducts(ctx context.Context, ps []domain.Product) ([]domain.Product, error) {
	args := m.Called(ctx, ps)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) ProductsByType(
	ctx context.Context, productType string, o domain.TypeOrder,
) ([]domain.Product, error) {
	args := m.Called(ctx, productType, o)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) OfferProducts(ctx context.Context, productType string) ([]domain.Product, error) {
	args := m.Called(ctx, productType)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) PopularProducts(ctx context.Context, productType string) ([]domain.Product, error) {
	args := m.Called(ctx, productType)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalog) ReviewedProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) AddCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategories) AddCategories(ctx context.Context, cs []domain.Category) ([]domain.Category, error) {
	args := m.Called(ctx, cs)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategories) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategories) ShownCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategories) CategoriesByProductType(
	ctx context.Context, productType string,
) ([]domain.Category, error) {
	args := m.Called(ctx, productType)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategories) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategories) UpdateCategory(
	ctx context.Context, id string, p domain.CategoryPatch,
) (domain.Category, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategories) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) QueryProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) ApplyQuantityUpdates(
	ctx context.Context, us []domain.RawQuantityUpdate,
) (domain.QuantityReport, error) {
	args := m.Called(ctx, us)
	return args.Get(0).(domain.QuantityReport), args.Error(1)
}

type MockFeedSender struct {
	mock.Mock
}

func (m *MockFeedSender) SendFeed(
	ctx context.Context, source string, us []domain.RawQuantityUpdate,
) error {
	return m.Called(ctx, source, us).Error(0)
}

func (m *MockFeedSender) FeedReport(ctx context.Context, source string) (domain.FeedReport, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(domain.FeedReport), args.Error(1)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) GetOrder(ctx context.Context, id string) (domain.OrderDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderDetail), args.Error(1)
}

func (m *MockOrders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrders) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrders) UpdateOrderStatus(
	ctx context.Context, id string, s domain.OrderStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}
