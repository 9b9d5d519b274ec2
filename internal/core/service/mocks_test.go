package service

import (
	"context"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProducts) ReadProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProducts) UpdateProduct(
	ctx context.Context, id string, p domain.ProductPatch,
) (domain.Product, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProducts) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProducts) ReadProductsBySKU(
	ctx context.Context, skus []string,
) ([]domain.Product, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) RelatedProducts(
	ctx context.Context, categoryName, excludeID string, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, categoryName, excludeID, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) TopRatedProducts(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) StockOutProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) PushReview(ctx context.Context, productID, reviewID string) error {
	return m.Called(ctx, productID, reviewID).Error(0)
}

func (m *MockProducts) PullReview(ctx context.Context, productID, reviewID string) error {
	return m.Called(ctx, productID, reviewID).Error(0)
}

func (m *MockProducts) ClearReviews(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockProducts) InsertProducts(
	ctx context.Context, ps []domain.Product,
) ([]domain.Product, error) {
	args := m.Called(ctx, ps)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) TypeProducts(
	ctx context.Context, l domain.TypeListing,
) ([]domain.Product, error) {
	args := m.Called(ctx, l)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) ReviewedProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProducts) ExistingSKUs(
	ctx context.Context, skus []string,
) ([]string, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProducts) SetQuantities(
	ctx context.Context, us []domain.QuantityUpdate,
) (int, error) {
	args := m.Called(ctx, us)
	return args.Int(0), args.Error(1)
}

func (m *MockProducts) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, int, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *MockProducts) ProductIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProducts) ProductIDsByCategory(
	ctx context.Context,
) (map[string][]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockProducts) ExpiredDiscountIDs(
	ctx context.Context, now time.Time,
) ([]string, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProducts) ClearDiscounts(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

type MockCategories struct {
	mock.Mock
}

func (m *MockCategories) ReadCategory(
	ctx context.Context, id string,
) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategories) CategoryProducts(
	ctx context.Context,
) ([]domain.CategoryProducts, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryProducts), args.Error(1)
}

func (m *MockCategories) StoreCategoryProducts(
	ctx context.Context, cs []domain.CategoryProducts,
) error {
	return m.Called(ctx, cs).Error(0)
}

func (m *MockCategories) AttachProduct(ctx context.Context, categoryID, productID string) error {
	return m.Called(ctx, categoryID, productID).Error(0)
}

func (m *MockCategories) DetachProduct(ctx context.Context, categoryID, productID string) error {
	return m.Called(ctx, categoryID, productID).Error(0)
}

func (m *MockCategories) AttachProducts(
	ctx context.Context, refs map[string][]string,
) error {
	return m.Called(ctx, refs).Error(0)
}

func (m *MockCategories) InsertCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *MockCategories) InsertCategories(
	ctx context.Context, cs []domain.Category,
) ([]domain.Category, error) {
	args := m.Called(ctx, cs)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategories) ReadCategories(
	ctx context.Context, f domain.CategoryFilter,
) ([]domain.Category, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Category), args.Error(1)
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

type MockBrands struct {
	mock.Mock
}

func (m *MockBrands) AttachProduct(ctx context.Context, brandID, productID string) error {
	return m.Called(ctx, brandID, productID).Error(0)
}

func (m *MockBrands) AttachProducts(
	ctx context.Context, refs map[string][]string,
) error {
	return m.Called(ctx, refs).Error(0)
}

type MockReviews struct {
	mock.Mock
}

func (m *MockReviews) InsertReview(
	ctx context.Context, r domain.Review,
) (domain.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviews) DeleteReview(ctx context.Context, id string) (domain.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviews) DeleteProductReviews(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) InsertOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) ReadOrder(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) ReadOrders(
	ctx context.Context, status domain.OrderStatus,
) ([]domain.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrders) SetOrderStatus(
	ctx context.Context, id string, s domain.OrderStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}

type MockInvoices struct {
	mock.Mock
}

func (m *MockInvoices) NextInvoice(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDistricts struct {
	mock.Mock
}

func (m *MockDistricts) InsertDistrict(
	ctx context.Context, d domain.DeliveryDistrict,
) (domain.DeliveryDistrict, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(domain.DeliveryDistrict), args.Error(1)
}

func (m *MockDistricts) ReadDistricts(ctx context.Context) ([]domain.DeliveryDistrict, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DeliveryDistrict), args.Error(1)
}

func (m *MockDistricts) ReadDistrict(
	ctx context.Context, id string,
) (domain.DeliveryDistrict, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeliveryDistrict), args.Error(1)
}

func (m *MockDistricts) UpdateDistrict(
	ctx context.Context, id string, p domain.DistrictPatch,
) (domain.DeliveryDistrict, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.DeliveryDistrict), args.Error(1)
}

func (m *MockDistricts) DeleteDistrict(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockTags struct {
	mock.Mock
}

func (m *MockTags) ReadTagByName(ctx context.Context, name string) (domain.Tag, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTags) InsertTag(ctx context.Context, name string) (domain.Tag, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Tag), args.Error(1)
}

func (m *MockTags) ReadTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTags) DeleteTag(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockFeedProducer struct {
	mock.Mock
}

func (m *MockFeedProducer) ProduceFeed(
	ctx context.Context, source string, us []domain.RawQuantityUpdate,
) error {
	return m.Called(ctx, source, us).Error(0)
}

type MockFeedReports struct {
	mock.Mock
}

func (m *MockFeedReports) ReadFeedReport(
	ctx context.Context, source string,
) (domain.FeedReport, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(domain.FeedReport), args.Error(1)
}

type catalogMocks struct {
	products   *MockProducts
	categories *MockCategories
	brands     *MockBrands
	reviews    *MockReviews
}

func newTestService(opts ...Opt) (Service, catalogMocks) {
	m := catalogMocks{
		products:   &MockProducts{},
		categories: &MockCategories{},
		brands:     &MockBrands{},
		reviews:    &MockReviews{},
	}
	s := New(m.products, m.categories, m.brands, m.reviews, opts...)
	return s, m
}
