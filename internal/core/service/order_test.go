package service

import (
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderMocks struct {
	orders    *MockOrders
	districts *MockDistricts
	products  *MockProducts
	invoices  *MockInvoices
}

func newTestOrderService() (OrderService, orderMocks) {
	m := orderMocks{&MockOrders{}, &MockDistricts{}, &MockProducts{}, &MockInvoices{}}
	return NewOrderService(m.orders, m.districts, m.products, m.invoices), m
}

func validOrder() domain.Order {
	return domain.Order{
		FullName:    "Ann Lee",
		PhoneNumber: "+15550100",
		DistrictID:  "d1",
		City:        "Springfield",
		Street:      "Main st",
		Building:    "7",
		Floor:       "2",
		Items: []domain.OrderItem{
			{SKU: "bag-1", Quantity: 2},
			{SKU: "CAP-2", Quantity: 1},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	district := domain.DeliveryDistrict{ID: "d1", Name: "North", DeliveryCost: 3}

	t.Run("PricedFromStoredProducts", func(t *testing.T) {
		s, m := newTestOrderService()

		m.districts.On("ReadDistrict", mock.Anything, "d1").Return(district, nil)
		m.products.On("ReadProductsBySKU", mock.Anything, []string{"BAG-1", "CAP-2"}).
			Return([]domain.Product{
				{SKU: "BAG-1", Price: 10, Discount: 8},
				{SKU: "cap-2", Price: 5.5},
			}, nil)
		m.invoices.On("NextInvoice", mock.Anything).Return(int64(42), nil)
		m.orders.On("InsertOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
			return o.Amount == 28.5 &&
				o.DiscountedAmount == 24.5 &&
				o.Invoice == 42 &&
				o.Status == domain.OrderPending &&
				o.PaymentMethod == domain.PaymentCashOnDelivery
		})).Return(domain.Order{ID: "o1", Invoice: 42}, nil)

		got, err := s.CreateOrder(t.Context(), validOrder())
		require.NoError(t, err)
		assert.Equal(t, "o1", got.ID)
		require.NotNil(t, got.District)
		assert.Equal(t, "North", got.District.Name)
		m.orders.AssertExpectations(t)
	})

	t.Run("UnknownSKU", func(t *testing.T) {
		s, m := newTestOrderService()

		m.districts.On("ReadDistrict", mock.Anything, "d1").Return(district, nil)
		m.products.On("ReadProductsBySKU", mock.Anything, mock.Anything).
			Return([]domain.Product{{SKU: "BAG-1", Price: 10}}, nil)

		_, err := s.CreateOrder(t.Context(), validOrder())
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "CAP-2")
		m.invoices.AssertNotCalled(t, "NextInvoice", mock.Anything)
	})

	t.Run("UnknownDistrict", func(t *testing.T) {
		s, m := newTestOrderService()
		m.districts.On("ReadDistrict", mock.Anything, "d1").
			Return(domain.DeliveryDistrict{}, domain.ErrNotFound)

		_, err := s.CreateOrder(t.Context(), validOrder())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Invalid", func(t *testing.T) {
		s, _ := newTestOrderService()
		o := validOrder()
		o.FullName = " "
		o.Items = []domain.OrderItem{{SKU: "A", Quantity: 0}}
		o.PaymentMethod = "bitcoin"

		_, err := s.CreateOrder(t.Context(), o)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "full name is required")
		assert.ErrorContains(t, err, "quantity must be at least 1")
		assert.ErrorContains(t, err, "unknown payment method")
	})

	t.Run("NoItems", func(t *testing.T) {
		s, _ := newTestOrderService()
		o := validOrder()
		o.Items = nil

		_, err := s.CreateOrder(t.Context(), o)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestGetOrder(t *testing.T) {
	s, m := newTestOrderService()

	m.orders.On("ReadOrder", mock.Anything, "o1").Return(domain.Order{
		ID:         "o1",
		DistrictID: "gone",
		Items: []domain.OrderItem{
			{SKU: "BAG-1", Quantity: 1},
			{SKU: "OLD-1", Quantity: 3},
		},
	}, nil)
	m.districts.On("ReadDistrict", mock.Anything, "gone").
		Return(domain.DeliveryDistrict{}, domain.ErrNotFound)
	m.products.On("ReadProductsBySKU", mock.Anything, []string{"BAG-1", "OLD-1"}).
		Return([]domain.Product{{
			SKU:      "BAG-1",
			Title:    "Bag",
			Brand:    domain.Ref{Name: "Acme"},
			Price:    10,
			Discount: 7,
		}}, nil)

	got, err := s.GetOrder(t.Context(), "o1")
	require.NoError(t, err)
	assert.Nil(t, got.District)
	assert.Equal(t, []domain.OrderItemDetail{
		{
			SKU: "BAG-1", Quantity: 1, Found: true, Title: "Bag",
			BrandName: "Acme", Price: 10, DiscountedPrice: 7,
		},
		{SKU: "OLD-1", Quantity: 3},
	}, got.Lines)
}

func TestListOrders(t *testing.T) {
	s, m := newTestOrderService()

	m.orders.On("ReadOrders", mock.Anything, domain.OrderPending).Return([]domain.Order{
		{ID: "o1", DistrictID: "d1"},
		{ID: "o2", DistrictID: "d2"},
	}, nil)
	m.districts.On("ReadDistricts", mock.Anything).Return([]domain.DeliveryDistrict{
		{ID: "d1", Name: "North"},
	}, nil)

	got, err := s.PendingOrders(t.Context())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].District)
	assert.Equal(t, "North", got[0].District.Name)
	assert.Nil(t, got[1].District)
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Unknown", func(t *testing.T) {
		s, m := newTestOrderService()
		_, err := s.UpdateOrderStatus(t.Context(), "o1", "shipped")
		require.ErrorIs(t, err, domain.ErrValidation)
		m.orders.AssertNotCalled(t, "SetOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Normalized", func(t *testing.T) {
		s, m := newTestOrderService()
		m.orders.On("SetOrderStatus", mock.Anything, "o1", domain.OrderDelivered).
			Return(domain.Order{ID: "o1", Status: domain.OrderDelivered}, nil)

		got, err := s.UpdateOrderStatus(t.Context(), "o1", " Delivered ")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderDelivered, got.Status)
	})

	t.Run("Missing", func(t *testing.T) {
		s, m := newTestOrderService()
		m.orders.On("SetOrderStatus", mock.Anything, "o9", domain.OrderCancel).
			Return(domain.Order{}, domain.ErrNotFound)

		_, err := s.UpdateOrderStatus(t.Context(), "o9", domain.OrderCancel)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrderTotals(t *testing.T) {
	bySKU := map[string]domain.Product{
		"A": {Price: 0.1, Discount: 0.05},
		"B": {Price: 0.2},
	}
	amount, discounted := orderTotals(
		[]domain.OrderItem{{SKU: "A", Quantity: 3}, {SKU: "B", Quantity: 1}},
		bySKU, 0.7,
	)
	assert.Equal(t, 1.2, amount)
	assert.Equal(t, 1.05, discounted)
}
