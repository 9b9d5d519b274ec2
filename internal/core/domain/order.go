package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancel     OrderStatus = "cancel"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancel:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash on delivery"
	PaymentCard           PaymentMethod = "visa"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentCard
}

type (
	Order struct {
		ID               string
		Invoice          int64
		FullName         string
		PhoneNumber      string
		EmailAddress     string
		Items            []OrderItem
		Amount           float64
		DiscountedAmount float64
		Note             string
		DistrictID       string
		District         *DeliveryDistrict
		City             string
		Street           string
		Building         string
		Floor            string
		PaymentMethod    PaymentMethod
		Status           OrderStatus
		CreatedAt        time.Time
		UpdatedAt        time.Time
	}

	OrderItem struct {
		SKU      string
		Quantity int
	}

	// An OrderItemDetail is an order line enriched with the current product data.
	OrderItemDetail struct {
		SKU             string
		Quantity        int
		Found           bool
		Title           string
		BrandName       string
		ColorName       string
		Price           float64
		DiscountedPrice float64
	}

	OrderDetail struct {
		Order
		Lines []OrderItemDetail
	}
)

type DeliveryDistrict struct {
	ID           string
	Name         string
	DeliveryCost float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const MaxDistrictNameLen = 100

type DistrictPatch struct {
	Name         *string
	DeliveryCost *float64
}
