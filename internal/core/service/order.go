package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.OrderManager = (*OrderService)(nil)

type OrderService struct {
	orders    port.OrdersStorage
	districts port.DistrictsStorage
	products  port.ProductsStorage
	invoices  port.InvoiceSequence
}

func NewOrderService(
	orders port.OrdersStorage,
	districts port.DistrictsStorage,
	products port.ProductsStorage,
	invoices port.InvoiceSequence,
) OrderService {
	return OrderService{orders, districts, products, invoices}
}

// CreateOrder prices the order from current product data and stores it
// as pending under the next invoice number.
func (s OrderService) CreateOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, error) {
	const op = "OrderService.CreateOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	o = normalizeOrder(o)
	if err := validateOrder(o); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	district, err := s.districts.ReadDistrict(ctx, o.DistrictID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: delivery district: %w", op, err)
	}

	bySKU, err := s.productsBySKU(ctx, o.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var missing []string
	for _, it := range o.Items {
		if _, ok := bySKU[it.SKU]; !ok {
			missing = append(missing, it.SKU)
		}
	}
	if len(missing) != 0 {
		return domain.Order{}, fmt.Errorf(
			"%s: %w: unknown skus %s",
			op, domain.ErrValidation, strings.Join(missing, ", "),
		)
	}

	o.Amount, o.DiscountedAmount = orderTotals(o.Items, bySKU, district.DeliveryCost)

	invoice, err := s.invoices.NextInvoice(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	o.Invoice = invoice
	o.Status = domain.OrderPending

	created, err := s.orders.InsertOrder(ctx, o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	created.District = &district

	log.Info("order created", "orderID", created.ID, "invoice", created.Invoice)
	return created, nil
}

func normalizeOrder(o domain.Order) domain.Order {
	o.FullName = strings.TrimSpace(o.FullName)
	o.PhoneNumber = strings.TrimSpace(o.PhoneNumber)
	o.EmailAddress = strings.TrimSpace(o.EmailAddress)
	o.PaymentMethod = domain.PaymentMethod(
		strings.ToLower(strings.TrimSpace(string(o.PaymentMethod))),
	)
	if o.PaymentMethod == "" {
		o.PaymentMethod = domain.PaymentCashOnDelivery
	}

	items := make([]domain.OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = domain.OrderItem{
			SKU:      domain.NormalizeSKU(it.SKU),
			Quantity: it.Quantity,
		}
	}
	o.Items = items
	return o
}

func validateOrder(o domain.Order) error {
	var errs []error
	required := []struct{ name, v string }{
		{"full name", o.FullName},
		{"phone number", o.PhoneNumber},
		{"delivery district", o.DistrictID},
		{"city", o.City},
		{"street", o.Street},
		{"building", o.Building},
		{"floor", o.Floor},
	}
	for _, f := range required {
		if strings.TrimSpace(f.v) == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}

	if len(o.Items) == 0 {
		errs = append(errs, errors.New("order has no products"))
	}
	for i, it := range o.Items {
		if it.SKU == "" {
			errs = append(errs, fmt.Errorf("product #%d: sku is required", i+1))
		}
		if it.Quantity < 1 {
			errs = append(errs, fmt.Errorf("product #%d: quantity must be at least 1", i+1))
		}
	}

	if !o.PaymentMethod.Valid() {
		errs = append(errs, fmt.Errorf("unknown payment method %q", o.PaymentMethod))
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

// orderTotals returns the list and the discounted amount, delivery included.
func orderTotals(
	items []domain.OrderItem, bySKU map[string]domain.Product, delivery float64,
) (amount, discounted float64) {
	total := decimal.NewFromFloat(delivery)
	totalDiscounted := total
	for _, it := range items {
		p := bySKU[it.SKU]
		qty := decimal.NewFromInt(int64(it.Quantity))
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(qty))
		totalDiscounted = totalDiscounted.Add(
			decimal.NewFromFloat(p.EffectivePrice()).Mul(qty),
		)
	}
	amount, _ = total.Round(2).Float64()
	discounted, _ = totalDiscounted.Round(2).Float64()
	return amount, discounted
}

func (s OrderService) productsBySKU(
	ctx context.Context, items []domain.OrderItem,
) (map[string]domain.Product, error) {
	skus := make([]string, 0, len(items))
	for _, it := range items {
		skus = append(skus, it.SKU)
	}

	ps, err := s.products.ReadProductsBySKU(ctx, skus)
	if err != nil {
		return nil, err
	}

	bySKU := make(map[string]domain.Product, len(ps))
	for _, p := range ps {
		bySKU[domain.NormalizeSKU(p.SKU)] = p
	}
	return bySKU, nil
}

// GetOrder returns the order with its district and every line enriched
// with the current product data. Lines of removed products keep sku and
// quantity only.
func (s OrderService) GetOrder(
	ctx context.Context, id string,
) (domain.OrderDetail, error) {
	const op = "OrderService.GetOrder"

	if err := ctx.Err(); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	o, err := s.orders.ReadOrder(ctx, id)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	district, err := s.districts.ReadDistrict(ctx, o.DistrictID)
	switch {
	case err == nil:
		o.District = &district
	case !errors.Is(err, domain.ErrNotFound):
		return domain.OrderDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	bySKU, err := s.productsBySKU(ctx, o.Items)
	if err != nil {
		return domain.OrderDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]domain.OrderItemDetail, len(o.Items))
	for i, it := range o.Items {
		line := domain.OrderItemDetail{SKU: it.SKU, Quantity: it.Quantity}
		if p, ok := bySKU[domain.NormalizeSKU(it.SKU)]; ok {
			line.Found = true
			line.Title = p.Title
			line.BrandName = p.Brand.Name
			line.ColorName = p.Color.Name
			line.Price = p.Price
			line.DiscountedPrice = p.EffectivePrice()
		}
		lines[i] = line
	}

	return domain.OrderDetail{Order: o, Lines: lines}, nil
}

func (s OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderService.ListOrders"
	list, err := s.listOrders(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s OrderService) PendingOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "OrderService.PendingOrders"
	list, err := s.listOrders(ctx, domain.OrderPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s OrderService) listOrders(
	ctx context.Context, status domain.OrderStatus,
) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list, err := s.orders.ReadOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	ds, err := s.districts.ReadDistricts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.DeliveryDistrict, len(ds))
	for _, d := range ds {
		byID[d.ID] = d
	}

	for i := range list {
		if d, ok := byID[list[i].DistrictID]; ok {
			list[i].District = &d
		}
	}
	return list, nil
}

func (s OrderService) UpdateOrderStatus(
	ctx context.Context, id string, status domain.OrderStatus,
) (domain.Order, error) {
	const op = "OrderService.UpdateOrderStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	status = domain.OrderStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf(
			"%s: %w: unknown order status %q", op, domain.ErrValidation, status,
		)
	}

	o, err := s.orders.SetOrderStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}
