package httphandler

import (
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type (
	Ref struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	}

	Color struct {
		Name string `json:"name,omitempty"`
		Code string `json:"code,omitempty"`
	}

	OfferDate struct {
		StartDate *time.Time `json:"startDate,omitempty"`
		EndDate   *time.Time `json:"endDate,omitempty"`
	}

	Product struct {
		ID                    string    `json:"_id"`
		Title                 string    `json:"title"`
		SKU                   string    `json:"sku"`
		Slug                  string    `json:"slug,omitempty"`
		Brand                 Ref       `json:"brand"`
		Category              Ref       `json:"category"`
		ProductType           Ref       `json:"productType"`
		Color                 Color     `json:"color"`
		Image                 string    `json:"image,omitempty"`
		AdditionalImages      []string  `json:"additionalImages,omitempty"`
		Unit                  string    `json:"unit,omitempty"`
		Tags                  []string  `json:"tags,omitempty"`
		Price                 float64   `json:"price"`
		Discount              float64   `json:"discount"`
		Quantity              float64   `json:"quantity"`
		Status                string    `json:"status"`
		Description           string    `json:"description,omitempty"`
		AdditionalInformation string    `json:"additionalInformation,omitempty"`
		OfferDate             OfferDate `json:"offerDate"`
		SellCount             int       `json:"sellCount"`
		Reviews               []Review  `json:"reviews"`
		CreatedAt             time.Time `json:"createdAt"`
		UpdatedAt             time.Time `json:"updatedAt"`
	}

	ProductRequest struct {
		Title                 string    `json:"title"`
		SKU                   string    `json:"sku"`
		Slug                  string    `json:"slug"`
		Brand                 Ref       `json:"brand"`
		Category              Ref       `json:"category"`
		ProductType           Ref       `json:"productType"`
		Color                 Color     `json:"color"`
		Image                 string    `json:"image"`
		AdditionalImages      []string  `json:"additionalImages"`
		Unit                  string    `json:"unit"`
		Tags                  []string  `json:"tags"`
		Price                 float64   `json:"price"`
		Discount              float64   `json:"discount"`
		Quantity              float64   `json:"quantity"`
		Description           string    `json:"description"`
		AdditionalInformation string    `json:"additionalInformation"`
		OfferDate             OfferDate `json:"offerDate"`
		SellCount             int       `json:"sellCount"`
	}

	ProductPatchRequest struct {
		Title                 *string    `json:"title"`
		Slug                  *string    `json:"slug"`
		Brand                 *Ref       `json:"brand"`
		Category              *Ref       `json:"category"`
		ProductType           *Ref       `json:"productType"`
		Color                 *Color     `json:"color"`
		Image                 *string    `json:"image"`
		AdditionalImages      []string   `json:"additionalImages"`
		Unit                  *string    `json:"unit"`
		Tags                  []string   `json:"tags"`
		Price                 *float64   `json:"price"`
		Discount              *float64   `json:"discount"`
		Quantity              *float64   `json:"quantity"`
		Description           *string    `json:"description"`
		AdditionalInformation *string    `json:"additionalInformation"`
		OfferDate             *OfferDate `json:"offerDate"`
	}

	ProductPage struct {
		Products    []Product `json:"products"`
		TotalCount  int       `json:"totalCount"`
		Skip        int       `json:"skip"`
		Take        int       `json:"take"`
		TotalPages  int       `json:"totalPages"`
		HasNextPage bool      `json:"hasNextPage"`
		HasPrevPage bool      `json:"hasPrevPage"`
	}

	Review struct {
		ID          string    `json:"_id"`
		ProductID   string    `json:"productId"`
		Name        string    `json:"name"`
		Email       string    `json:"email,omitempty"`
		PhoneNumber string    `json:"phoneNumber,omitempty"`
		Rating      float64   `json:"rating"`
		Comment     string    `json:"comment,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	ReviewRequest struct {
		ProductID   string  `json:"productId"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		PhoneNumber string  `json:"phoneNumber"`
		Rating      float64 `json:"rating"`
		Comment     string  `json:"comment"`
	}
)

type (
	QuantityReport struct {
		Received      int      `json:"received"`
		Discarded     int      `json:"discarded"`
		Deduplicated  int      `json:"deduplicated"`
		Matched       int      `json:"matched"`
		Applied       int      `json:"applied"`
		Missing       int      `json:"missing"`
		MissingSKUs   []string `json:"missingSkus"`
		FailedBatches int      `json:"failedBatches"`
		Failed        int      `json:"failed"`
	}

	FeedReport struct {
		Source string `json:"source"`
		QuantityReport
	}
)

type (
	OrderItem struct {
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}

	OrderRequest struct {
		FullName      string      `json:"fullName"`
		PhoneNumber   string      `json:"phoneNumber"`
		EmailAddress  string      `json:"emailAddress"`
		Products      []OrderItem `json:"orderProducts"`
		Note          string      `json:"orderNote"`
		DistrictID    string      `json:"deliveryDistrict"`
		City          string      `json:"city"`
		Street        string      `json:"street"`
		Building      string      `json:"building"`
		Floor         string      `json:"floor"`
		PaymentMethod string      `json:"paymentMethod"`
	}

	Order struct {
		ID               string      `json:"_id"`
		Invoice          int64       `json:"invoice"`
		FullName         string      `json:"fullName"`
		PhoneNumber      string      `json:"phoneNumber"`
		EmailAddress     string      `json:"emailAddress,omitempty"`
		Products         []OrderItem `json:"orderProducts"`
		Amount           float64     `json:"amount"`
		DiscountedAmount float64     `json:"discountedAmount"`
		Note             string      `json:"orderNote,omitempty"`
		DistrictID       string      `json:"deliveryDistrictId"`
		District         *District   `json:"deliveryDistrict,omitempty"`
		City             string      `json:"city"`
		Street           string      `json:"street"`
		Building         string      `json:"building"`
		Floor            string      `json:"floor"`
		PaymentMethod    string      `json:"paymentMethod"`
		Status           string      `json:"status"`
		CreatedAt        time.Time   `json:"createdAt"`
		UpdatedAt        time.Time   `json:"updatedAt"`
	}

	OrderLine struct {
		SKU             string  `json:"sku"`
		Quantity        int     `json:"quantity"`
		Found           bool    `json:"found"`
		Title           string  `json:"title,omitempty"`
		BrandName       string  `json:"brandName,omitempty"`
		ColorName       string  `json:"colorName,omitempty"`
		Price           float64 `json:"price,omitempty"`
		DiscountedPrice float64 `json:"discountedPrice,omitempty"`
	}

	OrderDetail struct {
		Order
		Lines []OrderLine `json:"orderProductsDetails"`
	}

	OrderStatusRequest struct {
		Status string `json:"status"`
	}
)

type (
	District struct {
		ID           string    `json:"_id"`
		Name         string    `json:"name"`
		DeliveryCost float64   `json:"deliveryCost"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	DistrictRequest struct {
		Name         string  `json:"name"`
		DeliveryCost float64 `json:"deliveryCost"`
	}

	DistrictPatchRequest struct {
		Name         *string  `json:"name"`
		DeliveryCost *float64 `json:"deliveryCost"`
	}

	Tag struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}

	TagRequest struct {
		Name string `json:"name"`
	}
)

type (
	Category struct {
		ID          string   `json:"_id"`
		Name        string   `json:"name"`
		Parent      string   `json:"parent,omitempty"`
		Children    []string `json:"children"`
		ProductType string   `json:"productType"`
		Image       string   `json:"img,omitempty"`
		Description string   `json:"description,omitempty"`
		Status      string   `json:"status"`
		Products    []string `json:"products"`
	}

	CategoryRequest struct {
		Name        string   `json:"name"`
		Parent      string   `json:"parent"`
		Children    []string `json:"children"`
		ProductType string   `json:"productType"`
		Image       string   `json:"img"`
		Description string   `json:"description"`
		Status      string   `json:"status"`
	}

	CategoryPatchRequest struct {
		Name        *string  `json:"name"`
		Parent      *string  `json:"parent"`
		Children    []string `json:"children"`
		ProductType *string  `json:"productType"`
		Image       *string  `json:"img"`
		Description *string  `json:"description"`
		Status      *string  `json:"status"`
	}

	DeletedReviews struct {
		Deleted int `json:"deleted"`
	}
)

func (p ProductRequest) toDomain() domain.Product {
	return domain.Product{
		Title:                 p.Title,
		SKU:                   p.SKU,
		Slug:                  p.Slug,
		Brand:                 domain.Ref(p.Brand),
		Category:              domain.Ref(p.Category),
		ProductType:           domain.Ref(p.ProductType),
		Color:                 domain.Color(p.Color),
		Image:                 p.Image,
		AdditionalImages:      p.AdditionalImages,
		Unit:                  p.Unit,
		Tags:                  p.Tags,
		Price:                 p.Price,
		Discount:              p.Discount,
		Quantity:              p.Quantity,
		Description:           p.Description,
		AdditionalInformation: p.AdditionalInformation,
		OfferDate:             domain.OfferDate(p.OfferDate),
		SellCount:             p.SellCount,
	}
}

func (p ProductPatchRequest) toDomain() domain.ProductPatch {
	patch := domain.ProductPatch{
		Title:                 p.Title,
		Slug:                  p.Slug,
		Image:                 p.Image,
		AdditionalImages:      p.AdditionalImages,
		Unit:                  p.Unit,
		Tags:                  p.Tags,
		Price:                 p.Price,
		Discount:              p.Discount,
		Quantity:              p.Quantity,
		Description:           p.Description,
		AdditionalInformation: p.AdditionalInformation,
	}
	if p.Brand != nil {
		r := domain.Ref(*p.Brand)
		patch.Brand = &r
	}
	if p.Category != nil {
		r := domain.Ref(*p.Category)
		patch.Category = &r
	}
	if p.ProductType != nil {
		r := domain.Ref(*p.ProductType)
		patch.ProductType = &r
	}
	if p.Color != nil {
		c := domain.Color(*p.Color)
		patch.Color = &c
	}
	if p.OfferDate != nil {
		o := domain.OfferDate(*p.OfferDate)
		patch.OfferDate = &o
	}
	return patch
}

func productFromDomain(p domain.Product) Product {
	reviews := make([]Review, len(p.Reviews))
	for i, r := range p.Reviews {
		reviews[i] = reviewFromDomain(r)
	}
	return Product{
		ID:                    p.ID,
		Title:                 p.Title,
		SKU:                   p.SKU,
		Slug:                  p.Slug,
		Brand:                 Ref(p.Brand),
		Category:              Ref(p.Category),
		ProductType:           Ref(p.ProductType),
		Color:                 Color(p.Color),
		Image:                 p.Image,
		AdditionalImages:      p.AdditionalImages,
		Unit:                  p.Unit,
		Tags:                  p.Tags,
		Price:                 p.Price,
		Discount:              p.Discount,
		Quantity:              p.Quantity,
		Status:                string(p.Status),
		Description:           p.Description,
		AdditionalInformation: p.AdditionalInformation,
		OfferDate:             OfferDate(p.OfferDate),
		SellCount:             p.SellCount,
		Reviews:               reviews,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = productFromDomain(p)
	}
	return out
}

func pageFromDomain(p domain.ProductPage) ProductPage {
	return ProductPage{
		Products:    productsFromDomain(p.Products),
		TotalCount:  p.TotalCount,
		Skip:        p.Skip,
		Take:        p.Take,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}

func (r ReviewRequest) toDomain() domain.Review {
	return domain.Review{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Rating:      r.Rating,
		Comment:     r.Comment,
	}
}

func reviewFromDomain(r domain.Review) Review {
	return Review{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func reportFromDomain(r domain.QuantityReport) QuantityReport {
	missing := r.MissingSKUs
	if missing == nil {
		missing = []string{}
	}
	return QuantityReport{
		Received:      r.Received,
		Discarded:     r.Discarded,
		Deduplicated:  r.Deduplicated,
		Matched:       r.Matched,
		Applied:       r.Applied,
		Missing:       r.Missing,
		MissingSKUs:   missing,
		FailedBatches: r.FailedBatches,
		Failed:        r.Failed,
	}
}

func (o OrderRequest) toDomain() domain.Order {
	items := make([]domain.OrderItem, len(o.Products))
	for i, it := range o.Products {
		items[i] = domain.OrderItem(it)
	}
	return domain.Order{
		FullName:      o.FullName,
		PhoneNumber:   o.PhoneNumber,
		EmailAddress:  o.EmailAddress,
		Items:         items,
		Note:          o.Note,
		DistrictID:    o.DistrictID,
		City:          o.City,
		Street:        o.Street,
		Building:      o.Building,
		Floor:         o.Floor,
		PaymentMethod: domain.PaymentMethod(o.PaymentMethod),
	}
}

func orderFromDomain(o domain.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem(it)
	}
	out := Order{
		ID:               o.ID,
		Invoice:          o.Invoice,
		FullName:         o.FullName,
		PhoneNumber:      o.PhoneNumber,
		EmailAddress:     o.EmailAddress,
		Products:         items,
		Amount:           o.Amount,
		DiscountedAmount: o.DiscountedAmount,
		Note:             o.Note,
		DistrictID:       o.DistrictID,
		City:             o.City,
		Street:           o.Street,
		Building:         o.Building,
		Floor:            o.Floor,
		PaymentMethod:    string(o.PaymentMethod),
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.District != nil {
		d := districtFromDomain(*o.District)
		out.District = &d
	}
	return out
}

func ordersFromDomain(os []domain.Order) []Order {
	out := make([]Order, len(os))
	for i, o := range os {
		out[i] = orderFromDomain(o)
	}
	return out
}

func orderDetailFromDomain(d domain.OrderDetail) OrderDetail {
	lines := make([]OrderLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = OrderLine(l)
	}
	return OrderDetail{Order: orderFromDomain(d.Order), Lines: lines}
}

func districtFromDomain(d domain.DeliveryDistrict) District {
	return District{
		ID:           d.ID,
		Name:         d.Name,
		DeliveryCost: d.DeliveryCost,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func districtsFromDomain(ds []domain.DeliveryDistrict) []District {
	out := make([]District, len(ds))
	for i, d := range ds {
		out[i] = districtFromDomain(d)
	}
	return out
}

func tagsFromDomain(ts []domain.Tag) []Tag {
	out := make([]Tag, len(ts))
	for i, t := range ts {
		out[i] = Tag(t)
	}
	return out
}

func (c CategoryRequest) toDomain() domain.Category {
	return domain.Category{
		Name:        c.Name,
		Parent:      c.Parent,
		Children:    c.Children,
		ProductType: c.ProductType,
		Image:       c.Image,
		Description: c.Description,
		Status:      domain.CategoryStatus(c.Status),
	}
}

func (c CategoryPatchRequest) toDomain() domain.CategoryPatch {
	patch := domain.CategoryPatch{
		Name:        c.Name,
		Parent:      c.Parent,
		Children:    c.Children,
		ProductType: c.ProductType,
		Image:       c.Image,
		Description: c.Description,
	}
	if c.Status != nil {
		s := domain.CategoryStatus(*c.Status)
		patch.Status = &s
	}
	return patch
}

func categoryFromDomain(c domain.Category) Category {
	children := c.Children
	if children == nil {
		children = []string{}
	}
	products := c.ProductIDs
	if products == nil {
		products = []string{}
	}
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Parent:      c.Parent,
		Children:    children,
		ProductType: c.ProductType,
		Image:       c.Image,
		Description: c.Description,
		Status:      string(c.Status),
		Products:    products,
	}
}

func categoriesFromDomain(cs []domain.Category) []Category {
	out := make([]Category, len(cs))
	for i, c := range cs {
		out[i] = categoryFromDomain(c)
	}
	return out
}
