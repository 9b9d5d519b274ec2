package storage

import (
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	refDoc struct {
		ID   *primitive.ObjectID `bson:"id,omitempty"`
		Name string              `bson:"name,omitempty"`
	}

	colorDoc struct {
		Name string `bson:"name,omitempty"`
		Code string `bson:"code,omitempty"`
	}

	offerDateDoc struct {
		StartDate *time.Time `bson:"startDate,omitempty"`
		EndDate   *time.Time `bson:"endDate,omitempty"`
	}

	productDoc struct {
		ID                    primitive.ObjectID   `bson:"_id"`
		Title                 string               `bson:"title"`
		SKU                   string               `bson:"sku"`
		Slug                  string               `bson:"slug,omitempty"`
		Brand                 refDoc               `bson:"brand"`
		Category              refDoc               `bson:"category"`
		ProductType           refDoc               `bson:"productType"`
		Color                 colorDoc             `bson:"color"`
		Image                 string               `bson:"image,omitempty"`
		AdditionalImages      []string             `bson:"additionalImages,omitempty"`
		Unit                  string               `bson:"unit,omitempty"`
		Tags                  []string             `bson:"tags,omitempty"`
		Price                 float64              `bson:"price"`
		Discount              float64              `bson:"discount"`
		Quantity              float64              `bson:"quantity"`
		Status                string               `bson:"status"`
		Description           string               `bson:"description,omitempty"`
		AdditionalInformation string               `bson:"additionalInformation,omitempty"`
		OfferDate             offerDateDoc         `bson:"offerDate"`
		SellCount             int                  `bson:"sellCount"`
		Reviews               []primitive.ObjectID `bson:"reviews"`
		ReviewDocs            []reviewDoc          `bson:"reviewDocs,omitempty"`
		CreatedAt             time.Time            `bson:"createdAt"`
		UpdatedAt             time.Time            `bson:"updatedAt"`
	}

	reviewDoc struct {
		ID          primitive.ObjectID `bson:"_id"`
		ProductID   primitive.ObjectID `bson:"productId"`
		Name        string             `bson:"name"`
		Email       string             `bson:"email,omitempty"`
		PhoneNumber string             `bson:"phoneNumber,omitempty"`
		Rating      float64            `bson:"rating"`
		Comment     string             `bson:"comment,omitempty"`
		CreatedAt   time.Time          `bson:"createdAt"`
		UpdatedAt   time.Time          `bson:"updatedAt"`
	}

	categoryDoc struct {
		ID          primitive.ObjectID   `bson:"_id"`
		Name        string               `bson:"name"`
		Parent      string               `bson:"parent,omitempty"`
		Children    []string             `bson:"children"`
		ProductType string               `bson:"productType"`
		Image       string               `bson:"img,omitempty"`
		Description string               `bson:"description,omitempty"`
		Status      string               `bson:"status"`
		Products    []primitive.ObjectID `bson:"products"`
		CreatedAt   time.Time            `bson:"createdAt"`
		UpdatedAt   time.Time            `bson:"updatedAt"`
	}

	orderItemDoc struct {
		SKU      string `bson:"sku"`
		Quantity int    `bson:"quantity"`
	}

	orderDoc struct {
		ID               primitive.ObjectID  `bson:"_id"`
		Invoice          int64               `bson:"invoice"`
		FullName         string              `bson:"fullName"`
		PhoneNumber      string              `bson:"phoneNumber"`
		EmailAddress     string              `bson:"emailAddress,omitempty"`
		Products         []orderItemDoc      `bson:"orderProducts"`
		Amount           float64             `bson:"amount"`
		DiscountedAmount float64             `bson:"discountedAmount"`
		Note             string              `bson:"orderNote,omitempty"`
		DistrictID       *primitive.ObjectID `bson:"deliveryDistrict,omitempty"`
		City             string              `bson:"city"`
		Street           string              `bson:"street"`
		Building         string              `bson:"building"`
		Floor            string              `bson:"floor"`
		PaymentMethod    string              `bson:"paymentMethod"`
		Status           string              `bson:"status"`
		CreatedAt        time.Time           `bson:"createdAt"`
		UpdatedAt        time.Time           `bson:"updatedAt"`
	}

	districtDoc struct {
		ID           primitive.ObjectID `bson:"_id"`
		Name         string             `bson:"name"`
		DeliveryCost float64            `bson:"deliveryCost"`
		CreatedAt    time.Time          `bson:"createdAt"`
		UpdatedAt    time.Time          `bson:"updatedAt"`
	}

	tagDoc struct {
		ID        primitive.ObjectID `bson:"_id"`
		Name      string             `bson:"name"`
		CreatedAt time.Time          `bson:"createdAt"`
		UpdatedAt time.Time          `bson:"updatedAt"`
	}
)

func newRefDoc(r domain.Ref) (refDoc, error) {
	id, err := refID(r.ID)
	if err != nil {
		return refDoc{}, err
	}
	return refDoc{ID: id, Name: r.Name}, nil
}

func (d refDoc) toDomain() domain.Ref {
	return domain.Ref{ID: hexRef(d.ID), Name: d.Name}
}

func newProductDoc(p domain.Product) (productDoc, error) {
	brand, err := newRefDoc(p.Brand)
	if err != nil {
		return productDoc{}, err
	}
	category, err := newRefDoc(p.Category)
	if err != nil {
		return productDoc{}, err
	}
	productType, err := newRefDoc(p.ProductType)
	if err != nil {
		return productDoc{}, err
	}
	reviews, err := objectIDs(p.ReviewIDs)
	if err != nil {
		return productDoc{}, err
	}

	return productDoc{
		Title:                 p.Title,
		SKU:                   p.SKU,
		Slug:                  p.Slug,
		Brand:                 brand,
		Category:              category,
		ProductType:           productType,
		Color:                 colorDoc(p.Color),
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
		OfferDate:             offerDateDoc(p.OfferDate),
		SellCount:             p.SellCount,
		Reviews:               reviews,
	}, nil
}

func (d productDoc) toDomain() domain.Product {
	p := domain.Product{
		ID:                    d.ID.Hex(),
		Title:                 d.Title,
		SKU:                   d.SKU,
		Slug:                  d.Slug,
		Brand:                 d.Brand.toDomain(),
		Category:              d.Category.toDomain(),
		ProductType:           d.ProductType.toDomain(),
		Color:                 domain.Color(d.Color),
		Image:                 d.Image,
		AdditionalImages:      d.AdditionalImages,
		Unit:                  d.Unit,
		Tags:                  d.Tags,
		Price:                 d.Price,
		Discount:              d.Discount,
		Quantity:              d.Quantity,
		Status:                domain.ProductStatus(d.Status),
		Description:           d.Description,
		AdditionalInformation: d.AdditionalInformation,
		OfferDate:             domain.OfferDate(d.OfferDate),
		SellCount:             d.SellCount,
		ReviewIDs:             hexIDs(d.Reviews),
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
	if len(d.ReviewDocs) != 0 {
		p.Reviews = make([]domain.Review, len(d.ReviewDocs))
		for i, r := range d.ReviewDocs {
			p.Reviews[i] = r.toDomain()
		}
	}
	return p
}

func productsToDomain(docs []productDoc) []domain.Product {
	ps := make([]domain.Product, len(docs))
	for i, d := range docs {
		ps[i] = d.toDomain()
	}
	return ps
}

func (d reviewDoc) toDomain() domain.Review {
	return domain.Review{
		ID:          d.ID.Hex(),
		ProductID:   d.ProductID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Rating:      d.Rating,
		Comment:     d.Comment,
		CreatedAt:   d.CreatedAt,
	}
}

func newCategoryDoc(c domain.Category) (categoryDoc, error) {
	products, err := objectIDs(c.ProductIDs)
	if err != nil {
		return categoryDoc{}, err
	}
	children := c.Children
	if children == nil {
		children = []string{}
	}
	return categoryDoc{
		Name:        c.Name,
		Parent:      c.Parent,
		Children:    children,
		ProductType: c.ProductType,
		Image:       c.Image,
		Description: c.Description,
		Status:      string(c.Status),
		Products:    products,
	}, nil
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Parent:      d.Parent,
		Children:    d.Children,
		ProductType: d.ProductType,
		Image:       d.Image,
		Description: d.Description,
		Status:      domain.CategoryStatus(d.Status),
		ProductIDs:  hexIDs(d.Products),
	}
}

func categoriesToDomain(docs []categoryDoc) []domain.Category {
	cs := make([]domain.Category, len(docs))
	for i, d := range docs {
		cs[i] = d.toDomain()
	}
	return cs
}

func (d orderDoc) toDomain() domain.Order {
	items := make([]domain.OrderItem, len(d.Products))
	for i, it := range d.Products {
		items[i] = domain.OrderItem(it)
	}
	return domain.Order{
		ID:               d.ID.Hex(),
		Invoice:          d.Invoice,
		FullName:         d.FullName,
		PhoneNumber:      d.PhoneNumber,
		EmailAddress:     d.EmailAddress,
		Items:            items,
		Amount:           d.Amount,
		DiscountedAmount: d.DiscountedAmount,
		Note:             d.Note,
		DistrictID:       hexRef(d.DistrictID),
		City:             d.City,
		Street:           d.Street,
		Building:         d.Building,
		Floor:            d.Floor,
		PaymentMethod:    domain.PaymentMethod(d.PaymentMethod),
		Status:           domain.OrderStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (d districtDoc) toDomain() domain.DeliveryDistrict {
	return domain.DeliveryDistrict{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		DeliveryCost: d.DeliveryCost,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d tagDoc) toDomain() domain.Tag {
	return domain.Tag{ID: d.ID.Hex(), Name: d.Name}
}
