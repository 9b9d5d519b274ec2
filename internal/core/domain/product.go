package domain

import "time"

type ProductStatus string

const (
	StatusInStock    ProductStatus = "in-stock"
	StatusOutOfStock ProductStatus = "out-of-stock"
)

// StockStatus returns the status a product with the given quantity must have.
func StockStatus(quantity float64) ProductStatus {
	if quantity > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}

type (
	Product struct {
		ID                    string
		Title                 string
		SKU                   string
		Slug                  string
		Brand                 Ref
		Category              Ref
		ProductType           Ref
		Color                 Color
		Image                 string
		AdditionalImages      []string
		Unit                  string
		Tags                  []string
		Price                 float64
		Discount              float64
		Quantity              float64
		Status                ProductStatus
		Description           string
		AdditionalInformation string
		OfferDate             OfferDate
		SellCount             int
		ReviewIDs             []string
		Reviews               []Review
		CreatedAt             time.Time
		UpdatedAt             time.Time
	}

	// A Ref is a denormalized copy of a referenced entity.
	// Name is not authoritative.
	Ref struct {
		ID   string
		Name string
	}

	Color struct {
		Name string
		Code string
	}

	OfferDate struct {
		StartDate *time.Time
		EndDate   *time.Time
	}
)

// EffectivePrice is the unit price a customer pays.
//
// A positive discount holds the discounted unit price.
func (p Product) EffectivePrice() float64 {
	if p.Discount > 0 {
		return p.Discount
	}
	return p.Price
}

// ProductPatch holds the editable product fields, nil fields stay untouched.
type ProductPatch struct {
	Title                 *string
	Slug                  *string
	Brand                 *Ref
	Category              *Ref
	ProductType           *Ref
	Color                 *Color
	Image                 *string
	AdditionalImages      []string
	Unit                  *string
	Tags                  []string
	Price                 *float64
	Discount              *float64
	Quantity              *float64
	Status                *ProductStatus
	Description           *string
	AdditionalInformation *string
	OfferDate             *OfferDate
}

type CategoryStatus string

const (
	CategoryShow CategoryStatus = "Show"
	CategoryHide CategoryStatus = "Hide"
)

func (s CategoryStatus) Valid() bool {
	return s == CategoryShow || s == CategoryHide
}

type Category struct {
	ID          string
	Name        string
	Parent      string
	Children    []string
	ProductType string
	Image       string
	Description string
	Status      CategoryStatus
	ProductIDs  []string
}

// CategoryPatch holds the editable category fields, nil fields stay untouched.
type CategoryPatch struct {
	Name        *string
	Parent      *string
	Children    []string
	ProductType *string
	Image       *string
	Description *string
	Status      *CategoryStatus
}

// A CategoryFilter narrows a category listing. Empty fields match all.
type CategoryFilter struct {
	ProductType string
	Status      CategoryStatus
}

const MaxCategoryNameLen = 100

// TypeOrder selects the ordering of a product type listing.
type TypeOrder string

const (
	TypeOrderNone       TypeOrder = ""
	TypeOrderNewest     TypeOrder = "newest"
	TypeOrderTopSellers TypeOrder = "top-sellers"
)

// A TypeListing selects in-stock products of one product type.
//
// Zero Limit means no limit, a nil OfferEndsAfter disables the offer filter.
type TypeListing struct {
	ProductType    string
	Order          TypeOrder
	Limit          int
	OfferEndsAfter *time.Time
}

type Brand struct {
	ID         string
	Name       string
	ProductIDs []string
}

type Review struct {
	ID          string
	ProductID   string
	Name        string
	Email       string
	PhoneNumber string
	Rating      float64
	Comment     string
	CreatedAt   time.Time
}

const (
	MinRating = 0.5
	MaxRating = 5
)

type Tag struct {
	ID   string
	Name string
}
