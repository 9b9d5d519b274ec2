package domain

import "math"

const (
	DefaultTake = 10
	MaxTake     = 100
)

type SortBy string

const (
	SortPriceLowToHigh SortBy = "LTH"
	SortPriceHighToLow SortBy = "HTL"
)

// A ProductQuery holds the optional filters of the catalog listing.
//
// Empty strings mean "no filter".
type ProductQuery struct {
	Brand       string
	Category    string
	ProductType string
	Color       string
	Search      string
	Status      ProductStatus
	SortBy      SortBy
	Skip        int
	Take        int
}

// Normalize clamps skip to >= 0 and take to [1, MaxTake].
//
// Zero take means [DefaultTake].
func (q ProductQuery) Normalize() ProductQuery {
	q.Skip = max(q.Skip, 0)
	switch {
	case q.Take == 0:
		q.Take = DefaultTake
	case q.Take < 1:
		q.Take = 1
	case q.Take > MaxTake:
		q.Take = MaxTake
	}
	return q
}

type SortKey string

const (
	SortKeyBrand     SortKey = "brand"
	SortKeyPrice     SortKey = "price"
	SortKeyCreatedAt SortKey = "createdAt"
	SortKeyTitle     SortKey = "title"
	SortKeyID        SortKey = "id"
)

type SortField struct {
	Key  SortKey
	Desc bool
}

// SortOrder returns the sort key of the listing.
//
// A category filter forces brand name ordering and ignores SortBy.
// Title and id always close the key so pages never overlap.
func (q ProductQuery) SortOrder() []SortField {
	var primary SortField
	switch {
	case q.Category != "":
		primary = SortField{Key: SortKeyBrand}
	case SortBy(upper(string(q.SortBy))) == SortPriceLowToHigh:
		primary = SortField{Key: SortKeyPrice}
	case SortBy(upper(string(q.SortBy))) == SortPriceHighToLow:
		primary = SortField{Key: SortKeyPrice, Desc: true}
	default:
		primary = SortField{Key: SortKeyCreatedAt, Desc: true}
	}
	return []SortField{primary, {Key: SortKeyTitle}, {Key: SortKeyID}}
}

type ProductPage struct {
	Products    []Product
	TotalCount  int
	Skip        int
	Take        int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// NewProductPage derives the paging flags from skip, take and total count.
func NewProductPage(ps []Product, total, skip, take int) ProductPage {
	return ProductPage{
		Products:    ps,
		TotalCount:  total,
		Skip:        skip,
		Take:        take,
		TotalPages:  int(math.Ceil(float64(total) / float64(take))),
		HasNextPage: skip+take < total,
		HasPrevPage: skip > 0,
	}
}
