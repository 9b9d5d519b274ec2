package port

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound

type QuantityUpdater interface {
	ApplyQuantityUpdates(
		context.Context, []domain.RawQuantityUpdate,
	) (domain.QuantityReport, error)
}

type ProductsQuerier interface {
	QueryProducts(context.Context, domain.ProductQuery) (domain.ProductPage, error)
}

type CategoryReconciler interface {
	ReconcileAll(context.Context) (domain.ReconcileReport, error)
}

type DiscountSweeper interface {
	ClearExpiredDiscounts(context.Context) (int, error)
}

type CatalogManager interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	RelatedProducts(ctx context.Context, id string) ([]domain.Product, error)
	TopRatedProducts(context.Context) ([]domain.Product, error)
	StockOutProducts(context.Context) ([]domain.Product, error)
	AddReview(context.Context, domain.Review) (domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
	DeleteProductReviews(ctx context.Context, productID string) (int, error)
	AddProducts(context.Context, []domain.Product) ([]domain.Product, error)
	ProductsByType(ctx context.Context, productType string, o domain.TypeOrder) ([]domain.Product, error)
	OfferProducts(ctx context.Context, productType string) ([]domain.Product, error)
	PopularProducts(ctx context.Context, productType string) ([]domain.Product, error)
	ReviewedProducts(context.Context) ([]domain.Product, error)
}

type CategoryManager interface {
	AddCategory(context.Context, domain.Category) (domain.Category, error)
	AddCategories(context.Context, []domain.Category) ([]domain.Category, error)
	ListCategories(context.Context) ([]domain.Category, error)
	ShownCategories(context.Context) ([]domain.Category, error)
	CategoriesByProductType(ctx context.Context, productType string) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, p domain.CategoryPatch) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type InventoryFeedSender interface {
	SendFeed(ctx context.Context, source string, us []domain.RawQuantityUpdate) error
	FeedReport(ctx context.Context, source string) (domain.FeedReport, error)
}

type OrderManager interface {
	CreateOrder(context.Context, domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.OrderDetail, error)
	ListOrders(context.Context) ([]domain.Order, error)
	PendingOrders(context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, s domain.OrderStatus) (domain.Order, error)
}

type DistrictManager interface {
	AddDistrict(context.Context, domain.DeliveryDistrict) (domain.DeliveryDistrict, error)
	ListDistricts(context.Context) ([]domain.DeliveryDistrict, error)
	GetDistrict(ctx context.Context, id string) (domain.DeliveryDistrict, error)
	UpdateDistrict(ctx context.Context, id string, p domain.DistrictPatch) (domain.DeliveryDistrict, error)
	DeleteDistrict(ctx context.Context, id string) error
}

type TagManager interface {
	AddTag(ctx context.Context, name string) (domain.Tag, error)
	ListTags(context.Context) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// Outbound

type ProductsStorage interface {
	InsertProduct(context.Context, domain.Product) (domain.Product, error)
	ReadProduct(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, p domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ReadProductsBySKU(ctx context.Context, skus []string) ([]domain.Product, error)
	RelatedProducts(ctx context.Context, categoryName, excludeID string, limit int) ([]domain.Product, error)
	TopRatedProducts(ctx context.Context, limit int) ([]domain.Product, error)
	StockOutProducts(context.Context) ([]domain.Product, error)
	PushReview(ctx context.Context, productID, reviewID string) error
	PullReview(ctx context.Context, productID, reviewID string) error
	ClearReviews(ctx context.Context, productID string) error

	InsertProducts(context.Context, []domain.Product) ([]domain.Product, error)
	TypeProducts(context.Context, domain.TypeListing) ([]domain.Product, error)
	ReviewedProducts(context.Context) ([]domain.Product, error)

	ExistingSKUs(ctx context.Context, skus []string) ([]string, error)
	SetQuantities(context.Context, []domain.QuantityUpdate) (int, error)

	QueryProducts(context.Context, domain.ProductQuery) ([]domain.Product, int, error)

	ProductIDs(context.Context) ([]string, error)
	ProductIDsByCategory(context.Context) (map[string][]string, error)

	ExpiredDiscountIDs(ctx context.Context, now time.Time) ([]string, error)
	ClearDiscounts(ctx context.Context, ids []string) (int, error)
}

type CategoriesStorage interface {
	ReadCategory(ctx context.Context, id string) (domain.Category, error)
	CategoryProducts(context.Context) ([]domain.CategoryProducts, error)
	StoreCategoryProducts(context.Context, []domain.CategoryProducts) error
	AttachProduct(ctx context.Context, categoryID, productID string) error
	DetachProduct(ctx context.Context, categoryID, productID string) error
	// AttachProducts adds product ids keyed by category id.
	AttachProducts(ctx context.Context, refs map[string][]string) error

	InsertCategory(context.Context, domain.Category) (domain.Category, error)
	InsertCategories(context.Context, []domain.Category) ([]domain.Category, error)
	ReadCategories(context.Context, domain.CategoryFilter) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, id string, p domain.CategoryPatch) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type BrandsStorage interface {
	AttachProduct(ctx context.Context, brandID, productID string) error
	// AttachProducts adds product ids keyed by brand id.
	AttachProducts(ctx context.Context, refs map[string][]string) error
}

type ReviewsStorage interface {
	InsertReview(context.Context, domain.Review) (domain.Review, error)
	DeleteReview(ctx context.Context, id string) (domain.Review, error)
	DeleteProductReviews(ctx context.Context, productID string) (int, error)
}

type OrdersStorage interface {
	InsertOrder(context.Context, domain.Order) (domain.Order, error)
	ReadOrder(ctx context.Context, id string) (domain.Order, error)
	ReadOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, id string, s domain.OrderStatus) (domain.Order, error)
}

type InvoiceSequence interface {
	NextInvoice(context.Context) (int64, error)
}

type DistrictsStorage interface {
	InsertDistrict(context.Context, domain.DeliveryDistrict) (domain.DeliveryDistrict, error)
	ReadDistricts(context.Context) ([]domain.DeliveryDistrict, error)
	ReadDistrict(ctx context.Context, id string) (domain.DeliveryDistrict, error)
	UpdateDistrict(ctx context.Context, id string, p domain.DistrictPatch) (domain.DeliveryDistrict, error)
	DeleteDistrict(ctx context.Context, id string) error
}

type TagsStorage interface {
	ReadTagByName(ctx context.Context, name string) (domain.Tag, error)
	InsertTag(ctx context.Context, name string) (domain.Tag, error)
	ReadTags(context.Context) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type InventoryFeedProducer interface {
	ProduceFeed(ctx context.Context, source string, us []domain.RawQuantityUpdate) error
}

type InventoryFeedProcessor interface {
	runnerContextWg
	closer
}

type FeedReportsStorage interface {
	ReadFeedReport(ctx context.Context, source string) (domain.FeedReport, error)
}
