package service

import (
	"time"

	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/retry"
)

var _ port.QuantityUpdater = (*Service)(nil)
var _ port.ProductsQuerier = (*Service)(nil)
var _ port.CategoryReconciler = (*Service)(nil)
var _ port.DiscountSweeper = (*Service)(nil)
var _ port.CatalogManager = (*Service)(nil)

const defaultBatchSize = 100

type Opt func(*Service)

// BatchSizeOpt sets how many quantity updates go into one bulk write.
func BatchSizeOpt(n int) Opt {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func ClockOpt(now func() time.Time) Opt {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// RetryOpt sets the retry policy of a single bulk write batch.
func RetryOpt(c retry.RetryConfig) Opt {
	return func(s *Service) {
		s.batchRetry = c
	}
}

// A Service is the catalog core.
//
// It keeps category back-references in sync, reconciles inventory
// feeds against stock records and serves the filtered catalog listing.
type Service struct {
	products   port.ProductsStorage
	categories port.CategoriesStorage
	brands     port.BrandsStorage
	reviews    port.ReviewsStorage
	batchSize  int
	batchRetry retry.RetryConfig
	now        func() time.Time
}

func New(
	products port.ProductsStorage,
	categories port.CategoriesStorage,
	brands port.BrandsStorage,
	reviews port.ReviewsStorage,
	opts ...Opt,
) Service {
	s := Service{
		products:   products,
		categories: categories,
		brands:     brands,
		reviews:    reviews,
		batchSize:  defaultBatchSize,
		batchRetry: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
			ShouldRetry: isTransient,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
