package service

import (
	"errors"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	t.Run("Invalid", func(t *testing.T) {
		s, m := newTestService()
		_, err := s.CreateProduct(t.Context(), domain.Product{Price: -1})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "title is required")
		assert.ErrorContains(t, err, "sku is required")
		m.products.AssertNotCalled(t, "InsertProduct", mock.Anything, mock.Anything)
	})

	t.Run("AttachesBackReferences", func(t *testing.T) {
		s, m := newTestService()

		in := domain.Product{
			Title:    " Linen bag ",
			SKU:      " lb-1 ",
			Quantity: 3,
			Category: domain.Ref{ID: "c1", Name: "Bags"},
			Brand:    domain.Ref{ID: "b1", Name: "Acme"},
		}
		stored := in
		stored.Title = "Linen bag"
		stored.SKU = "LB-1"
		stored.Status = domain.StatusInStock

		created := stored
		created.ID = "p1"

		m.products.On("InsertProduct", mock.Anything, stored).Return(created, nil)
		m.categories.On("AttachProduct", mock.Anything, "c1", "p1").Return(nil)
		m.brands.On("AttachProduct", mock.Anything, "b1", "p1").Return(nil)

		got, err := s.CreateProduct(t.Context(), in)
		require.NoError(t, err)
		assert.Equal(t, created, got)
		m.categories.AssertExpectations(t)
		m.brands.AssertExpectations(t)
	})

	t.Run("LostBackReferenceKeepsProduct", func(t *testing.T) {
		s, m := newTestService()

		m.products.On("InsertProduct", mock.Anything, mock.Anything).
			Return(domain.Product{ID: "p1", Category: domain.Ref{ID: "c1"}}, nil)
		m.categories.On("AttachProduct", mock.Anything, "c1", "p1").
			Return(domain.ErrNotFound)

		got, err := s.CreateProduct(t.Context(), domain.Product{Title: "t", SKU: "s"})
		require.NoError(t, err)
		assert.Equal(t, "p1", got.ID)
	})
}

func TestUpdateProduct(t *testing.T) {
	qty := 0.0

	t.Run("StatusFollowsQuantity", func(t *testing.T) {
		s, m := newTestService()

		out := domain.StatusOutOfStock
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1"}, nil)
		m.products.On("UpdateProduct", mock.Anything, "p1", domain.ProductPatch{
			Quantity: &qty, Status: &out,
		}).Return(domain.Product{ID: "p1", Status: out}, nil)

		got, err := s.UpdateProduct(t.Context(), "p1", domain.ProductPatch{Quantity: &qty})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOutOfStock, got.Status)
	})

	t.Run("MovesBetweenCategories", func(t *testing.T) {
		s, m := newTestService()

		patch := domain.ProductPatch{Category: &domain.Ref{ID: "c2", Name: "Shoes"}}
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1", Category: domain.Ref{ID: "c1"}}, nil)
		m.categories.On("ReadCategory", mock.Anything, "c2").
			Return(domain.Category{ID: "c2"}, nil)
		m.products.On("UpdateProduct", mock.Anything, "p1", patch).
			Return(domain.Product{ID: "p1", Category: *patch.Category}, nil)
		m.categories.On("DetachProduct", mock.Anything, "c1", "p1").Return(nil)
		m.categories.On("AttachProduct", mock.Anything, "c2", "p1").Return(nil)

		_, err := s.UpdateProduct(t.Context(), "p1", patch)
		require.NoError(t, err)
		m.categories.AssertExpectations(t)
	})

	t.Run("FailedDetachStillAttachesNewCategory", func(t *testing.T) {
		s, m := newTestService()

		patch := domain.ProductPatch{Category: &domain.Ref{ID: "c2", Name: "Shoes"}}
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1", Category: domain.Ref{ID: "gone"}}, nil)
		m.categories.On("ReadCategory", mock.Anything, "c2").
			Return(domain.Category{ID: "c2"}, nil)
		m.products.On("UpdateProduct", mock.Anything, "p1", patch).
			Return(domain.Product{ID: "p1", Category: *patch.Category}, nil)
		m.categories.On("DetachProduct", mock.Anything, "gone", "p1").
			Return(domain.ErrNotFound)
		m.categories.On("AttachProduct", mock.Anything, "c2", "p1").Return(nil)

		got, err := s.UpdateProduct(t.Context(), "p1", patch)
		require.NoError(t, err)
		assert.Equal(t, "c2", got.Category.ID)
		m.categories.AssertCalled(t, "AttachProduct", mock.Anything, "c2", "p1")
		m.products.AssertNumberOfCalls(t, "UpdateProduct", 1)
	})

	t.Run("FailedAttachKeepsUpdate", func(t *testing.T) {
		s, m := newTestService()

		patch := domain.ProductPatch{Category: &domain.Ref{ID: "c2"}}
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1"}, nil)
		m.categories.On("ReadCategory", mock.Anything, "c2").
			Return(domain.Category{ID: "c2"}, nil)
		m.products.On("UpdateProduct", mock.Anything, "p1", patch).
			Return(domain.Product{ID: "p1", Category: *patch.Category}, nil)
		m.categories.On("AttachProduct", mock.Anything, "c2", "p1").
			Return(domain.ErrUnavailable)

		_, err := s.UpdateProduct(t.Context(), "p1", patch)
		require.NoError(t, err)
		m.categories.AssertNotCalled(t, "DetachProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownNewCategory", func(t *testing.T) {
		s, m := newTestService()

		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1", Category: domain.Ref{ID: "c1"}}, nil)
		m.categories.On("ReadCategory", mock.Anything, "c9").
			Return(domain.Category{}, domain.ErrNotFound)

		_, err := s.UpdateProduct(t.Context(), "p1", domain.ProductPatch{
			Category: &domain.Ref{ID: "c9"},
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		m.products.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		s, _ := newTestService()
		price := -3.0
		_, err := s.UpdateProduct(t.Context(), "p1", domain.ProductPatch{Price: &price})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRelatedProducts(t *testing.T) {
	t.Run("UnknownProduct", func(t *testing.T) {
		s, m := newTestService()
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{}, domain.ErrNotFound)

		ps, err := s.RelatedProducts(t.Context(), "p1")
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("SameCategory", func(t *testing.T) {
		s, m := newTestService()
		related := []domain.Product{{ID: "p2"}}
		m.products.On("ReadProduct", mock.Anything, "p1").
			Return(domain.Product{ID: "p1", Category: domain.Ref{Name: "Bags"}}, nil)
		m.products.On("RelatedProducts", mock.Anything, "Bags", "p1", relatedLimit).
			Return(related, nil)

		ps, err := s.RelatedProducts(t.Context(), "p1")
		require.NoError(t, err)
		assert.Equal(t, related, ps)
	})
}

func TestAddReview(t *testing.T) {
	t.Run("RatingOutOfRange", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.AddReview(t.Context(), domain.Review{
			Name: "Ann", ProductID: "p1", Rating: 6,
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("PushedToProduct", func(t *testing.T) {
		s, m := newTestService()
		r := domain.Review{Name: "Ann", Email: "ann@example.com", ProductID: "p1", Rating: 4.5}

		m.products.On("ReadProduct", mock.Anything, "p1").Return(domain.Product{ID: "p1"}, nil)
		m.reviews.On("InsertReview", mock.Anything, r).Return(domain.Review{ID: "r1"}, nil)
		m.products.On("PushReview", mock.Anything, "p1", "r1").Return(nil)

		got, err := s.AddReview(t.Context(), domain.Review{
			Name: " Ann ", Email: " Ann@Example.com", ProductID: "p1", Rating: 4.5,
		})
		require.NoError(t, err)
		assert.Equal(t, "r1", got.ID)
		m.products.AssertExpectations(t)
	})

	t.Run("PushFailed", func(t *testing.T) {
		s, m := newTestService()
		pushErr := errors.New("push failed")

		m.products.On("ReadProduct", mock.Anything, "p1").Return(domain.Product{ID: "p1"}, nil)
		m.reviews.On("InsertReview", mock.Anything, mock.Anything).
			Return(domain.Review{ID: "r1"}, nil)
		m.products.On("PushReview", mock.Anything, "p1", "r1").Return(pushErr)

		_, err := s.AddReview(t.Context(), domain.Review{Name: "Ann", ProductID: "p1", Rating: 1})
		require.ErrorIs(t, err, pushErr)
	})
}

func TestAddProducts(t *testing.T) {
	t.Run("EmptyList", func(t *testing.T) {
		s, m := newTestService()
		_, err := s.AddProducts(t.Context(), []domain.Product{})
		require.ErrorIs(t, err, domain.ErrValidation)
		m.products.AssertNotCalled(t, "InsertProducts", mock.Anything, mock.Anything)
	})

	t.Run("OneInvalidRejectsBatch", func(t *testing.T) {
		s, m := newTestService()
		_, err := s.AddProducts(t.Context(), []domain.Product{
			{Title: "ok", SKU: "a"},
			{Title: "", SKU: "b"},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "product 1")
		m.products.AssertNotCalled(t, "InsertProducts", mock.Anything, mock.Anything)
	})

	t.Run("BulkBackReferences", func(t *testing.T) {
		s, m := newTestService()

		in := []domain.Product{
			{Title: " A ", SKU: "a", Quantity: 1, Category: domain.Ref{ID: "c1"}, Brand: domain.Ref{ID: "b1"}},
			{Title: "B", SKU: "b", Category: domain.Ref{ID: "c1"}},
			{Title: "C", SKU: "c", Brand: domain.Ref{ID: "b1"}},
		}
		stored := []domain.Product{
			{Title: "A", SKU: "A", Quantity: 1, Status: domain.StatusInStock, Category: domain.Ref{ID: "c1"}, Brand: domain.Ref{ID: "b1"}},
			{Title: "B", SKU: "B", Status: domain.StatusOutOfStock, Category: domain.Ref{ID: "c1"}},
			{Title: "C", SKU: "C", Status: domain.StatusOutOfStock, Brand: domain.Ref{ID: "b1"}},
		}
		created := make([]domain.Product, len(stored))
		copy(created, stored)
		created[0].ID, created[1].ID, created[2].ID = "p1", "p2", "p3"

		m.products.On("InsertProducts", mock.Anything, stored).Return(created, nil)
		m.categories.On("AttachProducts", mock.Anything, map[string][]string{
			"c1": {"p1", "p2"},
		}).Return(nil)
		m.brands.On("AttachProducts", mock.Anything, map[string][]string{
			"b1": {"p1", "p3"},
		}).Return(nil)

		got, err := s.AddProducts(t.Context(), in)
		require.NoError(t, err)
		assert.Equal(t, created, got)
		m.products.AssertExpectations(t)
		m.categories.AssertExpectations(t)
		m.brands.AssertExpectations(t)
	})

	t.Run("FailedBackReferencesKeepProducts", func(t *testing.T) {
		s, m := newTestService()

		created := []domain.Product{{ID: "p1", Category: domain.Ref{ID: "c1"}}}
		m.products.On("InsertProducts", mock.Anything, mock.Anything).Return(created, nil)
		m.categories.On("AttachProducts", mock.Anything, mock.Anything).
			Return(errors.New("bulk write failed"))
		m.brands.On("AttachProducts", mock.Anything, map[string][]string{}).Return(nil)

		got, err := s.AddProducts(t.Context(), []domain.Product{{Title: "t", SKU: "s"}})
		require.NoError(t, err)
		assert.Equal(t, created, got)
		m.brands.AssertExpectations(t)
	})

	t.Run("InsertFailed", func(t *testing.T) {
		s, m := newTestService()
		m.products.On("InsertProducts", mock.Anything, mock.Anything).
			Return([]domain.Product(nil), domain.ErrConflict)

		_, err := s.AddProducts(t.Context(), []domain.Product{{Title: "t", SKU: "s"}})
		require.ErrorIs(t, err, domain.ErrConflict)
		m.categories.AssertNotCalled(t, "AttachProducts", mock.Anything, mock.Anything)
	})
}

func TestDeleteReview(t *testing.T) {
	t.Run("PullsFromProduct", func(t *testing.T) {
		s, m := newTestService()
		m.reviews.On("DeleteReview", mock.Anything, "r1").
			Return(domain.Review{ID: "r1", ProductID: "p1"}, nil)
		m.products.On("PullReview", mock.Anything, "p1", "r1").Return(nil)

		require.NoError(t, s.DeleteReview(t.Context(), "r1"))
		m.products.AssertExpectations(t)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		s, m := newTestService()
		m.reviews.On("DeleteReview", mock.Anything, "r1").
			Return(domain.Review{}, domain.ErrNotFound)

		err := s.DeleteReview(t.Context(), "r1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		m.products.AssertNotCalled(t, "PullReview", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FailedPullKeepsDeletion", func(t *testing.T) {
		s, m := newTestService()
		m.reviews.On("DeleteReview", mock.Anything, "r1").
			Return(domain.Review{ID: "r1", ProductID: "p1"}, nil)
		m.products.On("PullReview", mock.Anything, "p1", "r1").Return(domain.ErrNotFound)

		assert.NoError(t, s.DeleteReview(t.Context(), "r1"))
	})
}

func TestDeleteProductReviews(t *testing.T) {
	t.Run("ClearsProduct", func(t *testing.T) {
		s, m := newTestService()
		m.reviews.On("DeleteProductReviews", mock.Anything, "p1").Return(3, nil)
		m.products.On("ClearReviews", mock.Anything, "p1").Return(nil)

		n, err := s.DeleteProductReviews(t.Context(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		m.products.AssertExpectations(t)
	})

	t.Run("NoneDeleted", func(t *testing.T) {
		s, m := newTestService()
		m.reviews.On("DeleteProductReviews", mock.Anything, "p1").Return(0, nil)

		_, err := s.DeleteProductReviews(t.Context(), "p1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		m.products.AssertNotCalled(t, "ClearReviews", mock.Anything, mock.Anything)
	})
}
