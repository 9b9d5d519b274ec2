package service

import (
	"context"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQueryProducts(t *testing.T) {
	t.Run("NormalizedBeforeStore", func(t *testing.T) {
		s, m := newTestService()
		ps := []domain.Product{{ID: "p1"}, {ID: "p2"}}

		m.products.On("QueryProducts", mock.Anything, domain.ProductQuery{
			Search: "bag", Skip: 0, Take: domain.MaxTake,
		}).Return(ps, 250, nil)

		page, err := s.QueryProducts(t.Context(), domain.ProductQuery{
			Search: "bag", Skip: -5, Take: 1000,
		})
		require.NoError(t, err)
		assert.Equal(t, ps, page.Products)
		assert.Equal(t, 250, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.HasNextPage)
		assert.False(t, page.HasPrevPage)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		s, _ := newTestService()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := s.QueryProducts(ctx, domain.ProductQuery{})
		require.ErrorIs(t, err, context.Canceled)
	})
}
