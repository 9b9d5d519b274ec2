package service

import (
	"strings"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService() (CategoryService, *MockCategories) {
	categories := &MockCategories{}
	return NewCategoryService(categories), categories
}

func TestAddCategory(t *testing.T) {
	t.Run("DefaultsToShow", func(t *testing.T) {
		s, categories := newTestCategoryService()

		stored := domain.Category{
			Name: "Shirts", Parent: "Men", ProductType: "fashion",
			Status: domain.CategoryShow,
		}
		created := stored
		created.ID = "c1"
		categories.On("InsertCategory", mock.Anything, stored).Return(created, nil)

		got, err := s.AddCategory(t.Context(), domain.Category{
			Name: " Shirts ", Parent: " Men", ProductType: " Fashion ",
		})
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	tests := []struct {
		name string
		c    domain.Category
		msg  string
	}{
		{"NoName", domain.Category{ProductType: "fashion"}, "category name"},
		{"LongName", domain.Category{Name: strings.Repeat("x", 101), ProductType: "fashion"}, "too large"},
		{"NoProductType", domain.Category{Name: "Shirts"}, "product type is required"},
		{"BadStatus", domain.Category{Name: "Shirts", ProductType: "fashion", Status: "Visible"}, "status must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, categories := newTestCategoryService()
			_, err := s.AddCategory(t.Context(), tt.c)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.msg)
			categories.AssertNotCalled(t, "InsertCategory", mock.Anything, mock.Anything)
		})
	}
}

func TestAddCategories(t *testing.T) {
	t.Run("EmptyList", func(t *testing.T) {
		s, _ := newTestCategoryService()
		_, err := s.AddCategories(t.Context(), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("OneInvalidRejectsBatch", func(t *testing.T) {
		s, categories := newTestCategoryService()
		_, err := s.AddCategories(t.Context(), []domain.Category{
			{Name: "Shirts", ProductType: "fashion"},
			{Name: "Bags"},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "category 1")
		categories.AssertNotCalled(t, "InsertCategories", mock.Anything, mock.Anything)
	})

	t.Run("Stored", func(t *testing.T) {
		s, categories := newTestCategoryService()
		batch := []domain.Category{
			{Name: "Shirts", ProductType: "fashion", Status: domain.CategoryShow},
			{Name: "Lipstick", ProductType: "beauty", Status: domain.CategoryHide},
		}
		categories.On("InsertCategories", mock.Anything, batch).Return(batch, nil)

		got, err := s.AddCategories(t.Context(), []domain.Category{
			{Name: "Shirts", ProductType: "fashion"},
			{Name: "Lipstick", ProductType: "beauty", Status: domain.CategoryHide},
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		categories.AssertExpectations(t)
	})
}

func TestCategoryListings(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		s, categories := newTestCategoryService()
		categories.On("ReadCategories", mock.Anything, domain.CategoryFilter{}).
			Return([]domain.Category{{ID: "c1"}}, nil)

		got, err := s.ListCategories(t.Context())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Shown", func(t *testing.T) {
		s, categories := newTestCategoryService()
		categories.On("ReadCategories", mock.Anything, domain.CategoryFilter{
			Status: domain.CategoryShow,
		}).Return([]domain.Category{}, nil)

		_, err := s.ShownCategories(t.Context())
		require.NoError(t, err)
		categories.AssertExpectations(t)
	})

	t.Run("ByProductType", func(t *testing.T) {
		s, categories := newTestCategoryService()
		categories.On("ReadCategories", mock.Anything, domain.CategoryFilter{
			ProductType: "beauty",
		}).Return([]domain.Category{}, nil)

		_, err := s.CategoriesByProductType(t.Context(), " beauty ")
		require.NoError(t, err)
		categories.AssertExpectations(t)
	})

	t.Run("ByProductTypeMissing", func(t *testing.T) {
		s, categories := newTestCategoryService()
		_, err := s.CategoriesByProductType(t.Context(), "")
		require.ErrorIs(t, err, domain.ErrValidation)
		categories.AssertNotCalled(t, "ReadCategories", mock.Anything, mock.Anything)
	})
}

func TestUpdateCategory(t *testing.T) {
	current := domain.Category{
		ID: "c1", Name: "Shirts", ProductType: "fashion", Status: domain.CategoryShow,
	}

	t.Run("Normalized", func(t *testing.T) {
		s, categories := newTestCategoryService()
		name, hide := " Tees ", domain.CategoryHide
		trimmed := "Tees"

		categories.On("ReadCategory", mock.Anything, "c1").Return(current, nil)
		categories.On("UpdateCategory", mock.Anything, "c1", domain.CategoryPatch{
			Name: &trimmed, Status: &hide,
		}).Return(domain.Category{ID: "c1", Name: "Tees"}, nil)

		got, err := s.UpdateCategory(t.Context(), "c1", domain.CategoryPatch{
			Name: &name, Status: &hide,
		})
		require.NoError(t, err)
		assert.Equal(t, "Tees", got.Name)
	})

	t.Run("BlankProductType", func(t *testing.T) {
		s, categories := newTestCategoryService()
		blank := "  "
		categories.On("ReadCategory", mock.Anything, "c1").Return(current, nil)

		_, err := s.UpdateCategory(t.Context(), "c1", domain.CategoryPatch{
			ProductType: &blank,
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		categories.AssertNotCalled(t, "UpdateCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown", func(t *testing.T) {
		s, categories := newTestCategoryService()
		categories.On("ReadCategory", mock.Anything, "c9").
			Return(domain.Category{}, domain.ErrNotFound)

		_, err := s.UpdateCategory(t.Context(), "c9", domain.CategoryPatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGetAndDeleteCategory(t *testing.T) {
	s, categories := newTestCategoryService()
	categories.On("ReadCategory", mock.Anything, "c1").
		Return(domain.Category{ID: "c1"}, nil)
	categories.On("DeleteCategory", mock.Anything, "c2").Return(domain.ErrNotFound)

	got, err := s.GetCategory(t.Context(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	err = s.DeleteCategory(t.Context(), "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
