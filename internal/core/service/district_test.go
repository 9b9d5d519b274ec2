package service

import (
	"strings"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddDistrict(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.DeliveryDistrict
		wantErr string
	}{
		{"NoName", domain.DeliveryDistrict{Name: "  "}, "please provide a district name"},
		{"TooLarge", domain.DeliveryDistrict{Name: strings.Repeat("n", 101)}, "too large"},
		{"NegativeCost", domain.DeliveryDistrict{Name: "North", DeliveryCost: -1}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockDistricts{}
			s := NewDistrictService(m)
			_, err := s.AddDistrict(t.Context(), tt.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tt.wantErr)
			m.AssertNotCalled(t, "InsertDistrict", mock.Anything, mock.Anything)
		})
	}

	t.Run("Trimmed", func(t *testing.T) {
		m := &MockDistricts{}
		s := NewDistrictService(m)
		m.On("InsertDistrict", mock.Anything, domain.DeliveryDistrict{
			Name: "North", DeliveryCost: 2,
		}).Return(domain.DeliveryDistrict{ID: "d1", Name: "North", DeliveryCost: 2}, nil)

		got, err := s.AddDistrict(t.Context(), domain.DeliveryDistrict{
			Name: " North ", DeliveryCost: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "d1", got.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		m := &MockDistricts{}
		s := NewDistrictService(m)
		m.On("InsertDistrict", mock.Anything, mock.Anything).
			Return(domain.DeliveryDistrict{}, domain.ErrConflict)

		_, err := s.AddDistrict(t.Context(), domain.DeliveryDistrict{Name: "North"})
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestUpdateDistrict(t *testing.T) {
	t.Run("ValidatesMergedValues", func(t *testing.T) {
		m := &MockDistricts{}
		s := NewDistrictService(m)
		m.On("ReadDistrict", mock.Anything, "d1").
			Return(domain.DeliveryDistrict{ID: "d1", Name: "North", DeliveryCost: 2}, nil)

		cost := -5.0
		_, err := s.UpdateDistrict(t.Context(), "d1", domain.DistrictPatch{DeliveryCost: &cost})
		require.ErrorIs(t, err, domain.ErrValidation)
		m.AssertNotCalled(t, "UpdateDistrict", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NameTrimmed", func(t *testing.T) {
		m := &MockDistricts{}
		s := NewDistrictService(m)
		m.On("ReadDistrict", mock.Anything, "d1").
			Return(domain.DeliveryDistrict{ID: "d1", Name: "North"}, nil)

		trimmed := "South"
		m.On("UpdateDistrict", mock.Anything, "d1", domain.DistrictPatch{Name: &trimmed}).
			Return(domain.DeliveryDistrict{ID: "d1", Name: "South"}, nil)

		name := " South "
		got, err := s.UpdateDistrict(t.Context(), "d1", domain.DistrictPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "South", got.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		m := &MockDistricts{}
		s := NewDistrictService(m)
		m.On("ReadDistrict", mock.Anything, "d9").
			Return(domain.DeliveryDistrict{}, domain.ErrNotFound)

		_, err := s.UpdateDistrict(t.Context(), "d9", domain.DistrictPatch{})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteDistrict(t *testing.T) {
	m := &MockDistricts{}
	s := NewDistrictService(m)
	m.On("DeleteDistrict", mock.Anything, "d9").Return(domain.ErrNotFound)

	err := s.DeleteDistrict(t.Context(), "d9")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
