package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.DistrictManager = (*DistrictService)(nil)

type DistrictService struct {
	districts port.DistrictsStorage
}

func NewDistrictService(districts port.DistrictsStorage) DistrictService {
	return DistrictService{districts}
}

func (s DistrictService) AddDistrict(
	ctx context.Context, d domain.DeliveryDistrict,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictService.AddDistrict"

	if err := ctx.Err(); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	d.Name = strings.TrimSpace(d.Name)
	if err := validateDistrict(d.Name, d.DeliveryCost); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.districts.InsertDistrict(ctx, d)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func validateDistrict(name string, cost float64) error {
	var errs []error
	switch {
	case name == "":
		errs = append(errs, errors.New("please provide a district name"))
	case len([]rune(name)) > domain.MaxDistrictNameLen:
		errs = append(errs, errors.New("district name is too large"))
	}
	if cost < 0 {
		errs = append(errs, errors.New("delivery cost can't be negative"))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, errors.Join(errs...))
	}
	return nil
}

func (s DistrictService) ListDistricts(
	ctx context.Context,
) ([]domain.DeliveryDistrict, error) {
	const op = "DistrictService.ListDistricts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ds, err := s.districts.ReadDistricts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ds, nil
}

func (s DistrictService) GetDistrict(
	ctx context.Context, id string,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictService.GetDistrict"

	if err := ctx.Err(); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	d, err := s.districts.ReadDistrict(ctx, id)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (s DistrictService) UpdateDistrict(
	ctx context.Context, id string, p domain.DistrictPatch,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictService.UpdateDistrict"

	if err := ctx.Err(); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.districts.ReadDistrict(ctx, id)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	name, cost := current.Name, current.DeliveryCost
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		p.Name = &trimmed
		name = trimmed
	}
	if p.DeliveryCost != nil {
		cost = *p.DeliveryCost
	}
	if err := validateDistrict(name, cost); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	d, err := s.districts.UpdateDistrict(ctx, id, p)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (s DistrictService) DeleteDistrict(ctx context.Context, id string) error {
	const op = "DistrictService.DeleteDistrict"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.districts.DeleteDistrict(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
