package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
)

const typeListingLimit = 8

// ProductsByType returns in-stock products of the product type.
//
// Ordered listings hold the first [typeListingLimit] products, an
// unordered one holds all of them.
func (s Service) ProductsByType(
	ctx context.Context, productType string, o domain.TypeOrder,
) ([]domain.Product, error) {
	const op = "Service.ProductsByType"

	l := domain.TypeListing{ProductType: strings.TrimSpace(productType), Order: o}
	switch o {
	case domain.TypeOrderNone:
	case domain.TypeOrderNewest, domain.TypeOrderTopSellers:
		l.Limit = typeListingLimit
	default:
		return nil, fmt.Errorf(
			"%s: %w: unknown order %q", op, domain.ErrValidation, o,
		)
	}

	ps, err := s.typeProducts(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// OfferProducts returns in-stock products of the product type whose
// offer has not ended yet.
func (s Service) OfferProducts(
	ctx context.Context, productType string,
) ([]domain.Product, error) {
	const op = "Service.OfferProducts"

	now := s.now().UTC()
	ps, err := s.typeProducts(ctx, domain.TypeListing{
		ProductType:    strings.TrimSpace(productType),
		OfferEndsAfter: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// PopularProducts returns the newest in-stock products of the product type.
func (s Service) PopularProducts(
	ctx context.Context, productType string,
) ([]domain.Product, error) {
	const op = "Service.PopularProducts"

	ps, err := s.typeProducts(ctx, domain.TypeListing{
		ProductType: strings.TrimSpace(productType),
		Order:       domain.TypeOrderNewest,
		Limit:       typeListingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) ReviewedProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ReviewedProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.ReviewedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) typeProducts(
	ctx context.Context, l domain.TypeListing,
) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.ProductType == "" {
		return nil, fmt.Errorf("%w: product type is required", domain.ErrValidation)
	}
	return s.products.TypeProducts(ctx, l)
}
