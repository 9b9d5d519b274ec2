package service

import (
	"context"
	"fmt"

	"github.com/niksmo/catalog/internal/core/domain"
)

func (s Service) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) (domain.ProductPage, error) {
	const op = "Service.QueryProducts"

	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	q = q.Normalize()
	ps, total, err := s.products.QueryProducts(ctx, q)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.NewProductPage(ps, total, q.Skip, q.Take), nil
}
