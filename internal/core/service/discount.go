package service

import (
	"context"
	"fmt"
	"log/slog"
)

// ClearExpiredDiscounts resets the discount of in-stock products whose
// offer has ended and removes the offer end date.
//
// Returns the number of cleared products.
func (s Service) ClearExpiredDiscounts(ctx context.Context) (int, error) {
	const op = "Service.ClearExpiredDiscounts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	ids, err := s.products.ExpiredDiscountIDs(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		log.Info("no products with expired discounts")
		return 0, nil
	}

	n, err := s.products.ClearDiscounts(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("expired discounts cleared", "nProducts", n)
	return n, nil
}
