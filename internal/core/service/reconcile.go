package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/catalog/internal/core/domain"
)

// ReconcileAll rebuilds every category product list from the
// category reference held by each product.
//
// Ids of deleted products are dropped, products pointing at the category
// but absent from its list are appended. Only categories whose member set
// changed are written, so a second run without intervening writes is a no-op.
func (s Service) ReconcileAll(ctx context.Context) (domain.ReconcileReport, error) {
	const op = "Service.ReconcileAll"
	log := slog.With("op", op)

	var report domain.ReconcileReport

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	categories, err := s.categories.CategoryProducts(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	productIDs, err := s.products.ProductIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	existing := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		existing[id] = struct{}{}
	}

	expected, err := s.products.ProductIDsByCategory(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	var changed []domain.CategoryProducts
	for _, c := range categories {
		report.Scanned++

		ids, dropped, added := reconcileMembers(
			c.ProductIDs, existing, expected[c.CategoryID],
		)
		report.Dropped += dropped
		report.Added += added

		if sameMembers(c.ProductIDs, ids) {
			continue
		}
		changed = append(changed, domain.CategoryProducts{
			CategoryID: c.CategoryID,
			ProductIDs: ids,
		})
	}

	if len(changed) != 0 {
		if err := s.categories.StoreCategoryProducts(ctx, changed); err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}
	}
	report.Updated = len(changed)

	log.Info("category products synchronized",
		"nScanned", report.Scanned,
		"nUpdated", report.Updated,
		"nDropped", report.Dropped,
		"nAdded", report.Added,
	)
	return report, nil
}

// reconcileMembers keeps the stored ids that still exist in their stored
// order and appends the expected ones that are absent.
func reconcileMembers(
	stored []string, existing map[string]struct{}, expected []string,
) (ids []string, dropped, added int) {
	seen := make(map[string]struct{}, len(stored)+len(expected))
	ids = make([]string, 0, len(stored)+len(expected))

	for _, id := range stored {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := existing[id]; !ok {
			dropped++
			continue
		}
		ids = append(ids, id)
	}

	for _, id := range expected {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		added++
	}
	return ids, dropped, added
}

func sameMembers(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, id := range b {
		if _, ok := as[id]; !ok {
			return false
		}
		bs[id] = struct{}{}
	}
	return len(as) == len(bs)
}
