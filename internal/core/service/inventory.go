package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/pkg/retry"
)

// ApplyQuantityUpdates sets quantity and stock status for every known SKU
// of the feed.
//
// A nil feed is not a list and fails with [domain.ErrValidation].
// Malformed entries are discarded, the last entry of a repeated SKU wins,
// unknown SKUs are reported as missing and never created.
// Batches are written independently, a failed batch is counted and
// does not stop the rest.
func (s Service) ApplyQuantityUpdates(
	ctx context.Context, raw []domain.RawQuantityUpdate,
) (domain.QuantityReport, error) {
	const op = "Service.ApplyQuantityUpdates"
	log := slog.With("op", op)

	var report domain.QuantityReport

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	if raw == nil {
		return report, fmt.Errorf(
			"%s: %w: updates should be a list", op, domain.ErrValidation,
		)
	}

	report.Received = len(raw)
	if len(raw) == 0 {
		log.Warn("no updates provided")
		return report, nil
	}

	valid := normalizeUpdates(raw)
	report.Discarded = len(raw) - len(valid)

	updates := dedupeUpdates(valid)
	report.Deduplicated = len(updates)
	log.Info("incoming updates",
		"nReceived", report.Received,
		"nDiscarded", report.Discarded,
		"nUnique", report.Deduplicated,
	)
	if len(updates) == 0 {
		return report, nil
	}

	matched, missing, err := s.matchKnownSKUs(ctx, updates)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	report.Matched = len(matched)
	report.Missing = len(missing)
	report.MissingSKUs = missing

	if len(missing) != 0 {
		log.Warn("skus not found", "nMissing", len(missing), "skus", missing)
	}

	if len(matched) == 0 {
		log.Warn("no valid updates found")
		return report, nil
	}

	nBatch := 0
	for batch := range slices.Chunk(matched, s.batchSize) {
		nBatch++
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%s: %w", op, err)
		}

		applied, err := s.applyBatch(ctx, batch)
		report.Applied += applied
		if err != nil {
			report.FailedBatches++
			report.Failed += len(batch) - applied
			log.Warn("failed to apply batch",
				"batch", nBatch, "size", len(batch), "err", err,
			)
		}
	}

	log.Info("quantities updated",
		"nApplied", report.Applied,
		"nMissing", report.Missing,
		"nFailedBatches", report.FailedBatches,
	)
	return report, nil
}

func (s Service) matchKnownSKUs(
	ctx context.Context, us []domain.QuantityUpdate,
) (matched []domain.QuantityUpdate, missing []string, err error) {
	skus := make([]string, len(us))
	for i, u := range us {
		skus[i] = u.SKU
	}

	existing, err := s.products.ExistingSKUs(ctx, skus)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, sku := range existing {
		known[domain.NormalizeSKU(sku)] = struct{}{}
	}

	for _, u := range us {
		if _, ok := known[u.SKU]; ok {
			matched = append(matched, u)
			continue
		}
		missing = append(missing, u.SKU)
	}
	return matched, missing, nil
}

func (s Service) applyBatch(
	ctx context.Context, batch []domain.QuantityUpdate,
) (int, error) {
	var applied int
	err := retry.Do(ctx, s.batchRetry, func() error {
		n, err := s.products.SetQuantities(ctx, batch)
		applied = n
		return err
	})
	return applied, err
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}

func normalizeUpdates(raw []domain.RawQuantityUpdate) []domain.QuantityUpdate {
	us := make([]domain.QuantityUpdate, 0, len(raw))
	for _, r := range raw {
		sku := domain.NormalizeSKU(r.SKU)
		if sku == "" {
			continue
		}
		qty, ok := coerceQuantity(r.Quantity)
		if !ok {
			continue
		}
		us = append(us, domain.QuantityUpdate{SKU: sku, Quantity: qty})
	}
	return us
}

// dedupeUpdates keeps one update per SKU at the position of its first
// occurrence, holding the value of the last one.
func dedupeUpdates(us []domain.QuantityUpdate) []domain.QuantityUpdate {
	pos := make(map[string]int, len(us))
	out := make([]domain.QuantityUpdate, 0, len(us))
	for _, u := range us {
		if i, ok := pos[u.SKU]; ok {
			out[i] = u
			continue
		}
		pos[u.SKU] = len(out)
		out = append(out, u)
	}
	return out
}

func coerceQuantity(v any) (float64, bool) {
	var f float64
	switch q := v.(type) {
	case float64:
		f = q
	case float32:
		f = float64(q)
	case int:
		f = float64(q)
	case int32:
		f = float64(q)
	case int64:
		f = float64(q)
	case json.Number:
		parsed, err := q.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		q = strings.TrimSpace(q)
		if q == "" {
			// blank text counts as zero stock
			return 0, true
		}
		parsed, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
