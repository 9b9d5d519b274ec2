package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

var _ port.InventoryFeedSender = (*FeedService)(nil)

// A FeedService hands inventory feeds over to the asynchronous pipeline.
type FeedService struct {
	producer port.InventoryFeedProducer
	reports  port.FeedReportsStorage
}

func NewFeedService(
	producer port.InventoryFeedProducer, reports port.FeedReportsStorage,
) FeedService {
	return FeedService{producer, reports}
}

func (s FeedService) SendFeed(
	ctx context.Context, source string, us []domain.RawQuantityUpdate,
) error {
	const op = "FeedService.SendFeed"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		return fmt.Errorf("%s: %w: source is required", op, domain.ErrValidation)
	}
	if us == nil {
		return fmt.Errorf(
			"%s: %w: updates should be a list", op, domain.ErrValidation,
		)
	}
	if len(us) == 0 {
		log.Warn("empty feed skipped", "source", source)
		return nil
	}

	if err := s.producer.ProduceFeed(ctx, source, us); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("feed accepted", "source", source, "nUpdates", len(us))
	return nil
}

// FeedReport returns the report of the last applied feed of the source.
func (s FeedService) FeedReport(
	ctx context.Context, source string,
) (domain.FeedReport, error) {
	const op = "FeedService.FeedReport"

	if err := ctx.Err(); err != nil {
		return domain.FeedReport{}, fmt.Errorf("%s: %w", op, err)
	}

	r, err := s.reports.ReadFeedReport(ctx, strings.TrimSpace(source))
	if err != nil {
		return domain.FeedReport{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}
