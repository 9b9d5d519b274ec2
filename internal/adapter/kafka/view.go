package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/schema"
)

var _ port.FeedReportsStorage = (*FeedReportsView)(nil)

// A FeedReportsView serves the feed reports of the processor group table.
type FeedReportsView struct {
	gv *goka.View
}

func NewFeedReportsView(
	seedBrokers []string, group string,
) (*FeedReportsView, error) {
	const op = "NewFeedReportsView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		newFeedReportCodec(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &FeedReportsView{gv}, nil
}

func (v *FeedReportsView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "FeedReportsView.Run"
	log := slog.With("op", op)

	defer wg.Done()
	defer stopFn()

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

func (v *FeedReportsView) ReadFeedReport(
	ctx context.Context, source string,
) (domain.FeedReport, error) {
	const op = "FeedReportsView.ReadFeedReport"

	if err := ctx.Err(); err != nil {
		return domain.FeedReport{}, opErr(err, op)
	}

	value, err := v.gv.Get(source)
	if err != nil {
		return domain.FeedReport{}, opErr(err, op)
	}
	if value == nil {
		return domain.FeedReport{}, opErr(domain.ErrNotFound, op)
	}

	s, ok := value.(schema.FeedReportV1)
	if !ok {
		return domain.FeedReport{}, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}
	return reportFromSchemaV1(s), nil
}
