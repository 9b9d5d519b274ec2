package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/schema"
)

var _ port.InventoryFeedProcessor = (*InventoryFeedProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A feedEventCodec used for serde [schema.InventoryFeedV1]
type feedEventCodec struct {
	serde Serde
}

func newFeedEventCodec(s Serde) feedEventCodec {
	return feedEventCodec{s}
}

func (c feedEventCodec) Encode(v any) ([]byte, error) {
	const op = "feedEventCodec.Encode"
	if _, ok := v.(schema.InventoryFeedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c feedEventCodec) Decode(data []byte) (any, error) {
	const op = "feedEventCodec.Decode"
	var s schema.InventoryFeedV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A feedReportCodec used for serde [schema.FeedReportV1] in the group table.
//
// Table values are plain avro, the table is private to the group.
type feedReportCodec struct {
	encode func(v any) ([]byte, error)
	decode func(data []byte, v any) error
}

func newFeedReportCodec() feedReportCodec {
	s := schema.FeedReportV1Avro()
	return feedReportCodec{
		encode: schema.AvroEncodeFn(s),
		decode: schema.AvroDecodeFn(s),
	}
}

func (c feedReportCodec) Encode(v any) ([]byte, error) {
	const op = "feedReportCodec.Encode"
	if _, ok := v.(schema.FeedReportV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	b, err := c.encode(v)
	if err != nil {
		return nil, opErr(err, op)
	}
	return b, nil
}

func (c feedReportCodec) Decode(data []byte) (any, error) {
	const op = "feedReportCodec.Decode"
	var s schema.FeedReportV1
	if err := c.decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An InventoryFeedProcessor applies inventory feeds from the stream topic
// and keeps the last report of every feed source in the group table.
type InventoryFeedProcessor struct {
	opPrefix string
	proc     processor
	updater  port.QuantityUpdater
}

func NewInventoryFeedProc(
	seedBrokers []string,
	inputStream string,
	group string,
	feedSerde Serde,
	updater port.QuantityUpdater,
	opts ...goka.ProcessorOption,
) (*InventoryFeedProcessor, error) {
	const op = "NewInventoryFeedProc"

	p := InventoryFeedProcessor{
		opPrefix: "InventoryFeedProcessor",
		updater:  updater,
	}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newFeedEventCodec(feedSerde),
			p.processFn,
		),
		goka.Persist(newFeedReportCodec()),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *InventoryFeedProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *InventoryFeedProcessor) Close() {
	p.proc.close()
}

func (p *InventoryFeedProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, ok := msg.(schema.InventoryFeedV1)
	log := slog.With("op", makeOp(p.opPrefix, op), "source", event.Source)
	if !ok {
		log.Error("unexpected message", "err", ErrInvalidValueType)
		return
	}

	report, err := p.apply(ctx.Context(), event)
	if err != nil {
		log.Error("failed to apply feed", "err", err)
		return
	}
	ctx.SetValue(report)
	log.Info("feed applied",
		"nApplied", report.Applied, "nMissing", report.Missing,
	)
}

func (p *InventoryFeedProcessor) apply(
	ctx context.Context, event schema.InventoryFeedV1,
) (schema.FeedReportV1, error) {
	report, err := p.updater.ApplyQuantityUpdates(ctx, feedFromSchemaV1(event))
	if err != nil {
		return schema.FeedReportV1{}, err
	}
	return reportToSchemaV1(event.Source, report), nil
}
