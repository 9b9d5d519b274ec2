package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.InventoryFeedProducer = (*InventoryFeedProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An InventoryFeedProducer produces inventory feeds keyed by their source,
// so feeds of one source are applied in order.
type InventoryFeedProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

// NewInventoryFeedProducer requires a client option and [ProducerEncoderOpt].
func NewInventoryFeedProducer(
	opts ...ProducerOpt,
) (InventoryFeedProducer, error) {
	const op = "NewInventoryFeedProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return InventoryFeedProducer{}, opErr(err, op)
		}
	}

	opPrefix := "InventoryFeedProducer"
	return InventoryFeedProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p InventoryFeedProducer) Close() {
	p.producer.close()
}

func (p InventoryFeedProducer) ProduceFeed(
	ctx context.Context, source string, us []domain.RawQuantityUpdate,
) error {
	const op = "ProduceFeed"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(source, us)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p InventoryFeedProducer) createRecord(
	source string, us []domain.RawQuantityUpdate,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := feedToSchemaV1(source, us)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Source), Value: b}, nil
}
