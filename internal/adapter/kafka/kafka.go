package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/lovoo/goka"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt connects a new client. A nil tlsConfig dials plain TCP.
func ProducerClientOpt(
	ctx context.Context,
	seedBrokers []string,
	topic string,
	tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsConfig != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt sets an already built client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

// ApplyTLS makes every goka processor and view dial brokers with tlsConfig.
func ApplyTLS(tlsConfig *tls.Config) {
	if tlsConfig == nil {
		return
	}
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsConfig
	goka.ReplaceGlobalConfig(cfg)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func feedToSchemaV1(
	source string, us []domain.RawQuantityUpdate,
) (s schema.InventoryFeedV1) {
	s.Source = source
	s.Updates = make([]schema.QuantityUpdateV1, len(us))
	for i, u := range us {
		s.Updates[i].SKU = u.SKU
		s.Updates[i].Quantity = quantityText(u.Quantity)
	}
	return
}

func feedFromSchemaV1(s schema.InventoryFeedV1) []domain.RawQuantityUpdate {
	us := make([]domain.RawQuantityUpdate, len(s.Updates))
	for i, u := range s.Updates {
		us[i] = domain.RawQuantityUpdate{SKU: u.SKU, Quantity: u.Quantity}
	}
	return us
}

// nonNumeric is the wire text of a quantity that is neither a number nor text.
// It never coerces to a number, so the entry is discarded downstream.
const nonNumeric = "NaN"

// quantityText renders a raw quantity for the wire.
func quantityText(v any) string {
	switch q := v.(type) {
	case string:
		return q
	case json.Number:
		return q.String()
	case float64:
		return strconv.FormatFloat(q, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(q), 'f', -1, 32)
	case int:
		return strconv.Itoa(q)
	case int64:
		return strconv.FormatInt(q, 10)
	case int32:
		return strconv.FormatInt(int64(q), 10)
	}
	return nonNumeric
}

func reportToSchemaV1(
	source string, r domain.QuantityReport,
) (s schema.FeedReportV1) {
	s.Source = source
	s.Received = r.Received
	s.Discarded = r.Discarded
	s.Deduplicated = r.Deduplicated
	s.Matched = r.Matched
	s.Applied = r.Applied
	s.Missing = r.Missing
	s.MissingSKUs = r.MissingSKUs
	if s.MissingSKUs == nil {
		s.MissingSKUs = []string{}
	}
	s.FailedBatches = r.FailedBatches
	s.Failed = r.Failed
	return
}

func reportFromSchemaV1(s schema.FeedReportV1) domain.FeedReport {
	return domain.FeedReport{
		Source: s.Source,
		QuantityReport: domain.QuantityReport{
			Received:      s.Received,
			Discarded:     s.Discarded,
			Deduplicated:  s.Deduplicated,
			Matched:       s.Matched,
			Applied:       s.Applied,
			Missing:       s.Missing,
			MissingSKUs:   s.MissingSKUs,
			FailedBatches: s.FailedBatches,
			Failed:        s.Failed,
		},
	}
}
