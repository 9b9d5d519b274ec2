package schema

import "github.com/hamba/avro/v2"

const InventoryFeedSchemaTextV1 = `{
	"type": "record",
	"namespace": "inventory",
	"name": "feed",
	"fields": [
		{"name": "source", "type": "string"},
		{"name": "updates", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "quantity_update",
				"fields": [
					{"name": "sku", "type": "string"},
					{"name": "quantity", "type": "string"}
				]
			}
		}}
	]
}`

const FeedReportSchemaTextV1 = `{
	"type": "record",
	"namespace": "inventory",
	"name": "feed_report",
	"fields": [
		{"name": "source", "type": "string"},
		{"name": "received", "type": "long"},
		{"name": "discarded", "type": "long"},
		{"name": "deduplicated", "type": "long"},
		{"name": "matched", "type": "long"},
		{"name": "applied", "type": "long"},
		{"name": "missing", "type": "long"},
		{"name": "missing_skus", "type": {"type": "array", "items": "string"}},
		{"name": "failed_batches", "type": "long"},
		{"name": "failed", "type": "long"}
	]
}`

type (
	// An InventoryFeedV1 is one batch of an external inventory feed.
	//
	// Quantity is carried as text, feeds are not trusted to send numbers.
	InventoryFeedV1 struct {
		Source  string             `avro:"source"`
		Updates []QuantityUpdateV1 `avro:"updates"`
	}

	QuantityUpdateV1 struct {
		SKU      string `avro:"sku"`
		Quantity string `avro:"quantity"`
	}
)

type FeedReportV1 struct {
	Source        string   `avro:"source"`
	Received      int      `avro:"received"`
	Discarded     int      `avro:"discarded"`
	Deduplicated  int      `avro:"deduplicated"`
	Matched       int      `avro:"matched"`
	Applied       int      `avro:"applied"`
	Missing       int      `avro:"missing"`
	MissingSKUs   []string `avro:"missing_skus"`
	FailedBatches int      `avro:"failed_batches"`
	Failed        int      `avro:"failed"`
}

func InventoryFeedV1Avro() avro.Schema {
	return avro.MustParse(InventoryFeedSchemaTextV1)
}

func FeedReportV1Avro() avro.Schema {
	return avro.MustParse(FeedReportSchemaTextV1)
}
