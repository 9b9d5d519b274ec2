package domain

// A RawQuantityUpdate is an entry of an external inventory feed as received.
//
// Quantity holds a number or a numeric string; anything else
// is discarded during normalization.
type RawQuantityUpdate struct {
	SKU      string
	Quantity any
}

type QuantityUpdate struct {
	SKU      string
	Quantity float64
}

// Status returns the stock status implied by the update quantity.
func (u QuantityUpdate) Status() ProductStatus {
	return StockStatus(u.Quantity)
}

// A QuantityReport summarizes a bulk quantity update run.
type QuantityReport struct {
	Received      int
	Discarded     int
	Deduplicated  int
	Matched       int
	Applied       int
	Missing       int
	MissingSKUs   []string
	FailedBatches int
	Failed        int
}

// A FeedReport is a [QuantityReport] attributed to a feed source.
type FeedReport struct {
	Source string
	QuantityReport
}
