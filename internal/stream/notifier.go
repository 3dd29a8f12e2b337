package stream

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// StockSnapshot is the single event a subscription receives before the
// stream closes.
type StockSnapshot struct {
	ProductID     uuid.UUID `json:"productId"`
	StockQuantity int       `json:"stockQuantity"`
	Timestamp     time.Time `json:"timestamp"`
}

// Notifier produces one-shot stock snapshots. The count is a synthetic
// placeholder, not a store read; the endpoint exists so clients can exercise
// the SSE contract before a real change feed lands.
type Notifier struct {
	randInt func(n int) int
	now     func() time.Time
}

// NewNotifier builds a notifier backed by the default RNG and clock.
func NewNotifier() *Notifier {
	return &Notifier{randInt: rand.Intn, now: time.Now}
}

// Snapshot returns the synthetic snapshot for the product. Counts land in
// [0, 100).
func (n *Notifier) Snapshot(productID uuid.UUID) StockSnapshot {
	return StockSnapshot{
		ProductID:     productID,
		StockQuantity: n.randInt(100),
		Timestamp:     n.now().UTC(),
	}
}
