package inventory

// Availability is the derived view of an inventory row. Nothing here is
// stored; both fields are recomputed from the row on every read.
type Availability struct {
	AvailableQty int
	IsLowStock   bool
}

// ComputeAvailability derives availability from the stored counts.
//
// AvailableQty goes negative when reservations outrun stock, and callers
// surface it as-is so oversell is visible instead of masked.
func ComputeAvailability(stockQty, reservedQty, lowStockThreshold int) Availability {
	available := stockQty - reservedQty
	return Availability{
		AvailableQty: available,
		IsLowStock:   available <= lowStockThreshold,
	}
}
