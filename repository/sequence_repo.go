package repository

// SequenceRepository hands out document numbers. Next atomically increments
// and returns the counter for (name, year); counters reset per calendar year
// by keying on both.
type SequenceRepository interface {
	Next(name string, year int) (int64, error)
}

const (
	SequenceConsignment = "consignment"
	SequenceFreightBill = "freight_bill"
)
