package entity

// Snapshot is a point-in-time copy of a user's accounting state.
// Slices are owned by the caller; mutating them does not affect the
// aggregator's internal state.
type Snapshot struct {
	Categories   []*Category
	Transactions []*TransactionWithCategory
	Loading      bool
}
