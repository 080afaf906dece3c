package forces

// Applier is a body as the aggregation step sees it: a ledger of
// proposals and one applied-force slot the integrator reads.
type Applier interface {
	ForceLedger() *Ledger
	SetApplied(Contribution)
}

// Aggregate publishes each body's combined force for this tick. It
// must run exactly once per tick, after every contributor has written
// its entries and before the integrator reads the applied value; that
// ordering is an external scheduling guarantee, not something the
// ledger enforces.
func Aggregate(bodies []Applier) {
	for _, b := range bodies {
		b.SetApplied(b.ForceLedger().Combine())
	}
}
