package forces

import "sort"

// Ledger maps contributors to their current proposal for one body.
// Each body owns exactly one ledger; within a tick every key has at
// most one writer and the combined value a single reader, so the
// ledger itself carries no lock. Entries are never removed: a
// contributor going inactive sets its slot to zero instead.
type Ledger struct {
	entries map[Key]Contribution
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Key]Contribution)}
}

// Get returns the stored contribution for key, or the zero
// contribution if the key was never set. Absence is defined behavior,
// not an error: callers never need an existence check.
func (l *Ledger) Get(key Key) Contribution {
	return l.entries[key]
}

// Set upserts the contribution for key. The last write for a given key
// within a tick wins.
func (l *Ledger) Set(key Key, c Contribution) {
	l.entries[key] = c
}

// Combine folds all entries with componentwise addition on force and
// torque. Addition is commutative, so the result does not depend on
// insertion order; no contributor may assume its write order relative
// to others. An empty ledger combines to the zero contribution.
func (l *Ledger) Combine() Contribution {
	var sum Contribution
	for _, c := range l.entries {
		sum = sum.Add(c)
	}
	return sum
}

// Len reports the number of contributors that have ever written.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Keys returns all contributor keys in sorted order, for display.
func (l *Ledger) Keys() []Key {
	keys := make([]Key, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
