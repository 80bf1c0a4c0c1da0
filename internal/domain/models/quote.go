package models

import "math"

// ProvenanceNone marks a quote no provider could answer.
const ProvenanceNone = "none"

// Quote is a single instrument price together with the provider that
// supplied it. Value is NaN when every provider failed.
type Quote struct {
	Symbol     string
	Value      float64
	Provenance string
}

// MissingQuote returns the sentinel quote for symbol.
func MissingQuote(symbol string) Quote {
	return Quote{Symbol: symbol, Value: math.NaN(), Provenance: ProvenanceNone}
}

// Valid reports whether the quote carries a price.
func (q Quote) Valid() bool { return !math.IsNaN(q.Value) }
