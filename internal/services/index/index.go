package index

import (
	"context"
	"math"

	drepo "GoldBrief/internal/domain/repository"
)

// Base is the ICE scaling constant of the US dollar index.
const Base = 50.14348112

// Component is one currency pair of the index basket. Exponent is the
// signed weight: negative for pairs quoted with USD as the quote currency.
type Component struct {
	Pair     string
	Exponent float64
}

// Basket lists the index constituents in fetch order.
var Basket = []Component{
	{Pair: "EUR/USD", Exponent: -0.576},
	{Pair: "USD/JPY", Exponent: 0.136},
	{Pair: "GBP/USD", Exponent: -0.119},
	{Pair: "USD/CAD", Exponent: 0.091},
	{Pair: "USD/SEK", Exponent: 0.042},
	{Pair: "USD/CHF", Exponent: 0.036},
}

// ComputeIndex returns the weighted geometric mean of quotes, keyed by
// pair. A missing, NaN or non-positive quote makes the whole index NaN.
func ComputeIndex(quotes map[string]float64) float64 {
	v := Base
	for _, c := range Basket {
		q, ok := quotes[c.Pair]
		if !ok || math.IsNaN(q) || q <= 0 {
			return math.NaN()
		}
		v *= math.Pow(q, c.Exponent)
	}
	return v
}

// Synthesizer fetches the basket quotes and computes the index.
type Synthesizer struct {
	quotes drepo.QuoteSource
}

func NewSynthesizer(quotes drepo.QuoteSource) *Synthesizer {
	return &Synthesizer{quotes: quotes}
}

// Compute fetches each pair in basket order. It stops at the first pair
// no provider could answer, since the result is NaN regardless.
func (s *Synthesizer) Compute(ctx context.Context) float64 {
	quotes := make(map[string]float64, len(Basket))
	for _, c := range Basket {
		q := s.quotes.Quote(ctx, c.Pair)
		if !q.Valid() {
			return math.NaN()
		}
		quotes[c.Pair] = q.Value
	}
	return ComputeIndex(quotes)
}
