package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	"GoldBrief/pkg/logger"
)

// Fetch outcome labels recorded in metrics.
const (
	resultOK       = "ok"
	resultEmpty    = "empty"
	resultError    = "error"
	resultDisabled = "disabled"
)

// QuoteChain asks each provider in order and returns the first usable
// price. It never fails: when every provider errors the result is
// models.MissingQuote.
type QuoteChain struct {
	providers []drepo.QuoteProvider
	log       *logger.Logger
	metrics   drepo.Metrics
}

func NewQuoteChain(log *logger.Logger, metrics drepo.Metrics, providers ...drepo.QuoteProvider) *QuoteChain {
	c := &QuoteChain{
		providers: providers,
		log:       log.With(logger.String("component", "quote_chain")),
		metrics:   metrics,
	}
	c.log.Debug("quote chain ready", logger.Strings("providers", c.Providers()))
	return c
}

// Providers returns the provider names in fallback order.
func (c *QuoteChain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

func (c *QuoteChain) Quote(ctx context.Context, symbol string) models.Quote {
	for _, p := range c.providers {
		start := time.Now()
		v, err := p.Price(ctx, symbol)
		c.metrics.RecordLatency("quote", time.Since(start).Seconds())

		switch {
		case errors.Is(err, drepo.ErrNotConfigured):
			c.metrics.RecordFetch("quote", p.Name(), resultDisabled)
			continue
		case err != nil:
			c.metrics.RecordFetch("quote", p.Name(), resultError)
			c.log.Warn("quote provider failed",
				logger.String("provider", p.Name()),
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		case math.IsNaN(v) || math.IsInf(v, 0) || v <= 0:
			c.metrics.RecordFetch("quote", p.Name(), resultEmpty)
			c.log.Warn("quote provider returned unusable price",
				logger.String("provider", p.Name()),
				logger.String("symbol", symbol),
				logger.Float("price", v))
			continue
		}

		c.metrics.RecordFetch("quote", p.Name(), resultOK)
		c.log.Debug("quote fetched",
			logger.String("provider", p.Name()),
			logger.String("symbol", symbol),
			logger.Float("price", v))
		return models.Quote{Symbol: symbol, Value: v, Provenance: p.Name()}
	}

	c.log.Warn("no quote provider answered", logger.String("symbol", symbol))
	return models.MissingQuote(symbol)
}
