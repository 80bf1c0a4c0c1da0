//go:build wireinject
// +build wireinject

package di

import (
	"GoldBrief/internal/domain/repository"
	"GoldBrief/internal/usecase"
	"GoldBrief/pkg/config"
	"GoldBrief/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideSources,
		ProvideLocation,

		// Upstream clients
		ProvideQuoteProviders,
		ProvideSeriesSource,
		ProvideCalendarSource,
		ProvideNewsSource,
		ProvideSentimentSource,

		// Quotes and index
		ProvideQuoteChain,
		wire.Bind(new(repository.QuoteSource), new(*usecase.QuoteChain)),
		ProvideIndexSynthesizer,

		// Use cases
		ProvideMarketData,
		ProvideKafkaProducer,
		ProvideDigestSinks,
		ProvideDigestService,

		// Presentation
		ProvideHTTPHandler,
		ProvideApp,
	)
	return nil, nil, nil
}
