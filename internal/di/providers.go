package di

import (
	"fmt"
	"os"
	"time"

	"GoldBrief/internal/domain/repository"
	"GoldBrief/internal/handler/api"
	internalrepo "GoldBrief/internal/repository"
	"GoldBrief/internal/service/finnhub"
	"GoldBrief/internal/service/fred"
	"GoldBrief/internal/service/myfxbook"
	"GoldBrief/internal/service/newsapi"
	"GoldBrief/internal/service/telegram"
	"GoldBrief/internal/service/tradingeconomics"
	"GoldBrief/internal/service/twelvedata"
	"GoldBrief/internal/services/index"
	"GoldBrief/internal/usecase"
	"GoldBrief/pkg/config"
	xhttp "GoldBrief/pkg/http"
	pkgkafka "GoldBrief/pkg/kafka"
	"GoldBrief/pkg/logger"
	"GoldBrief/pkg/metrics"
	"GoldBrief/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSources resolves the enabled source set once.
func ProvideSources(cfg *config.Config) config.Sources {
	return cfg.Sources()
}

// ProvideLocation loads the civil timezone.
func ProvideLocation(cfg *config.Config) (*time.Location, error) {
	return cfg.Location()
}

// ProvideQuoteProviders builds the fallback chain in priority order.
// Providers without credentials are left out.
func ProvideQuoteProviders(cfg *config.Config, src config.Sources) []repository.QuoteProvider {
	var providers []repository.QuoteProvider
	if src.TwelveData {
		providers = append(providers, twelvedata.New(cfg.TwelveData.APIKey, cfg.TwelveData.BaseURL, cfg.TwelveData.Timeout))
	}
	if src.Finnhub {
		providers = append(providers, finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout))
	}
	return providers
}

// ProvideQuoteChain creates the quote source.
func ProvideQuoteChain(providers []repository.QuoteProvider, l *logger.Logger, m repository.Metrics) *usecase.QuoteChain {
	return usecase.NewQuoteChain(l, m, providers...)
}

// ProvideIndexSynthesizer creates the dollar index synthesizer.
func ProvideIndexSynthesizer(quotes repository.QuoteSource) *index.Synthesizer {
	return index.NewSynthesizer(quotes)
}

// ProvideSeriesSource creates the FRED client, or nil without credentials.
func ProvideSeriesSource(cfg *config.Config, src config.Sources) repository.SeriesSource {
	if !src.FRED {
		return nil
	}
	return fred.New(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.ObservationStart, cfg.FRED.Timeout)
}

// ProvideCalendarSource creates the TradingEconomics client, or nil without
// credentials.
func ProvideCalendarSource(cfg *config.Config, src config.Sources) repository.CalendarSource {
	if !src.Calendar {
		return nil
	}
	te := cfg.TradingEconomics
	return tradingeconomics.New(te.APIKey, te.BaseURL, te.Countries, te.Importance, te.Timeout)
}

// ProvideNewsSource creates the NewsAPI client, or nil without credentials.
func ProvideNewsSource(cfg *config.Config, src config.Sources) repository.NewsSource {
	if !src.News {
		return nil
	}
	n := cfg.NewsAPI
	return newsapi.New(n.APIKey, n.BaseURL, n.Query, n.Language, n.PageSize, n.Timeout)
}

// ProvideSentimentSource creates the Myfxbook scraper, or nil when disabled.
func ProvideSentimentSource(cfg *config.Config, src config.Sources) repository.SentimentSource {
	if !src.Sentiment {
		return nil
	}
	m := cfg.Myfxbook
	return myfxbook.New(m.URL, m.UserAgent, m.Enabled, m.Timeout)
}

// ProvideMarketData creates the pipeline use case.
func ProvideMarketData(
	cfg *config.Config,
	loc *time.Location,
	quotes repository.QuoteSource,
	idx *index.Synthesizer,
	series repository.SeriesSource,
	calendar repository.CalendarSource,
	news repository.NewsSource,
	sentiment repository.SentimentSource,
	l *logger.Logger,
	m repository.Metrics,
) *usecase.MarketData {
	return usecase.NewMarketData(
		usecase.MarketDataConfig{
			Symbol:        cfg.Symbol,
			NominalSeries: cfg.FRED.NominalSeries,
			RealSeries:    cfg.FRED.RealSeries,
			Location:      loc,
		},
		quotes, idx, series, calendar, news, sentiment, l, m,
	)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when no brokers
// are configured.
func ProvideKafkaProducer(cfg *config.Config, src config.Sources) (*pkgkafka.Producer, func(), error) {
	if !src.Kafka {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideDigestSinks lists the delivery channels. Telegram falls back to
// printing on stdout when its credentials are missing.
func ProvideDigestSinks(cfg *config.Config, src config.Sources, producer *pkgkafka.Producer, l *logger.Logger) []repository.DigestSink {
	var sinks []repository.DigestSink
	if src.Telegram {
		t := cfg.Telegram
		sinks = append(sinks, telegram.New(t.Token, t.ChatID, t.BaseURL, t.ParseMode, t.Timeout))
	} else {
		sinks = append(sinks, internalrepo.NewLogDigestSink(os.Stdout, l))
	}
	if producer != nil {
		sinks = append(sinks, internalrepo.NewKafkaDigestSink(producer, cfg.Kafka.Topic))
	}
	return sinks
}

// ProvideDigestService creates the digest use case.
func ProvideDigestService(cfg *config.Config, md *usecase.MarketData, sinks []repository.DigestSink, l *logger.Logger, m repository.Metrics) *usecase.DigestService {
	return usecase.NewDigestService(md, cfg.ZoneLabel, l, m, sinks...)
}

// ProvideHTTPHandler creates the dashboard handler.
func ProvideHTTPHandler(l *logger.Logger, md *usecase.MarketData, digest *usecase.DigestService) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, md, digest)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *logger.Logger, h xhttp.Handler, digest *usecase.DigestService) *server.App {
	return server.New(cfg, l, h, digest)
}
