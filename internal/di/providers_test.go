package di

import (
	"testing"

	"GoldBrief/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.ApplyEnv(func(k string) string { return env[k] })
	return cfg
}

func TestProvidersFollowSources(t *testing.T) {
	cfg := loadConfig(t, nil)
	src := ProvideSources(cfg)

	assert.Empty(t, ProvideQuoteProviders(cfg, src))
	assert.Nil(t, ProvideSeriesSource(cfg, src))
	assert.Nil(t, ProvideCalendarSource(cfg, src))
	assert.Nil(t, ProvideNewsSource(cfg, src))
	assert.NotNil(t, ProvideSentimentSource(cfg, src))

	producer, cleanup, err := ProvideKafkaProducer(cfg, src)
	require.NoError(t, err)
	assert.Nil(t, producer)
	cleanup()
}

func TestProvidersWithCredentials(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"TWELVEDATA_API_KEY": "td",
		"FINNHUB_API_KEY":    "fh",
		"FRED_API_KEY":       "fred",
		"TE_API_KEY":         "te",
		"NEWSAPI_KEY":        "news",
	})
	src := ProvideSources(cfg)

	providers := ProvideQuoteProviders(cfg, src)
	require.Len(t, providers, 2)
	assert.Equal(t, "TwelveData", providers[0].Name())
	assert.Equal(t, "Finnhub (OANDA)", providers[1].Name())

	assert.NotNil(t, ProvideSeriesSource(cfg, src))
	assert.NotNil(t, ProvideCalendarSource(cfg, src))
	assert.NotNil(t, ProvideNewsSource(cfg, src))
}

func TestProvideSentimentSourceDisabled(t *testing.T) {
	cfg := loadConfig(t, nil)
	cfg.Myfxbook.Enabled = false

	assert.Nil(t, ProvideSentimentSource(cfg, ProvideSources(cfg)))
}
