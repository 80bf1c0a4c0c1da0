package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultNewsQuery is the topical query sent to the news search provider.
const DefaultNewsQuery = `gold OR XAUUSD OR "U.S. dollar" OR DXY OR "Treasury yields" OR "Federal Reserve" OR geopolitics OR Middle East OR Israel OR Ukraine OR China`

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required,oneof=development staging production"`
	Timezone    string `yaml:"timezone" default:"Africa/Lagos" validate:"required"`
	ZoneLabel   string `yaml:"zone_label" default:"WAT"`
	Symbol      string `yaml:"symbol" default:"XAU/USD" validate:"required"`

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr" validate:"required"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"3m"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`

	TwelveData struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url" default:"https://api.twelvedata.com" validate:"url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"twelvedata"`
	Finnhub struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url" default:"https://finnhub.io/api/v1" validate:"url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"finnhub"`
	FRED struct {
		APIKey           string        `yaml:"api_key"`
		BaseURL          string        `yaml:"base_url" default:"https://api.stlouisfed.org/fred" validate:"url"`
		ObservationStart string        `yaml:"observation_start" default:"2020-01-01" validate:"datetime=2006-01-02"`
		NominalSeries    string        `yaml:"nominal_series" default:"DGS10" validate:"required"`
		RealSeries       string        `yaml:"real_series" default:"DFII10" validate:"required"`
		Timeout          time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"fred"`
	TradingEconomics struct {
		APIKey     string        `yaml:"api_key"`
		BaseURL    string        `yaml:"base_url" default:"https://api.tradingeconomics.com" validate:"url"`
		Countries  []string      `yaml:"countries" default:"[\"United States\",\"Euro Area\",\"China\",\"Japan\",\"United Kingdom\"]" validate:"min=1"`
		Importance []int         `yaml:"importance" default:"[2,3]" validate:"min=1,dive,gte=1,lte=3"`
		Timeout    time.Duration `yaml:"timeout" default:"20s"`
	} `yaml:"tradingeconomics"`
	NewsAPI struct {
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url" default:"https://newsapi.org/v2" validate:"url"`
		Query    string        `yaml:"query"`
		Language string        `yaml:"language" default:"en"`
		PageSize int           `yaml:"page_size" default:"20" validate:"gte=1,lte=100"`
		Timeout  time.Duration `yaml:"timeout" default:"20s"`
	} `yaml:"newsapi"`
	Myfxbook struct {
		Enabled   bool          `yaml:"enabled" default:"true"`
		URL       string        `yaml:"url" default:"https://www.myfxbook.com/community/outlook/XAUUSD" validate:"url"`
		UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0"`
		Timeout   time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"myfxbook"`
	Telegram struct {
		Token     string        `yaml:"token"`
		ChatID    string        `yaml:"chat_id"`
		BaseURL   string        `yaml:"base_url" default:"https://api.telegram.org" validate:"url"`
		ParseMode string        `yaml:"parse_mode" default:"Markdown"`
		Timeout   time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"telegram"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"goldbrief.digest"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int           `yaml:"max_attempts" default:"1"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
}

// Sources lists which upstream providers and delivery channels are usable.
// It is resolved once from the loaded configuration.
type Sources struct {
	TwelveData bool
	Finnhub    bool
	FRED       bool
	Calendar   bool
	News       bool
	Sentiment  bool
	Telegram   bool
	Kafka      bool
}

// Sources resolves the enabled source set from credentials and switches.
func (c *Config) Sources() Sources {
	return Sources{
		TwelveData: c.TwelveData.APIKey != "",
		Finnhub:    c.Finnhub.APIKey != "",
		FRED:       c.FRED.APIKey != "",
		Calendar:   c.TradingEconomics.APIKey != "",
		News:       c.NewsAPI.APIKey != "",
		Sentiment:  c.Myfxbook.Enabled,
		Telegram:   c.Telegram.Token != "" && c.Telegram.ChatID != "",
		Kafka:      len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != "",
	}
}

// Location returns the civil timezone used for day windows and timestamps.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error: every setting has a default and the
// credentials normally come from the environment.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if c.NewsAPI.Query == "" {
		c.NewsAPI.Query = DefaultNewsQuery
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Variables found in a .env file in the working directory are loaded first;
// variables already set in the process environment win.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.ApplyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides credentials and delivery settings from getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("TWELVEDATA_API_KEY"); v != "" {
		c.TwelveData.APIKey = v
	}
	if v := getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := getenv("TE_API_KEY"); v != "" {
		c.TradingEconomics.APIKey = v
	}
	if v := getenv("NEWSAPI_KEY"); v != "" {
		c.NewsAPI.APIKey = v
	}
	if v := getenv("TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
