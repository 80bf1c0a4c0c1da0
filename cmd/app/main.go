package main

import (
	"fmt"
	"os"

	"GoldBrief/internal/di"
	"GoldBrief/pkg/config"
	"GoldBrief/pkg/server"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dryRun     bool
)

// rootCmd is the base command for the GoldBrief CLI
var rootCmd = &cobra.Command{
	Use:   "goldbrief",
	Short: "XAUUSD morning dashboard and digest",
	Long: `GoldBrief aggregates gold spot price, a synthetic dollar index, US Treasury
yields, the economic calendar, news headlines and retail sentiment, and renders
them as a web dashboard or a one-shot Telegram digest.

API keys are read from the environment (or a .env file):
  TWELVEDATA_API_KEY, FINNHUB_API_KEY, FRED_API_KEY, TE_API_KEY, NEWSAPI_KEY,
  TELEGRAM_TOKEN, TELEGRAM_CHAT_ID, KAFKA_BROKERS, KAFKA_TOPIC
A missing key disables only that source.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := initApp()
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Serve(cmd.Context())
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Build the morning digest once and send it",
	Long: `Build the morning digest once and send it to Telegram (and Kafka when
brokers are configured).

Examples:
  goldbrief digest
  goldbrief digest --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := initApp()
		if err != nil {
			return err
		}
		defer cleanup()
		return app.RunDigest(cmd.Context(), dryRun)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	digestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest without sending it")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(digestCmd)
}

func initApp() (*server.App, func(), error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("app initialization failed: %w", err)
	}
	return app, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
