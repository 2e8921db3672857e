package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/vidmeta/pkg/config"
	"github.com/user/vidmeta/pkg/logger"
)

var (
	serviceURL string
	logLevel   string
)

// errCycleFailed is returned after a failed cycle has already been printed.
var errCycleFailed = errors.New("submission failed")

var rootCmd = &cobra.Command{
	Use:           "vidmeta",
	Short:         "Fetch YouTube and TikTok video metadata from a scrape service",
	Long:          `vidmeta validates a video URL against the chosen platform, asks the scrape service for its metadata and shows the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", "", "Scrape service base URL (overrides SCRAPE_SERVICE_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if serviceURL != "" {
		cfg.ScrapeServiceBaseURL = serviceURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(os.Stderr, cfg.LogLevel)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCycleFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
