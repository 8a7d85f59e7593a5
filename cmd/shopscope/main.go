package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/ShopScope/internal/config"
)

var (
	cfgFile      string
	verbose      bool
	analyzerName string
	outputFormat string
	outputPath   string
	userAgent    string
	timeout      time.Duration
	topN         int
	port         int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shopscope",
		Short: "ShopScope: storefront page analyzer",
		Long: `ShopScope fetches a shop page and summarizes it.

Analyzers:
  • Product popularity, price range histogram and best sellers
  • Most common words, word count and keyword density
  • Meta tags, headings, links and images
  • Page load time

Results are printed as text with terminal charts, or as Markdown, JSON,
JSON Lines, YAML or CSV. "shell" keeps a page open for interactive use
and "serve" exposes the analyzers over HTTP with a browser dashboard.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(analyzersCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// loadConfig reads the config file, applies flag overrides and validates.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if analyzerName != "" {
		cfg.Analysis.Default = analyzerName
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if userAgent != "" {
		cfg.Fetcher.UserAgent = userAgent
	}
	if timeout > 0 {
		cfg.Fetcher.Timeout = timeout
	}
	if topN > 0 {
		cfg.Analysis.TopN = topN
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ShopScope %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
