package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/ShopScope/internal/analyzer"
	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/internal/types"
	"github.com/IshaanNene/ShopScope/pkg/shopscope"
)

// session holds what every analyzing command needs.
type session struct {
	*shopscope.Client
	logger *slog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	client, err := shopscope.NewClient(shopscope.WithConfig(cfg), shopscope.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &session{Client: client, logger: logger}, nil
}

// output returns the destination for results and a func to close it.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outputPath == "" || outputPath == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// analyzeURL fetches rawURL once and applies each named analyzer to it.
// Unknown names are rejected before the fetch.
func (s *session) analyzeURL(ctx context.Context, rawURL string, names []string) ([]*report.Result, error) {
	for _, name := range names {
		if _, err := s.Registry().Get(name); err != nil {
			s.Metrics().InvalidSelected.Add(1)
			return nil, err
		}
	}
	page, err := s.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, page, names...)
}

func (s *session) write(cmd *cobra.Command, results []*report.Result) error {
	out, closeOut, err := output(cmd)
	if err != nil {
		return err
	}
	writer, err := report.NewWriter(s.Config().Output.Format, out)
	if err != nil {
		closeOut()
		return err
	}
	if err := writer.Write(results...); err != nil {
		closeOut()
		return fmt.Errorf("write report: %w", err)
	}
	return closeOut()
}

// analyzeCmd creates the "analyze" subcommand.
func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Fetch a page and run one analyzer on it",
		Long: `Fetch the page at the given URL and run one analyzer on it.

Select the analyzer by name (see "shopscope analyzers") or by its title.
When the analyzer finds nothing, "No data found." is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzerName, "analyzer", "a", "", "analyzer name (default from config: popularity)")
	addOutputFlags(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.analyzeURL(cmd.Context(), args[0], []string{s.Config().Analysis.Default})
	if err != nil {
		return explain(err, s.Registry())
	}
	return s.write(cmd, results)
}

// reportCmd creates the "report" subcommand.
func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [url]",
		Short: "Fetch a page once and run every analyzer on it",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}

	addOutputFlags(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.analyzeURL(cmd.Context(), args[0], s.Registry().Names())
	if err != nil {
		return explain(err, s.Registry())
	}
	return s.write(cmd, results)
}

// analyzersCmd creates the "analyzers" subcommand.
func analyzersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyzers",
		Short: "List the available analyzers",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Fetcher().Close()

			out := cmd.OutOrStdout()
			for _, a := range s.Analyzers() {
				marker := " "
				if a.Name() == s.Config().Analysis.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-16s %s\n", marker, a.Name(), a.Title())
			}
			return nil
		},
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: "+strings.Join(report.Formats, ", "))
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "override the User-Agent header")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "fetch timeout (default from config: 30s)")
	cmd.Flags().IntVarP(&topN, "top", "n", 0, "number of entries in rankings (default from config: 10)")
}

// explain turns pipeline errors into messages for the terminal.
func explain(err error, registry *analyzer.Registry) error {
	var fe *types.FetchError
	var invalid *types.InvalidSelectionError
	switch {
	case errors.As(err, &invalid):
		return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.Names(), ", "))
	case errors.As(err, &fe):
		return fmt.Errorf("could not fetch page: %w", err)
	default:
		return err
	}
}
