// Package repl implements the interactive ShopScope shell.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/IshaanNene/ShopScope/internal/report"
	"github.com/IshaanNene/ShopScope/internal/types"
	"github.com/IshaanNene/ShopScope/pkg/shopscope"
)

const prompt = "shopscope> "

// REPL reads commands line by line and runs analyzers on the open page.
type REPL struct {
	client *shopscope.Client
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer
	format string
	page   *types.Page
}

// New creates a shell reading from in and writing to out.
func New(client *shopscope.Client, in io.Reader, out io.Writer, logger *slog.Logger) *REPL {
	return &REPL{
		client: client,
		logger: logger.With("component", "repl"),
		in:     bufio.NewScanner(in),
		out:    out,
		format: client.Config().Output.Format,
	}
}

// Run loops until "exit", end of input, or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "ShopScope interactive shell")
	fmt.Fprintln(r.out, "Type 'help' for available commands, 'exit' to quit.")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(r.out, prompt)
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		parts := strings.Fields(r.in.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			r.printHelp()
		case "exit", "quit", "q":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "open", "fetch":
			r.cmdOpen(ctx, args)
		case "analyze", "a":
			r.cmdAnalyze(ctx, args)
		case "report":
			r.cmdReport(ctx)
		case "list", "ls":
			r.cmdList()
		case "format":
			r.cmdFormat(args)
		case "status":
			r.cmdStatus()
		case "stats":
			r.cmdStats()
		default:
			fmt.Fprintf(r.out, "Unknown command: %s. Type 'help' for available commands.\n", cmd)
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
Available Commands:
  open <url>            Fetch a page and keep it open
  analyze <name|title>  Run an analyzer on the open page
  report                Run every analyzer on the open page
  list                  List the analyzers

  format <fmt>          Set the output format (`+strings.Join(report.Formats, ", ")+`)
  status                Show the open page
  stats                 Show counters

  help                  Show this help
  exit                  Exit the shell`)
}

func (r *REPL) cmdOpen(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: open <url>")
		return
	}
	page, err := r.client.Fetch(ctx, args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.page = page
	fmt.Fprintf(r.out, "Opened %s (%d bytes in %s)\n", page.URL, page.Size(), page.FetchDuration)
}

func (r *REPL) cmdAnalyze(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, "Usage: analyze <name|title>")
		return
	}
	// Titles contain spaces, so the rest of the line is one selection.
	r.run(ctx, strings.Join(args, " "))
}

func (r *REPL) cmdReport(ctx context.Context) {
	r.run(ctx, r.client.Registry().Names()...)
}

func (r *REPL) run(ctx context.Context, names ...string) {
	if r.page == nil {
		fmt.Fprintln(r.out, "No page open. Use 'open <url>' first.")
		return
	}
	results, err := r.client.Run(ctx, r.page, names...)
	if err != nil {
		var invalid *types.InvalidSelectionError
		if errors.As(err, &invalid) {
			fmt.Fprintf(r.out, "Error: %v (try 'list')\n", err)
			return
		}
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	writer, err := report.NewWriter(r.format, r.out)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if err := writer.Write(results...); err != nil {
		r.logger.Error("failed to write results", "error", err)
	}
}

func (r *REPL) cmdList() {
	for _, a := range r.client.Analyzers() {
		fmt.Fprintf(r.out, "  %-16s %s\n", a.Name(), a.Title())
	}
}

func (r *REPL) cmdFormat(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "Format: %s\n", r.format)
		return
	}
	if _, err := report.NewWriter(args[0], io.Discard); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.format = args[0]
	fmt.Fprintf(r.out, "  Output format set to %s\n", r.format)
}

func (r *REPL) cmdStatus() {
	if r.page == nil {
		fmt.Fprintln(r.out, "No page open.")
		return
	}
	fmt.Fprintf(r.out, "  URL:          %s\n", r.page.URL)
	fmt.Fprintf(r.out, "  Status:       %d\n", r.page.StatusCode)
	fmt.Fprintf(r.out, "  Content-Type: %s\n", r.page.ContentType)
	fmt.Fprintf(r.out, "  Size:         %d bytes\n", r.page.Size())
	fmt.Fprintf(r.out, "  Fetched in:   %s\n", r.page.FetchDuration)
}

func (r *REPL) cmdStats() {
	snap := r.client.Metrics().Snapshot()
	for _, k := range snapshotKeys {
		fmt.Fprintf(r.out, "  %-20s %v\n", k, snap[k])
	}
}

var snapshotKeys = []string{
	"pages_fetched",
	"fetches_failed",
	"bytes_downloaded",
	"analyses_run",
	"analyses_no_data",
	"analyses_failed",
	"invalid_selections",
}
