package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/snapsearch"
	"github.com/fwojciec/snapsearch/fs"
	"github.com/fwojciec/snapsearch/goquery"
	"github.com/fwojciec/snapsearch/htmltomarkdown"
	snaphttp "github.com/fwojciec/snapsearch/http"
	"github.com/fwojciec/snapsearch/rod"
	"github.com/fwojciec/snapsearch/search"
	snapslog "github.com/fwojciec/snapsearch/slog"
	"github.com/fwojciec/snapsearch/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher chosen from the snapshot base.
	// Used for end-to-end testing.
	Fetcher snapsearch.Fetcher

	// Converter overrides the Markdown converter.
	Converter snapsearch.Converter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("snapsearch"),
		kong.Description("Search listings across paginated snapshot sets"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'snapsearch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set SNAPSEARCH_CONFIG to use a different region catalogue")
		return err
	}
	if cli.Base != "" {
		cfg.Base = cli.Base
	}
	cfg.Base = snapsearch.ResolveBase(cfg.Base)

	cmd := strings.Fields(kongCtx.Command())[0]
	deps.Config = cfg
	deps.Logger = newLogger(stderr, logLevel(cmd, cli.Verbose))

	if cmd == "search" || cmd == "serve" {
		maxPages := cfg.MaxPages
		if cmd == "search" && cli.Search.MaxPages > 0 {
			maxPages = cli.Search.MaxPages
		}

		fetcher := m.Fetcher
		if fetcher == nil {
			f, err := newFetcher(cfg.Base, cli.Browser)
			if err != nil {
				return err
			}
			fetcher = f
		}
		defer fetcher.Close()

		var extractor snapsearch.RecordExtractor = goquery.NewExtractor()
		if cli.Verbose {
			fetcher = snapslog.NewLoggingFetcher(fetcher, deps.Logger)
			extractor = snapslog.NewLoggingExtractor(extractor, deps.Logger)
		}

		walker := &search.Walker{
			Fetcher:   fetcher,
			Extractor: extractor,
			Base:      cfg.Base,
			MaxPages:  maxPages,
		}
		if cmd == "search" && cli.Search.Rate > 0 {
			walker.Limiter = search.NewRegionLimiter(cli.Search.Rate)
		}
		if cli.Verbose {
			walker.Progress = logProgress(deps.Logger)
		}

		aggregator := search.NewAggregator(cfg.Regions, walker)
		deps.Searcher = aggregator
		if cli.Verbose {
			deps.Searcher = snapslog.NewLoggingSearcher(aggregator, deps.Logger)
		}
		deps.Converter = m.Converter
		if deps.Converter == nil {
			deps.Converter = htmltomarkdown.NewConverter()
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the region catalogue at path, or returns the built-in
// catalogue when path is empty.
func loadConfig(path string) (*snapsearch.Config, error) {
	if path == "" {
		return snapsearch.DefaultConfig(), nil
	}
	return yaml.LoadConfig(path)
}

// newFetcher picks the HTTP fetcher for http(s) bases and the filesystem
// fetcher for everything else. With browser set, http(s) pages are rendered
// in headless Chrome instead.
func newFetcher(base string, browser bool) (snapsearch.Fetcher, error) {
	remote := strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
	switch {
	case browser && !remote:
		return nil, snapsearch.Errorf(snapsearch.EINVALID, "--browser needs an http(s) base, got %q", base)
	case browser:
		return rod.NewFetcher()
	case remote:
		return snaphttp.NewFetcher(), nil
	default:
		return fs.NewFetcher(), nil
	}
}

// logLevel keeps one-shot commands quiet unless verbose. The server logs
// its access log at info.
func logLevel(cmd string, verbose bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case cmd == "serve":
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logProgress logs walker events at debug level.
func logProgress(logger *slog.Logger) search.ProgressFunc {
	return func(e search.ProgressEvent) {
		switch e.Type {
		case search.ProgressRegionStarted:
			logger.Debug("region started", "region", e.Region.Slug)
		case search.ProgressPageMatched:
			logger.Debug("page", "region", e.Region.Slug, "page", e.Page, "records", e.Records, "matched", e.Matched)
		case search.ProgressRegionStopped:
			logger.Debug("region stopped", "region", e.Region.Slug, "requests", e.Page, "matched", e.Matched, "stop", e.Stop.String(), "err", e.Error)
		case search.ProgressFinished:
			logger.Debug("search finished", "matched", e.Matched)
		}
	}
}
