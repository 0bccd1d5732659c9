package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/wikiphilosophy/internal/config"
	"github.com/nao1215/wikiphilosophy/internal/crawler"
	"github.com/nao1215/wikiphilosophy/internal/log"
	"github.com/nao1215/wikiphilosophy/internal/model"
	"github.com/nao1215/wikiphilosophy/internal/report"
	"github.com/nao1215/wikiphilosophy/internal/selector"
	"github.com/nao1215/wikiphilosophy/internal/transport"
	"github.com/spf13/cobra"
)

// errInterrupted is returned when the walk is cancelled by a signal.
var errInterrupted = errors.New("interrupted")

// fetchFailure is the top-level error for a page that could not be loaded.
type fetchFailure struct {
	err error
}

func (f *fetchFailure) Error() string {
	return "Error while fetching Wikipedia data: " + f.err.Error()
}

func (f *fetchFailure) Unwrap() error {
	return f.err
}

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [article]",
		Short: "Follow first links from an article until Philosophy is reached",
		Long: `Run starts at the given article and follows the first valid link of each
page. A link is valid when it is an internal link that is not inside
parentheses and not in italics.

The walk ends with "Success" when the selected link is the target article,
and with "Failure" when a page has no valid link or a page repeats.

The article is either a title under --site or an absolute URL. The default
is Java_(programming_language).

Examples:
  # Start at the default article
  philosophy run

  # Start at a title, spaces allowed
  philosophy run "Rubber duck debugging"

  # Start at a URL on another language edition
  philosophy run --site https://de.wikipedia.org --target Philosophie https://de.wikipedia.org/wiki/Go_(Programmiersprache)

  # Write a Markdown report
  philosophy run -m -o report.md Coffee`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConjectureCmd,
	}
	addRunFlags(cmd)
	return cmd
}

// addRunFlags registers the flags shared by the root and run commands.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current, XDG config or home directory)")

	cmd.Flags().String("site", config.DefaultSite,
		"Base URL of the encyclopedia; links to other hosts are external")
	cmd.Flags().String("target", config.DefaultTarget,
		"Article that ends the walk successfully (title or URL)")

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().Duration("delay", config.DefaultDelay,
		"Pause between article fetches")
	cmd.Flags().Int("max-hops", 0,
		"Maximum number of articles to fetch (0 = unlimited)")

	cmd.Flags().String("proxy", "",
		"Proxy URL (socks5://, socks5h://, http:// or https://)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header for requests")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// runConjectureCmd executes the run command.
func runConjectureCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runConjecture(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file and the
// flags the user set, in increasing precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit config path must exist; the default locations are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("site") {
		if cfg.Site, err = flags.GetString("site"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("target") {
		if cfg.Target, err = flags.GetString("target"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("delay") {
		if cfg.Delay, err = flags.GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-hops") {
		if cfg.MaxHops, err = flags.GetInt("max-hops"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.Start = args[0]
	}

	return cfg, nil
}

// runConjecture wires the components together, runs the walk and writes
// the report. Progress lines go to progress so that stdout stays clean for
// JSON and Markdown output.
func runConjecture(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, progress io.Writer) error {
	start, err := cfg.StartURL()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	target, err := cfg.TargetURL()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	client, err := transport.NewClient(cfg.ProxyAddress,
		transport.WithTimeout(cfg.Timeout),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithHeaders(cfg.Headers),
		transport.WithCookie(cfg.Cookie),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	sel, err := selector.New(cfg.Site, selector.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	fetcher := crawler.NewHTTPFetcher(client.HTTPClient(),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithFetcherParagraphSelector(cfg.ParagraphSelector),
		crawler.WithFetcherLogger(logger),
	)

	hops := 0
	walker := crawler.NewWalker(fetcher, sel,
		crawler.WithTarget(target),
		crawler.WithMaxHops(cfg.MaxHops),
		crawler.WithDelay(cfg.Delay),
		crawler.WithWalkerLogger(logger),
		crawler.WithObserver(func(h model.Hop) {
			hops++
			fmt.Fprintf(progress, "[%d] %s\n", hops, h.URL)
		}),
	)

	logger.Info("starting walk",
		"start", start,
		"target", target,
		"proxy", client.ProxyAddress(),
		"maxHops", cfg.MaxHops,
	)

	run, walkErr := walker.TestConjecture(ctx, start)
	if run == nil {
		return walkErr
	}

	if walkErr != nil {
		var fetchErr *crawler.FetchError
		switch {
		case ctx.Err() != nil:
			walkErr = errInterrupted
		case errors.As(walkErr, &fetchErr):
			walkErr = &fetchFailure{err: walkErr}
		}
	}

	// Partial runs are reported too so the user sees how far the walk got.
	if err := outputReport(cfg, run, stdout); err != nil {
		logger.Error("report failed", "error", err)
		if walkErr == nil {
			return err
		}
	}

	return walkErr
}

// outputReport writes the run in the requested format.
func outputReport(cfg *config.Config, run *model.Run, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(run)
	return err
}
