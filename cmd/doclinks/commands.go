package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/doclinks/internal"
	"github.com/starford/doclinks/internal/apperr"
	"github.com/starford/doclinks/internal/models"
	"github.com/starford/doclinks/internal/report"
	pkgconfig "github.com/starford/doclinks/pkg/config"
)

// defaultConfigFiles are tried in the working directory when --config is not given.
var defaultConfigFiles = []string{".doclinks.yaml", ".doclinks.yml", ".doclinks.toml"}

type app struct {
	stdout io.Writer
	stderr io.Writer
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "doclinks",
		Usage:     "Find broken links and orphaned documents in a markdown collection",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or TOML config file",
				Sources: cli.EnvVars("DOCLINKS_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("DOCLINKS_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Color output: auto, always, never",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Report broken links; exits 1 when any are found",
				Flags:  append(scanFlags(), verboseFlag(), workersFlag()),
				Action: a.check,
			},
			{
				Name:   "stats",
				Usage:  "Show link statistics",
				Flags:  append(scanFlags(), workersFlag()),
				Action: a.stats,
			},
			{
				Name:  "orphans",
				Usage: "List documents no other document links to",
				Flags: append(scanFlags(), workersFlag(), &cli.BoolFlag{
					Name:  "strict",
					Usage: "Exit 1 when orphans are found",
				}),
				Action: a.orphans,
			},
			{
				Name:   "graph",
				Usage:  "Print the document link graph",
				Flags:  append(scanFlags(), workersFlag()),
				Action: a.graph,
			},
		},
	}
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "Root directory to scan",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "entry",
			Aliases: []string{"e"},
			Usage:   "Entry point document, exempt from orphan detection",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text or json",
		},
	}
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Show the markdown of each broken link",
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "Documents analyzed in parallel (0 = number of CPUs)",
	}
}

func (a *app) check(ctx context.Context, cmd *cli.Command) error {
	res, r, err := a.analyze(ctx, cmd)
	if err != nil {
		return err
	}
	if err := r.Check(res); err != nil {
		return err
	}
	if res.HasBroken() {
		return errFindings
	}
	return nil
}

func (a *app) stats(ctx context.Context, cmd *cli.Command) error {
	res, r, err := a.analyze(ctx, cmd)
	if err != nil {
		return err
	}
	return r.Stats(res)
}

func (a *app) orphans(ctx context.Context, cmd *cli.Command) error {
	res, r, err := a.analyze(ctx, cmd)
	if err != nil {
		return err
	}
	if err := r.Orphans(res); err != nil {
		return err
	}
	if cmd.Bool("strict") && len(res.Orphans) > 0 {
		return errFindings
	}
	return nil
}

func (a *app) graph(ctx context.Context, cmd *cli.Command) error {
	res, r, err := a.analyze(ctx, cmd)
	if err != nil {
		return err
	}
	return r.Graph(res)
}

// analyze resolves the effective configuration, runs the analysis and
// returns a renderer configured for the requested output.
func (a *app) analyze(ctx context.Context, cmd *cli.Command) (*models.AnalysisResult, *report.Renderer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	res, err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	r := report.New(a.stdout,
		report.WithFormat(cfg.Output.Format),
		report.WithColor(report.ShouldUseColor(cfg.Output.Color, a.stdout)),
		report.WithVerbose(cfg.Output.Verbose),
	)
	return res, r, nil
}

// loadConfig builds the configuration from defaults, an optional config
// file, and command-line flags, in increasing order of precedence.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	path := cmd.String("config")
	if path == "" {
		path = findDefaultConfig()
	}
	if path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config: %v", apperr.ErrConfiguration, err)
		}
	}

	if s := cmd.String("log-level"); s != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("%w: invalid log level %q", apperr.ErrConfiguration, s)
		}
		cfg.App.LogLevel = lvl
	}
	if cmd.IsSet("path") || cfg.Scan.Root == "" {
		cfg.Scan.Root = cmd.String("path")
	}
	if cmd.IsSet("entry") {
		cfg.Scan.EntryPoint = cmd.String("entry")
	}
	if cmd.IsSet("workers") {
		cfg.Scan.Workers = int(cmd.Int("workers"))
	}
	if s := cmd.String("format"); s != "" {
		cfg.Output.Format = s
	}
	if s := cmd.String("color"); s != "" {
		cfg.Output.Color = s
	}
	if cmd.Bool("no-color") {
		cfg.Output.Color = internal.ColorNever
	}
	if cmd.Bool("verbose") {
		cfg.Output.Verbose = true
	}

	return cfg, nil
}

func findDefaultConfig() string {
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
