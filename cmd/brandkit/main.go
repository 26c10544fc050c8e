// Package main provides the CLI entry point for brandkit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/brandkit/pkg/adapters/filesink"
	"github.com/user/brandkit/pkg/adapters/imagingcodec"
	"github.com/user/brandkit/pkg/adapters/logger"
	"github.com/user/brandkit/pkg/adapters/nullsink"
	"github.com/user/brandkit/pkg/adapters/osfilesystem"
	"github.com/user/brandkit/pkg/adapters/textrender"
	"github.com/user/brandkit/pkg/brandkit"
	"github.com/user/brandkit/pkg/config"
	"github.com/user/brandkit/pkg/orchestrator"
	"github.com/user/brandkit/pkg/palette"
	"github.com/user/brandkit/pkg/ports"
	"github.com/user/brandkit/pkg/stages/compose"
	"github.com/user/brandkit/pkg/stages/encode"
	"github.com/user/brandkit/pkg/stages/placement"
	"github.com/user/brandkit/pkg/stages/silhouette"
	"github.com/user/brandkit/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "brandkit",
		Usage:   l10n.T("Generate brand-compliant avatars and banners"),
		Version: version,
		Commands: []*cli.Command{
			avatarCommand(),
			bannerCommand(),
			batchCommand(),
			paletteCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags are shared by all image-producing commands.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"C"}, Usage: l10n.T("Path to a YAML configuration file")},
		&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: l10n.T("Subject cutout image (PNG with alpha)")},
		&cli.StringFlag{Name: "background", Aliases: []string{"b"}, Usage: l10n.T("Background palette color name")},
		&cli.StringFlag{Name: "caption", Usage: l10n.T("Caption text along the bottom edge")},
		&cli.BoolFlag{Name: "no-silhouette", Usage: l10n.T("Disable the drop silhouette")},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Output format (png or jpeg)")},
		&cli.IntFlag{Name: "byte-budget", Usage: l10n.T("Maximum output size in bytes (0 = unconstrained)")},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Save intermediate artifacts for inspection")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

func avatarCommand() *cli.Command {
	return &cli.Command{
		Name:  "avatar",
		Usage: l10n.T("Generate a square avatar image"),
		Flags: append(commonFlags(),
			&cli.IntFlag{Name: "size", Value: 512, Usage: l10n.T("Avatar edge length in pixels")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output image file path")},
		),
		Action: func(c *cli.Context) error {
			builder := brandkit.NewConfigBuilder().
				WithSize(c.Int("size"), c.Int("size"))
			return runOne(c, builder)
		},
	}
}

func bannerCommand() *cli.Command {
	return &cli.Command{
		Name:  "banner",
		Usage: l10n.T("Generate a social-network banner or post image"),
		Flags: append(commonFlags(),
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Value: "x-banner", Usage: l10n.T("Platform preset (x-banner or og-post)")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Canvas width override")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Canvas height override")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output image file path")},
		),
		Action: func(c *cli.Context) error {
			builder := brandkit.NewPresetConfigBuilder(brandkit.Preset(c.String("preset")))
			if c.Int("width") > 0 || c.Int("height") > 0 {
				settings := brandkit.GetPresetSettings(brandkit.Preset(c.String("preset")))
				width, height := settings.Width, settings.Height
				if c.Int("width") > 0 {
					width = c.Int("width")
				}
				if c.Int("height") > 0 {
					height = c.Int("height")
				}
				builder.WithSize(width, height)
			}
			return runOne(c, builder)
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: l10n.T("Generate avatars for every color and size combination"),
		Flags: append(commonFlags(),
			&cli.StringFlag{Name: "outdir", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output directory")},
			&cli.StringFlag{Name: "colors", Usage: l10n.T("Comma-separated color names (default: whole palette)")},
			&cli.StringFlag{Name: "sizes", Value: "256,512,1024", Usage: l10n.T("Comma-separated avatar sizes")},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Number of parallel workers (0 = CPU count)")},
		),
		Action: runBatch,
	}
}

func paletteCommand() *cli.Command {
	return &cli.Command{
		Name:  "palette",
		Usage: l10n.T("List brand colors and their shadow mapping"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"C"}, Usage: l10n.T("Path to a YAML configuration file")},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			p, table, err := cfg.BuildPalette()
			if err != nil {
				return err
			}
			names := p.Names()
			for _, name := range names {
				rgb, _ := p.Resolve(name)
				shadowName, _, _ := table.ShadowFor(p, name)
				fmt.Printf("%-10s #%02x%02x%02x  %s %s\n", name, rgb.R, rgb.G, rgb.B,
					l10n.T("shadow:"), shadowName)
			}
			warnings, err := palette.Validate(p, table)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Println(l10n.F("Warning: %s", w))
			}
			return nil
		},
	}
}

// runOne builds the environment for a single request and executes it.
func runOne(c *cli.Context, builder *brandkit.ConfigBuilder) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyOverrides(c, builder)

	env, err := setup(c, cfg)
	if err != nil {
		return err
	}

	orchConfig := builder.Build().ToOrchestratorConfig()
	orchConfig.SubjectPath = firstNonEmpty(c.String("subject"), cfg.SubjectPath)
	orchConfig.OutputPath = c.String("output")

	ctx, cancel := signalContext(env.log)
	defer cancel()

	result, err := env.orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}
	if result.BudgetExceeded {
		env.log.Warn(l10n.F("Output exceeds the byte budget: %d bytes", result.ByteLength))
	}
	env.log.Info(l10n.F("Output saved to %s", result.OutputPath))
	return nil
}

// runBatch fans one subject out over every color and size combination.
func runBatch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	env, err := setup(c, cfg)
	if err != nil {
		return err
	}

	colors := splitList(c.String("colors"))
	if len(colors) == 0 {
		colors = env.pal.Names()
	}
	sizes, err := parseSizes(c.String("sizes"))
	if err != nil {
		return err
	}

	var configs []orchestrator.Config
	for _, name := range colors {
		if _, err := env.pal.Resolve(name); err != nil {
			return err
		}
		for _, size := range sizes {
			builder := brandkit.NewConfigBuilder().
				WithSize(size, size).
				WithBackground(name)
			applyOverrides(c, builder)

			orchConfig := builder.Build().ToOrchestratorConfig()
			orchConfig.SubjectPath = firstNonEmpty(c.String("subject"), cfg.SubjectPath)
			orchConfig.OutputPath = fmt.Sprintf("%s/avatar-%s-%d.%s",
				c.String("outdir"), name, size, orchConfig.Format)
			configs = append(configs, orchConfig)
		}
	}

	ctx, cancel := signalContext(env.log)
	defer cancel()

	workers := c.Int("workers")
	if workers == 0 {
		workers = cfg.Workers
	}
	results := env.orch.RunBatch(ctx, configs, workers)

	builder := summarizer.NewBuilder().
		WithSubject(firstNonEmpty(c.String("subject"), cfg.SubjectPath)).
		WithSettings(summarizer.Settings{
			Colors:               colors,
			Sizes:                sizes,
			SilhouetteEnabled:    !c.Bool("no-silhouette"),
			SilhouetteMultiplier: cfg.SilhouetteMultiplier,
			Workers:              workers,
		})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			env.log.Error(l10n.F("Request %d failed: %s", r.Index, r.Err))
		}
		builder.AddOutput(summarizer.OutputInfo{
			Path:           configs[r.Index].OutputPath,
			Background:     configs[r.Index].Background,
			ShadowName:     r.Result.ShadowName,
			CanvasWidth:    configs[r.Index].CanvasWidth,
			CanvasHeight:   configs[r.Index].CanvasHeight,
			Format:         configs[r.Index].Format.String(),
			ByteLength:     r.Result.ByteLength,
			BudgetExceeded: r.Result.BudgetExceeded,
			Err:            r.Err,
		})
	}

	reportPath := fmt.Sprintf("%s/report.md", c.String("outdir"))
	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter())
	if err := writer.Write(reportPath, builder.Build()); err != nil {
		env.log.Warn(l10n.F("Failed to write report: %s", err))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(results))
	}
	env.log.Info(l10n.F("Generated %d images in %s", len(results), c.String("outdir")))
	return nil
}

// env holds the wired adapters for one CLI invocation.
type env struct {
	log  ports.Logger
	pal  *palette.Palette
	orch *orchestrator.Orchestrator
}

// setup wires the adapters and stages into an orchestrator.
func setup(c *cli.Context, cfg config.Config) (*env, error) {
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	pal, shadows, err := cfg.BuildPalette()
	if err != nil {
		return nil, err
	}

	fs := osfilesystem.New()
	codec := imagingcodec.New()
	text := textrender.New()

	var sink ports.DebugSink
	if c.Bool("debug") || cfg.Debug {
		debugDir := firstNonEmpty(c.String("debug-dir"), cfg.DebugDir)
		if err := fs.MkdirAll(debugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(debugDir, fs, codec)
	} else {
		sink = nullsink.New()
	}

	orch := orchestrator.New(
		silhouette.NewStage(pal, shadows, sink, log),
		placement.NewStage(),
		compose.NewStage(sink, log),
		encode.NewStage(codec, log),
		pal,
		codec,
		text,
		fs,
		sink,
		log,
	)

	return &env{log: log, pal: pal, orch: orch}, nil
}

// loadConfig reads the YAML config when --config is given, defaults otherwise.
func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Defaults(), nil
}

// applyOverrides copies CLI flag values over the builder's preset values.
func applyOverrides(c *cli.Context, builder *brandkit.ConfigBuilder) {
	if c.String("background") != "" {
		builder.WithBackground(c.String("background"))
	}
	if c.String("caption") != "" {
		builder.WithCaption(c.String("caption"))
	}
	if c.Bool("no-silhouette") {
		builder.WithSilhouette(false)
	}
	if c.String("format") != "" {
		if format, err := ports.ParseImageFormat(c.String("format")); err == nil {
			builder.WithFormat(format)
		}
	}
	if c.IsSet("byte-budget") {
		builder.WithByteBudget(c.Int("byte-budget"))
	}
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range splitList(s) {
		size, err := strconv.Atoi(part)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("invalid size %q", part)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
