// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"runtime"
	"sync"

	"github.com/ideamans/go-l10n"

	"github.com/user/brandkit/pkg/palette"
	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
	"github.com/user/brandkit/pkg/stages/compose"
)

// Config contains all configuration for one composition request.
// A Config is consumed by exactly one Run; nothing in it is shared or
// mutated afterward, which is what makes RunBatch safe without locking.
type Config struct {
	// Input
	SubjectPath string // subject cutout file; used when SubjectData is nil
	SubjectData []byte // subject cutout bytes; takes precedence over SubjectPath
	OutputPath  string // destination file; empty skips persistence

	// Canvas
	CanvasWidth  int
	CanvasHeight int
	Background   string // palette color name

	// Silhouette
	SilhouetteEnabled    bool
	SilhouetteMultiplier float64
	OffsetBands          []pipeline.OffsetBand

	// Caption
	Caption       string
	CaptionHeight int
	CaptionSize   float64
	CaptionFont   string
	CaptionColor  color.Color

	// Encoding
	Format            ports.ImageFormat
	ByteBudget        int
	JPEGQuality       int
	JPEGStrictQuality int
	PNGLevel          int
	PNGStrictLevel    int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  512,
		CanvasHeight: 512,
		Background:   "navy",

		SilhouetteEnabled:    true,
		SilhouetteMultiplier: 1.2,
		OffsetBands:          pipeline.DefaultOffsetBands(),

		CaptionHeight: 48,
		CaptionSize:   18,
		CaptionColor:  color.White,

		Format:            ports.FormatPNG,
		JPEGQuality:       90,
		JPEGStrictQuality: 60,
		PNGLevel:          0,
		PNGStrictLevel:    9,
	}
}

// RunResult contains the outcome of one composition request.
type RunResult struct {
	Data           []byte
	Format         ports.ImageFormat
	ByteLength     int
	BudgetExceeded bool
	OutputPath     string

	CanvasWidth  int
	CanvasHeight int
	Background   string
	ShadowName   string
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	silhouetteStage pipeline.Stage[pipeline.SilhouetteInput, pipeline.SilhouetteResult]
	placementStage  pipeline.Stage[pipeline.PlacementInput, pipeline.Placement]
	composeStage    pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	encodeStage     pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	palette         *palette.Palette
	codec           ports.Codec
	text            ports.TextRenderer
	fs              ports.FileSystem
	sink            ports.DebugSink
	logger          ports.Logger
}

// New creates a new Orchestrator.
func New(
	silhouetteStage pipeline.Stage[pipeline.SilhouetteInput, pipeline.SilhouetteResult],
	placementStage pipeline.Stage[pipeline.PlacementInput, pipeline.Placement],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	p *palette.Palette,
	codec ports.Codec,
	text ports.TextRenderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		silhouetteStage: silhouetteStage,
		placementStage:  placementStage,
		composeStage:    composeStage,
		encodeStage:     encodeStage,
		palette:         p,
		codec:           codec,
		text:            text,
		fs:              fs,
		sink:            sink,
		logger:          logger,
	}
}

// Run executes the complete composition pipeline for one request.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.F("Composing %dx%d image on %s", config.CanvasWidth, config.CanvasHeight, config.Background))

	// 1. Resolve the background color
	background, err := o.palette.Resolve(config.Background)
	if err != nil {
		o.logger.Error(l10n.F("Failed to resolve background color: %s", err))
		return RunResult{}, fmt.Errorf("resolve background: %w", err)
	}

	// 2. Load the subject cutout
	subject := config.SubjectData
	if subject == nil && config.SubjectPath != "" {
		subject, err = o.fs.ReadFile(config.SubjectPath)
		if err != nil {
			o.logger.Error(l10n.F("Failed to read subject: %s", err))
			return RunResult{}, fmt.Errorf("read subject: %w", err)
		}
	}

	layers := make([]pipeline.Layer, 0, 3)

	// 3. Plan and build the drop silhouette
	var shadowName string
	if config.SilhouetteEnabled && subject != nil {
		placement, err := o.placementStage.Execute(ctx, o.buildPlacementInput(config))
		if err != nil {
			o.logger.Error(l10n.F("Failed to plan placement: %s", err))
			return RunResult{}, fmt.Errorf("placement stage: %w", err)
		}
		o.logger.Debug("Silhouette %dpx at (%d,%d), offset %d",
			placement.SilhouetteSize, placement.Placed.X, placement.Placed.Y, placement.Offset)

		if o.sink.Enabled() {
			if data, err := json.MarshalIndent(placement, "", "  "); err == nil {
				o.sink.SavePlacementJSON(data)
			}
		}

		sized, err := o.codec.DecodeCover(subject, placement.SilhouetteSize, placement.SilhouetteSize)
		if err != nil {
			o.logger.Error(l10n.F("Failed to decode subject: %s", err))
			return RunResult{}, fmt.Errorf("decode subject for silhouette: %w", err)
		}

		silhouette, err := o.silhouetteStage.Execute(ctx, pipeline.SilhouetteInput{
			Subject:    sized,
			Background: config.Background,
		})
		if err != nil {
			o.logger.Error(l10n.F("Failed to build silhouette: %s", err))
			return RunResult{}, fmt.Errorf("silhouette stage: %w", err)
		}
		shadowName = silhouette.ShadowName

		if visible := compose.Crop(silhouette.Image, placement.Visible); visible != nil {
			layers = append(layers, pipeline.Layer{
				Image: visible,
				Left:  placement.Position.X,
				Top:   placement.Position.Y,
			})
		}
	}

	// 4. The subject itself, cover-fit to the full canvas
	if subject != nil {
		fitted, err := o.codec.DecodeCover(subject, config.CanvasWidth, config.CanvasHeight)
		if err != nil {
			o.logger.Error(l10n.F("Failed to decode subject: %s", err))
			return RunResult{}, fmt.Errorf("decode subject: %w", err)
		}
		layers = append(layers, pipeline.Layer{Image: fitted})
	}

	// 5. Optional caption, bottom-anchored
	if config.Caption != "" {
		captionLayer, err := o.text.RenderCaption(config.Caption, config.CanvasWidth, config.CaptionHeight, ports.TextStyle{
			FontSize: config.CaptionSize,
			FontPath: config.CaptionFont,
			Color:    config.CaptionColor,
			Align:    ports.AlignCenter,
		})
		if err != nil {
			o.logger.Error(l10n.F("Failed to render caption: %s", err))
			return RunResult{}, fmt.Errorf("render caption: %w", err)
		}
		layers = append(layers, pipeline.Layer{
			Image: captionLayer,
			Top:   config.CanvasHeight - config.CaptionHeight,
		})
	}

	// 6. Composite everything
	composed, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Width:      config.CanvasWidth,
		Height:     config.CanvasHeight,
		Background: background,
		Layers:     layers,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to composite: %s", err))
		return RunResult{}, fmt.Errorf("compose stage: %w", err)
	}

	// 7. Encode under the byte budget
	encoded, err := o.encodeStage.Execute(ctx, o.buildEncodeInput(config, composed))
	if err != nil {
		o.logger.Error(l10n.F("Failed to encode: %s", err))
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	o.logger.Info(l10n.F("Encoded %s output: %d bytes", encoded.Format, encoded.ByteLength))

	if o.sink.Enabled() {
		o.sink.SaveEncoded(encoded.Data, encoded.Format)
	}

	// 8. Persist
	if config.OutputPath != "" {
		if err := o.fs.WriteFile(config.OutputPath, encoded.Data); err != nil {
			o.logger.Error(l10n.F("Failed to write output: %s", err))
			return RunResult{}, fmt.Errorf("write output: %w", err)
		}
		o.logger.Info(l10n.F("Wrote %s", config.OutputPath))
	}

	return RunResult{
		Data:           encoded.Data,
		Format:         encoded.Format,
		ByteLength:     encoded.ByteLength,
		BudgetExceeded: encoded.BudgetExceeded,
		OutputPath:     config.OutputPath,
		CanvasWidth:    config.CanvasWidth,
		CanvasHeight:   config.CanvasHeight,
		Background:     config.Background,
		ShadowName:     shadowName,
	}, nil
}

// BatchResult pairs one request's outcome with its index in the batch.
type BatchResult struct {
	Index  int
	Result RunResult
	Err    error
}

// RunBatch executes many independent requests across a worker pool.
// Each request owns its buffers, so no locking is needed. A failed request
// is reported in its BatchResult and does not stop the others.
func (o *Orchestrator) RunBatch(ctx context.Context, configs []Config, numWorkers int) []BatchResult {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	o.logger.Info(l10n.F("Running %d requests with %d workers", len(configs), numWorkers))

	jobs := make(chan int, len(configs))
	results := make([]BatchResult, len(configs))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					results[idx] = BatchResult{Index: idx, Err: ctx.Err()}
					continue
				default:
				}
				result, err := o.Run(ctx, configs[idx])
				results[idx] = BatchResult{Index: idx, Result: result, Err: err}
			}
		}()
	}

	for i := range configs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (o *Orchestrator) buildPlacementInput(config Config) pipeline.PlacementInput {
	return pipeline.PlacementInput{
		CanvasWidth:          config.CanvasWidth,
		CanvasHeight:         config.CanvasHeight,
		SilhouetteMultiplier: config.SilhouetteMultiplier,
		Bands:                config.OffsetBands,
	}
}

func (o *Orchestrator) buildEncodeInput(config Config, composed pipeline.ComposeResult) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		Image:             composed.Image,
		Format:            config.Format,
		ByteBudget:        config.ByteBudget,
		JPEGQuality:       config.JPEGQuality,
		JPEGStrictQuality: config.JPEGStrictQuality,
		PNGLevel:          config.PNGLevel,
		PNGStrictLevel:    config.PNGStrictLevel,
	}
}
