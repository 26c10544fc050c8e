package brandkit

import (
	"context"

	"github.com/user/brandkit/pkg/adapters/imagingcodec"
	"github.com/user/brandkit/pkg/adapters/logger"
	"github.com/user/brandkit/pkg/adapters/nullsink"
	"github.com/user/brandkit/pkg/adapters/osfilesystem"
	"github.com/user/brandkit/pkg/adapters/textrender"
	"github.com/user/brandkit/pkg/config"
	"github.com/user/brandkit/pkg/orchestrator"
	"github.com/user/brandkit/pkg/ports"
	"github.com/user/brandkit/pkg/stages/compose"
	"github.com/user/brandkit/pkg/stages/encode"
	"github.com/user/brandkit/pkg/stages/placement"
	"github.com/user/brandkit/pkg/stages/silhouette"
)

// New wires the default adapters and the built-in palette into a
// ready-to-use Orchestrator. Pass nil for log to discard output.
func New(log ports.Logger) (*orchestrator.Orchestrator, error) {
	if log == nil {
		log = logger.NewNoop()
	}

	pal, shadows, err := config.Defaults().BuildPalette()
	if err != nil {
		return nil, err
	}

	codec := imagingcodec.New()
	sink := nullsink.New()

	return orchestrator.New(
		silhouette.NewStage(pal, shadows, sink, log),
		placement.NewStage(),
		compose.NewStage(sink, log),
		encode.NewStage(codec, log),
		pal,
		codec,
		textrender.New(),
		osfilesystem.New(),
		sink,
		log,
	), nil
}

// Generate runs one composition request with the default wiring. The
// subject is the raw bytes of a cutout image; it may be nil for a plain
// colored canvas.
func Generate(ctx context.Context, cfg Config, subject []byte) (orchestrator.RunResult, error) {
	orch, err := New(nil)
	if err != nil {
		return orchestrator.RunResult{}, err
	}

	orchConfig := cfg.ToOrchestratorConfig()
	orchConfig.SubjectData = subject
	return orch.Run(ctx, orchConfig)
}
