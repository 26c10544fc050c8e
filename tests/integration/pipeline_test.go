// Package integration contains integration tests for the brandkit pipeline.
package integration

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/brandkit/pkg/adapters/imagingcodec"
	"github.com/user/brandkit/pkg/adapters/logger"
	"github.com/user/brandkit/pkg/adapters/nullsink"
	"github.com/user/brandkit/pkg/adapters/textrender"
	"github.com/user/brandkit/pkg/config"
	"github.com/user/brandkit/pkg/mocks"
	"github.com/user/brandkit/pkg/orchestrator"
	"github.com/user/brandkit/pkg/palette"
	"github.com/user/brandkit/pkg/ports"
	"github.com/user/brandkit/pkg/stages/compose"
	"github.com/user/brandkit/pkg/stages/encode"
	"github.com/user/brandkit/pkg/stages/placement"
	"github.com/user/brandkit/pkg/stages/silhouette"
)

// navy from the built-in palette (#1e2a45).
var navy = color.NRGBA{R: 30, G: 42, B: 69, A: 255}

// coral from the built-in palette (#ff6f61), navy's first shadow candidate.
var coral = color.NRGBA{R: 255, G: 111, B: 97, A: 255}

// newTestSubject encodes a 400x400 PNG cutout: an opaque white disc of
// radius 100 centered on a fully transparent background.
func newTestSubject(t *testing.T, codec ports.Codec) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			dx, dy := x-200, y-200
			if dx*dx+dy*dy <= 100*100 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	data, err := codec.Encode(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("encode subject: %v", err)
	}
	return data
}

func newTestOrchestrator(t *testing.T, fs ports.FileSystem) *orchestrator.Orchestrator {
	t.Helper()

	pal, shadows, err := config.Defaults().BuildPalette()
	if err != nil {
		t.Fatalf("build palette: %v", err)
	}

	codec := imagingcodec.New()
	sink := nullsink.New()
	log := logger.NewNoop()

	return orchestrator.New(
		silhouette.NewStage(pal, shadows, sink, log),
		placement.NewStage(),
		compose.NewStage(sink, log),
		encode.NewStage(codec, log),
		pal,
		codec,
		textrender.New(),
		fs,
		sink,
		log,
	)
}

// TestAvatarEndToEnd runs the full pipeline for a 512x512 avatar and
// checks exact pixel values in the decoded output.
func TestAvatarEndToEnd(t *testing.T) {
	codec := imagingcodec.New()
	fs := mocks.NewFileSystem()
	fs.Files["subject.png"] = newTestSubject(t, codec)

	orch := newTestOrchestrator(t, fs)

	cfg := orchestrator.DefaultConfig()
	cfg.SubjectPath = "subject.png"
	cfg.OutputPath = "out/avatar.png"

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.ShadowName != "coral" {
		t.Errorf("expected shadow coral for navy background, got %q", result.ShadowName)
	}

	data, ok := fs.Files["out/avatar.png"]
	if !ok {
		t.Fatal("output file was not written")
	}
	if len(data) != result.ByteLength {
		t.Errorf("written bytes %d != reported length %d", len(data), result.ByteLength)
	}

	output, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	bounds := output.Bounds()
	if bounds.Dx() != 512 || bounds.Dy() != 512 {
		t.Fatalf("expected 512x512 output, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// The subject disc and its enlarged silhouette never reach the
	// top-left corner, so (0,0) must be the background color exactly.
	if got := output.NRGBAAt(0, 0); got != navy {
		t.Errorf("corner pixel: expected %v, got %v", navy, got)
	}

	// The canvas center lies inside the opaque subject disc.
	if got := output.NRGBAAt(256, 256); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("center pixel: expected white subject, got %v", got)
	}

	// The silhouette disc is scaled to 614px and shifted up-left by the
	// offset, landing its center near (215,215) with radius ~153. A point
	// well inside it but outside the 128px subject disc shows the shadow.
	if got := output.NRGBAAt(75, 215); got != coral {
		t.Errorf("silhouette pixel: expected %v, got %v", coral, got)
	}
}

func TestAvatarWithoutSilhouette(t *testing.T) {
	codec := imagingcodec.New()
	fs := mocks.NewFileSystem()
	fs.Files["subject.png"] = newTestSubject(t, codec)

	orch := newTestOrchestrator(t, fs)

	cfg := orchestrator.DefaultConfig()
	cfg.SubjectPath = "subject.png"
	cfg.OutputPath = "out/flat.png"
	cfg.SilhouetteEnabled = false

	_, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	output, err := codec.Decode(fs.Files["out/flat.png"])
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}

	// With the silhouette off, the point that carried the shadow color in
	// the default run is plain background.
	if got := output.NRGBAAt(75, 215); got != navy {
		t.Errorf("expected %v without silhouette, got %v", navy, got)
	}
}

// TestBannerBudgetRetry encodes a JPEG banner under an impossible budget
// and verifies the request still succeeds with the overrun flagged.
func TestBannerBudgetRetry(t *testing.T) {
	codec := imagingcodec.New()
	fs := mocks.NewFileSystem()
	fs.Files["subject.png"] = newTestSubject(t, codec)

	orch := newTestOrchestrator(t, fs)

	cfg := orchestrator.DefaultConfig()
	cfg.SubjectPath = "subject.png"
	cfg.OutputPath = "out/banner.jpg"
	cfg.CanvasWidth = 1500
	cfg.CanvasHeight = 500
	cfg.Format = ports.FormatJPEG
	cfg.ByteBudget = 500 // far below any realistic 1500x500 JPEG

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.BudgetExceeded {
		t.Error("expected BudgetExceeded for a 500 byte budget")
	}
	if result.ByteLength <= 500 {
		t.Errorf("expected oversized output, got %d bytes", result.ByteLength)
	}
	if _, ok := fs.Files["out/banner.jpg"]; !ok {
		t.Error("oversized output must still be written")
	}
}

func TestCaptionRendered(t *testing.T) {
	codec := imagingcodec.New()
	fs := mocks.NewFileSystem()
	fs.Files["subject.png"] = newTestSubject(t, codec)

	orch := newTestOrchestrator(t, fs)

	cfg := orchestrator.DefaultConfig()
	cfg.SubjectPath = "subject.png"
	cfg.OutputPath = "out/captioned.png"
	cfg.Caption = "brandkit"
	cfg.SilhouetteEnabled = false

	_, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	output, err := codec.Decode(fs.Files["out/captioned.png"])
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}

	// Some pixel in the caption strip must differ from the background.
	found := false
	for y := 512 - 48; y < 512 && !found; y++ {
		for x := 0; x < 512; x++ {
			if output.NRGBAAt(x, y) != navy {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected caption glyphs in the bottom strip")
	}
}

// TestBatchIndependence runs a batch mixing good and bad requests and
// verifies failures stay contained to their own request.
func TestBatchIndependence(t *testing.T) {
	codec := imagingcodec.New()
	fs := mocks.NewFileSystem()
	fs.Files["subject.png"] = newTestSubject(t, codec)

	orch := newTestOrchestrator(t, fs)

	var configs []orchestrator.Config
	for _, background := range []string{"navy", "coral", "no-such-color", "sand"} {
		cfg := orchestrator.DefaultConfig()
		cfg.SubjectPath = "subject.png"
		cfg.OutputPath = "out/avatar-" + background + ".png"
		cfg.Background = background
		cfg.CanvasWidth = 256
		cfg.CanvasHeight = 256
		configs = append(configs, cfg)
	}

	results := orch.RunBatch(context.Background(), configs, 2)

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if i == 2 {
			if !errors.Is(r.Err, palette.ErrUnknownColor) {
				t.Errorf("request 2: expected unknown color error, got %v", r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("request %d failed: %v", i, r.Err)
		}
		if _, ok := fs.Files[configs[i].OutputPath]; !ok {
			t.Errorf("request %d: output missing", i)
		}
	}
}
