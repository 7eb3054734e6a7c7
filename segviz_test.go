package segviz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/segviz/pkg/mosaic"
	"github.com/menta2k/segviz/pkg/segmentation"
	"github.com/menta2k/segviz/pkg/tensor"
)

// createTestBatch creates a batch of n grayscale h x w images where every
// pixel of image i holds the value i+1
func createTestBatch(t *testing.T, n, h, w int) *tensor.Batch {
	t.Helper()

	data := make([]uint8, n*h*w)
	for i := 0; i < n; i++ {
		for p := 0; p < h*w; p++ {
			data[i*h*w+p] = uint8(i + 1)
		}
	}

	b, err := tensor.NewBatch(data, n, h, w)
	if err != nil {
		t.Fatalf("NewBatch failed: %v", err)
	}
	return b
}

func TestNew(t *testing.T) {
	viz := New()
	if viz == nil {
		t.Fatal("New() returned nil")
	}

	if viz.tiler == nil {
		t.Error("tiler component is nil")
	}

	if viz.colorizer == nil {
		t.Error("colorizer component is nil")
	}

	if viz.compositor == nil {
		t.Error("compositor component is nil")
	}
}

func TestNewWithConfig(t *testing.T) {
	viz := NewWithConfig(
		mosaic.Config{Fill: 255},
		segmentation.Config{Quality: 95},
		segmentation.OverlayConfig{Alpha: 0.3, Quality: 95},
	)

	if viz == nil {
		t.Fatal("NewWithConfig() returned nil")
	}

	if viz.tiler == nil || viz.colorizer == nil || viz.compositor == nil {
		t.Error("Components should be initialized")
	}
}

func TestTileBatch(t *testing.T) {
	viz := New()
	b := createTestBatch(t, 6, 2, 2)

	grid, err := viz.TileBatch(b, 2, 3)
	if err != nil {
		t.Fatalf("TileBatch failed: %v", err)
	}

	if grid.H != 4 || grid.W != 6 {
		t.Errorf("Expected 4x6 grid, got %dx%d", grid.H, grid.W)
	}
}

func TestTileBatchImage(t *testing.T) {
	viz := New()
	b := createTestBatch(t, 4, 3, 3)

	img, err := viz.TileBatchImage(b, 2, 2)
	if err != nil {
		t.Fatalf("TileBatchImage failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 6 || bounds.Dy() != 6 {
		t.Errorf("Expected 6x6 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestTileBatchInvalidGrid(t *testing.T) {
	viz := New()
	b := createTestBatch(t, 4, 2, 2)

	if _, err := viz.TileBatch(b, 0, 2); !errors.Is(err, tensor.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestColorizeLabel(t *testing.T) {
	viz := New()
	l, err := tensor.NewLabel([]int{0, 1, 2, 3}, 2, 2)
	if err != nil {
		t.Fatalf("NewLabel failed: %v", err)
	}

	img, err := viz.ColorizeLabel(l)
	if err != nil {
		t.Fatalf("ColorizeLabel failed: %v", err)
	}

	want := segmentation.DefaultLabelColormap[1]
	if c := img.NRGBAAt(1, 0); c.R != want.R || c.G != want.G || c.B != want.B {
		t.Errorf("Expected class-1 color %v, got %v", want, c)
	}
}

func TestOverlayLabel(t *testing.T) {
	viz := New()

	base, err := tensor.NewFrame(make([]uint8, 4), 2, 2)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	l, err := tensor.NewLabel([]int{0, 0, 1, 1}, 2, 2)
	if err != nil {
		t.Fatalf("NewLabel failed: %v", err)
	}

	img, err := viz.OverlayLabel(base, l)
	if err != nil {
		t.Fatalf("OverlayLabel failed: %v", err)
	}

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 2x2 overlay, got %v", img.Bounds())
	}
}

func TestSaveJPEG(t *testing.T) {
	viz := New()
	b := createTestBatch(t, 4, 2, 2)

	img, err := viz.TileBatchImage(b, 2, 2)
	if err != nil {
		t.Fatalf("TileBatchImage failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "grids", "batch.jpg")
	if err := viz.SaveJPEG(img, path); err != nil {
		t.Fatalf("SaveJPEG failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected saved grid to exist: %v", err)
	}
}

func TestGetVersion(t *testing.T) {
	version := GetVersion()
	if version == "" {
		t.Error("Version should not be empty")
	}

	if version != Version {
		t.Errorf("GetVersion() returned %s, expected %s", version, Version)
	}
}
