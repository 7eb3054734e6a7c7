// Package segviz provides visualization helpers for image-based machine
// learning workflows.
//
// It converts numeric arrays to displayable images, tiles batches of images
// into mosaics, and color-codes segmentation label maps with optional overlay
// on a base image.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/menta2k/segviz"
//		"github.com/menta2k/segviz/pkg/tensor"
//	)
//
//	func main() {
//		viz := segviz.New()
//
//		// Tile a batch of 16 grayscale 28x28 images into a 4x4 mosaic
//		batch, err := tensor.NewBatch(pixels, 16, 28, 28)
//		if err != nil {
//			log.Fatal(err)
//		}
//		grid, err := viz.TileBatchImage(batch, 4, 4)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := viz.SaveJPEG(grid, "out/grid.jpg"); err != nil {
//			log.Fatal(err)
//		}
//
//		// Color-code a segmentation label and overlay it on the input
//		label, _ := tensor.NewLabel(classes, 28, 28)
//		frame, _ := batch.Image(0)
//		if _, err := viz.OverlayLabelToFile(frame, label, "out/overlay.jpg"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Tensor (pkg/tensor): typed array values for batches, frames, and labels
// 2. Mosaic (pkg/mosaic): batch-to-grid tiling
// 3. Render (pkg/render): array-to-image encoding and file output
// 4. Segmentation (pkg/segmentation): label colorization and overlay blending
//
// All operations are synchronous and pure aside from optional file writes;
// inputs are never mutated.
package segviz

import (
	"image"

	"github.com/menta2k/segviz/pkg/mosaic"
	"github.com/menta2k/segviz/pkg/render"
	"github.com/menta2k/segviz/pkg/segmentation"
	"github.com/menta2k/segviz/pkg/tensor"
)

// Version of the segviz library
const Version = "1.0.0"

// Visualizer provides a high-level interface for the visualization helpers
type Visualizer struct {
	tiler      *mosaic.Tiler
	colorizer  *segmentation.Colorizer
	compositor *segmentation.Compositor
}

// New creates a new Visualizer with default configuration
func New() *Visualizer {
	return &Visualizer{
		tiler:      mosaic.New(),
		colorizer:  segmentation.New(),
		compositor: segmentation.NewCompositor(),
	}
}

// NewWithConfig creates a new Visualizer with custom configuration
func NewWithConfig(tilerConfig mosaic.Config, labelConfig segmentation.Config, overlayConfig segmentation.OverlayConfig) *Visualizer {
	return &Visualizer{
		tiler:      mosaic.NewWithConfig(tilerConfig),
		colorizer:  segmentation.NewWithConfig(labelConfig),
		compositor: segmentation.NewCompositorWithConfig(overlayConfig),
	}
}

// TileBatch arranges a batch of images into a rows x cols grid frame.
func (v *Visualizer) TileBatch(b *tensor.Batch, rows, cols int) (*tensor.Frame, error) {
	return v.tiler.Tile(b, rows, cols)
}

// TileBatchImage arranges a batch into a grid and encodes it as a
// displayable image.
func (v *Visualizer) TileBatchImage(b *tensor.Batch, rows, cols int) (image.Image, error) {
	grid, err := v.tiler.Tile(b, rows, cols)
	if err != nil {
		return nil, err
	}
	return render.ToImage(grid)
}

// ColorizeLabel paints a segmentation label with the configured colormap.
func (v *Visualizer) ColorizeLabel(l *tensor.Label) (*image.NRGBA, error) {
	return v.colorizer.Colorize(l)
}

// ColorizeLabelToFile paints a segmentation label and saves it as JPEG.
func (v *Visualizer) ColorizeLabelToFile(l *tensor.Label, path string) (*image.NRGBA, error) {
	return v.colorizer.ColorizeToFile(l, path)
}

// OverlayLabel blends a colorized label over a base frame.
func (v *Visualizer) OverlayLabel(base *tensor.Frame, l *tensor.Label) (*image.NRGBA, error) {
	return v.compositor.Overlay(base, l)
}

// OverlayLabelToFile blends a colorized label over a base frame and saves
// the result as JPEG.
func (v *Visualizer) OverlayLabelToFile(base *tensor.Frame, l *tensor.Label, path string) (*image.NRGBA, error) {
	return v.compositor.OverlayToFile(base, l, path)
}

// ToImage encodes a frame as a displayable image.
func (v *Visualizer) ToImage(f *tensor.Frame) (image.Image, error) {
	return render.ToImage(f)
}

// SaveJPEG writes an image to path as JPEG, creating parent directories as
// needed. Output is always JPEG regardless of the path's extension.
func (v *Visualizer) SaveJPEG(img image.Image, path string) error {
	return render.SaveJPEG(img, path)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
