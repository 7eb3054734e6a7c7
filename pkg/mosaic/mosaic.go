// Package mosaic arranges a batch of images into a single tiled grid image.
package mosaic

import (
	"fmt"

	"github.com/menta2k/segviz/pkg/tensor"
)

// Tiler packs image batches into fixed-size grids
type Tiler struct {
	config Config
}

// Config holds configuration for grid tiling
type Config struct {
	// Fill is the pixel value used for cells without an image. Zero renders
	// unused cells as solid black.
	Fill uint8
}

// New creates a new Tiler with default configuration
func New() *Tiler {
	return &Tiler{}
}

// NewWithConfig creates a new Tiler with custom configuration
func NewWithConfig(config Config) *Tiler {
	return &Tiler{config: config}
}

// Tile arranges the batch into a rows x cols grid in row-major order: image i
// lands in cell (i/cols, i%cols). Images beyond rows*cols are silently
// dropped; missing cells are filled with the configured fill value. The
// result is a single frame of shape (rows*H, cols*W, C) whose channel axis
// mirrors the input batch. The input batch is not modified.
func (t *Tiler) Tile(b *tensor.Batch, rows, cols int) (*tensor.Frame, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d: %w", rows, cols, tensor.ErrInvalidArgument)
	}

	nCells := rows * cols
	n := b.N
	if n > nCells {
		n = nCells
	}

	out := &tensor.Frame{
		H:         rows * b.H,
		W:         cols * b.W,
		C:         b.C,
		Channeled: b.Channeled,
		Pix:       make([]uint8, rows*b.H*cols*b.W*b.C),
	}
	if t.config.Fill != 0 {
		for i := range out.Pix {
			out.Pix[i] = t.config.Fill
		}
	}

	rowBytes := b.W * b.C
	gridStride := cols * rowBytes
	for i := 0; i < n; i++ {
		gy, gx := i/cols, i%cols
		for y := 0; y < b.H; y++ {
			src := ((i*b.H + y) * b.W) * b.C
			dst := (gy*b.H+y)*gridStride + gx*rowBytes
			copy(out.Pix[dst:dst+rowBytes], b.Pix[src:src+rowBytes])
		}
	}

	return out, nil
}

// Tile arranges a batch into a grid using a default Tiler.
func Tile(b *tensor.Batch, rows, cols int) (*tensor.Frame, error) {
	return New().Tile(b, rows, cols)
}
