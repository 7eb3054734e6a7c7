// Package tensor provides the flat-slice array types the visualization
// helpers operate on: image batches, single frames, and segmentation labels.
//
// Pixel data is stored row-major as []uint8 with explicit dimensions. A value
// records whether the caller's array carried a channel axis so that outputs
// can mirror the input layout without reshaping caller data in place.
package tensor

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports a shape, rank, or parameter violation.
var ErrInvalidArgument = errors.New("invalid argument")

// Batch holds a sequence of same-sized images as one contiguous buffer.
// Layout is [N][H][W][C] row-major. Channeled records whether the source
// array had an explicit channel axis (rank 4) or not (rank 3, C fixed to 1).
type Batch struct {
	N, H, W, C int
	Channeled  bool
	Pix        []uint8
}

// Frame holds a single image. Layout is [H][W][C] row-major, with Channeled
// carrying the same meaning as on Batch.
type Frame struct {
	H, W, C   int
	Channeled bool
	Pix       []uint8
}

// Label holds a 2D segmentation map where each entry is a class index.
type Label struct {
	H, W    int
	Classes []int
}

// NewBatch builds a batch from flat pixel data and a shape of rank 3
// (n, h, w) or rank 4 (n, h, w, c). Channel counts other than 1 or 3 are
// rejected. The data slice is copied; the caller's slice is never retained
// or mutated.
func NewBatch(data []uint8, shape ...int) (*Batch, error) {
	if len(shape) != 3 && len(shape) != 4 {
		return nil, fmt.Errorf("batch shape must have rank 3 or 4, got %d: %w", len(shape), ErrInvalidArgument)
	}

	for i, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("batch dimension %d is negative (%d): %w", i, dim, ErrInvalidArgument)
		}
	}

	b := &Batch{N: shape[0], H: shape[1], W: shape[2], C: 1}
	if len(shape) == 4 {
		b.C = shape[3]
		b.Channeled = true
		if b.C != 1 && b.C != 3 {
			return nil, fmt.Errorf("unsupported channel count %d (want 1 or 3): %w", b.C, ErrInvalidArgument)
		}
	}

	want := b.N * b.H * b.W * b.C
	if len(data) != want {
		return nil, fmt.Errorf("batch data length %d does not match shape %v (want %d): %w", len(data), shape, want, ErrInvalidArgument)
	}

	b.Pix = make([]uint8, want)
	copy(b.Pix, data)
	return b, nil
}

// At returns the value at image i, row y, column x, channel c.
func (b *Batch) At(i, y, x, c int) uint8 {
	return b.Pix[((i*b.H+y)*b.W+x)*b.C+c]
}

// Set writes the value at image i, row y, column x, channel c.
func (b *Batch) Set(i, y, x, c int, v uint8) {
	b.Pix[((i*b.H+y)*b.W+x)*b.C+c] = v
}

// Image extracts image i as an independent Frame copy.
func (b *Batch) Image(i int) (*Frame, error) {
	if i < 0 || i >= b.N {
		return nil, fmt.Errorf("image index %d out of batch range [0,%d): %w", i, b.N, ErrInvalidArgument)
	}
	per := b.H * b.W * b.C
	f := &Frame{H: b.H, W: b.W, C: b.C, Channeled: b.Channeled, Pix: make([]uint8, per)}
	copy(f.Pix, b.Pix[i*per:(i+1)*per])
	return f, nil
}

// NewFrame builds a single image frame from flat pixel data and a shape of
// rank 2 (h, w) or rank 3 (h, w, c), with c restricted to 1 or 3. The data
// slice is copied.
func NewFrame(data []uint8, shape ...int) (*Frame, error) {
	if len(shape) != 2 && len(shape) != 3 {
		return nil, fmt.Errorf("frame shape must have rank 2 or 3, got %d: %w", len(shape), ErrInvalidArgument)
	}

	for i, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("frame dimension %d is negative (%d): %w", i, dim, ErrInvalidArgument)
		}
	}

	f := &Frame{H: shape[0], W: shape[1], C: 1}
	if len(shape) == 3 {
		f.C = shape[2]
		f.Channeled = true
		if f.C != 1 && f.C != 3 {
			return nil, fmt.Errorf("unsupported channel count %d (want 1 or 3): %w", f.C, ErrInvalidArgument)
		}
	}

	want := f.H * f.W * f.C
	if len(data) != want {
		return nil, fmt.Errorf("frame data length %d does not match shape %v (want %d): %w", len(data), shape, want, ErrInvalidArgument)
	}

	f.Pix = make([]uint8, want)
	copy(f.Pix, data)
	return f, nil
}

// NewGray allocates a zeroed single-channel frame without a channel axis.
func NewGray(h, w int) *Frame {
	return &Frame{H: h, W: w, C: 1, Pix: make([]uint8, h*w)}
}

// NewRGB allocates a zeroed three-channel frame.
func NewRGB(h, w int) *Frame {
	return &Frame{H: h, W: w, C: 3, Channeled: true, Pix: make([]uint8, h*w*3)}
}

// At returns the value at row y, column x, channel c.
func (f *Frame) At(y, x, c int) uint8 {
	return f.Pix[(y*f.W+x)*f.C+c]
}

// Set writes the value at row y, column x, channel c.
func (f *Frame) Set(y, x, c int, v uint8) {
	f.Pix[(y*f.W+x)*f.C+c] = v
}

// Rank reports the logical rank of the frame: 3 when the source array had a
// channel axis, 2 otherwise.
func (f *Frame) Rank() int {
	if f.Channeled {
		return 3
	}
	return 2
}

// NewLabel builds a segmentation label map from flat class indices in
// row-major order. Negative class values are rejected.
func NewLabel(classes []int, h, w int) (*Label, error) {
	if h < 0 || w < 0 {
		return nil, fmt.Errorf("label dimensions %dx%d are negative: %w", h, w, ErrInvalidArgument)
	}
	if len(classes) != h*w {
		return nil, fmt.Errorf("label data length %d does not match %dx%d: %w", len(classes), h, w, ErrInvalidArgument)
	}
	for i, k := range classes {
		if k < 0 {
			return nil, fmt.Errorf("label value %d at index %d is negative: %w", k, i, ErrInvalidArgument)
		}
	}

	l := &Label{H: h, W: w, Classes: make([]int, len(classes))}
	copy(l.Classes, classes)
	return l, nil
}

// At returns the class index at row y, column x.
func (l *Label) At(y, x int) int {
	return l.Classes[y*l.W+x]
}

// Max returns the largest class index present, or -1 for an empty label.
func (l *Label) Max() int {
	max := -1
	for _, k := range l.Classes {
		if k > max {
			max = k
		}
	}
	return max
}
