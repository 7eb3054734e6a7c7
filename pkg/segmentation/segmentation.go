// Package segmentation color-codes segmentation label maps and blends them
// over base images.
package segmentation

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/menta2k/segviz/pkg/render"
	"github.com/menta2k/segviz/pkg/tensor"
)

// ErrLabelRange reports a class index with no corresponding colormap entry.
var ErrLabelRange = errors.New("label value out of colormap range")

// Colormap maps a class index to its display color.
type Colormap []color.NRGBA

// DefaultLabelColormap supports 4 classes: black, guava red, nice green,
// nice blue.
var DefaultLabelColormap = Colormap{
	{0, 0, 0, 255},
	{255, 79, 64, 255},
	{115, 173, 33, 255},
	{48, 126, 199, 255},
}

// DefaultOverlayColormap supports 4 classes with a neutral gray background
// so the base image stays readable under the blend.
var DefaultOverlayColormap = Colormap{
	{127, 127, 127, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
}

// Colorizer paints segmentation labels with a colormap
type Colorizer struct {
	config Config
}

// Config holds configuration for label colorization
type Config struct {
	// Colormap used to paint class indices. Nil selects DefaultLabelColormap.
	Colormap Colormap
	// Quality for JPEG output. Zero selects render.DefaultQuality.
	Quality int
}

// New creates a new Colorizer with default configuration
func New() *Colorizer {
	return &Colorizer{config: Config{Quality: render.DefaultQuality}}
}

// NewWithConfig creates a new Colorizer with custom configuration
func NewWithConfig(config Config) *Colorizer {
	return &Colorizer{config: config}
}

// Colorize produces a color image where every pixel with class k is painted
// colormap[k]. A class index beyond the colormap fails with ErrLabelRange.
func (c *Colorizer) Colorize(l *tensor.Label) (*image.NRGBA, error) {
	cm := c.config.Colormap
	if cm == nil {
		cm = DefaultLabelColormap
	}
	return colorize(l, cm)
}

// ColorizeToFile colorizes the label and writes the result to path as JPEG,
// creating parent directories as needed.
func (c *Colorizer) ColorizeToFile(l *tensor.Label, path string) (*image.NRGBA, error) {
	img, err := c.Colorize(l)
	if err != nil {
		return nil, err
	}
	if err := render.SaveJPEGQuality(img, path, c.quality()); err != nil {
		return nil, fmt.Errorf("failed to save label visualization: %w", err)
	}
	return img, nil
}

func (c *Colorizer) quality() int {
	if c.config.Quality == 0 {
		return render.DefaultQuality
	}
	return c.config.Quality
}

func colorize(l *tensor.Label, cm Colormap) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, l.W, l.H))
	for y := 0; y < l.H; y++ {
		for x := 0; x < l.W; x++ {
			k := l.At(y, x)
			if k >= len(cm) {
				return nil, fmt.Errorf("label value %d has no entry in colormap of length %d: %w", k, len(cm), ErrLabelRange)
			}
			i := y*img.Stride + x*4
			img.Pix[i+0] = cm[k].R
			img.Pix[i+1] = cm[k].G
			img.Pix[i+2] = cm[k].B
			img.Pix[i+3] = 0xff
		}
	}
	return img, nil
}

// Compositor blends colorized labels over base images
type Compositor struct {
	config OverlayConfig
}

// OverlayConfig holds configuration for overlay compositing
type OverlayConfig struct {
	// Colormap used to paint class indices. Nil selects DefaultOverlayColormap.
	Colormap Colormap
	// Alpha is the blend factor in [0,1]: 0 keeps the base image, 1 keeps the
	// colorized label.
	Alpha float64
	// Quality for JPEG output. Zero selects render.DefaultQuality.
	Quality int
}

// NewCompositor creates a new Compositor with default configuration
func NewCompositor() *Compositor {
	return &Compositor{config: OverlayConfig{Alpha: 0.5, Quality: render.DefaultQuality}}
}

// NewCompositorWithConfig creates a new Compositor with custom configuration
func NewCompositorWithConfig(config OverlayConfig) *Compositor {
	return &Compositor{config: config}
}

// Overlay encodes the base frame as a displayable image and blends the
// colorized label over it.
func (c *Compositor) Overlay(base *tensor.Frame, l *tensor.Label) (*image.NRGBA, error) {
	img, err := render.ToImage(base)
	if err != nil {
		return nil, fmt.Errorf("failed to encode base image: %w", err)
	}
	return c.OverlayImage(img, l)
}

// OverlayImage converts the base image to three-channel color, colorizes the
// label, and produces the per-pixel blend (1-alpha)*base + alpha*label. The
// base image and label must share dimensions.
func (c *Compositor) OverlayImage(base image.Image, l *tensor.Label) (*image.NRGBA, error) {
	if c.config.Alpha < 0 || c.config.Alpha > 1 {
		return nil, fmt.Errorf("alpha %v outside [0,1]: %w", c.config.Alpha, tensor.ErrInvalidArgument)
	}

	bounds := base.Bounds()
	if bounds.Dx() != l.W || bounds.Dy() != l.H {
		return nil, fmt.Errorf("base image %dx%d does not match label %dx%d: %w",
			bounds.Dx(), bounds.Dy(), l.W, l.H, tensor.ErrInvalidArgument)
	}

	cm := c.config.Colormap
	if cm == nil {
		cm = DefaultOverlayColormap
	}
	colorized, err := colorize(l, cm)
	if err != nil {
		return nil, err
	}

	converted := imaging.Clone(base)
	return imaging.Overlay(converted, colorized, image.Pt(0, 0), c.config.Alpha), nil
}

// OverlayToFile blends the label over the base frame and writes the result
// to path as JPEG, creating parent directories as needed.
func (c *Compositor) OverlayToFile(base *tensor.Frame, l *tensor.Label, path string) (*image.NRGBA, error) {
	img, err := c.Overlay(base, l)
	if err != nil {
		return nil, err
	}
	if err := render.SaveJPEGQuality(img, path, c.quality()); err != nil {
		return nil, fmt.Errorf("failed to save overlay visualization: %w", err)
	}
	return img, nil
}

func (c *Compositor) quality() int {
	if c.config.Quality == 0 {
		return render.DefaultQuality
	}
	return c.config.Quality
}
