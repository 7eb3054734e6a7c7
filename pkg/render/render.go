// Package render converts tensor frames to displayable images and back, and
// writes images to disk.
//
// Frames are encoded through explicit constructors: Grayscale for
// single-channel data and RGB for three-channel data. ToImage is a
// convenience that picks the constructor from the frame's channel count,
// which is validated at frame construction time.
package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/segviz/internal/utils"
	"github.com/menta2k/segviz/pkg/tensor"
)

// DefaultQuality is the JPEG quality used when none is specified.
const DefaultQuality = 85

// Grayscale encodes a single-channel frame as a grayscale image.
func Grayscale(f *tensor.Frame) (*image.Gray, error) {
	if f.C != 1 {
		return nil, fmt.Errorf("grayscale encoding requires 1 channel, got %d: %w", f.C, tensor.ErrInvalidArgument)
	}

	img := image.NewGray(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+f.W], f.Pix[y*f.W:(y+1)*f.W])
	}
	return img, nil
}

// RGB encodes a three-channel frame as a color image with full opacity.
func RGB(f *tensor.Frame) (*image.NRGBA, error) {
	if f.C != 3 {
		return nil, fmt.Errorf("color encoding requires 3 channels, got %d: %w", f.C, tensor.ErrInvalidArgument)
	}

	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			src := (y*f.W + x) * 3
			dst := y*img.Stride + x*4
			img.Pix[dst+0] = f.Pix[src+0]
			img.Pix[dst+1] = f.Pix[src+1]
			img.Pix[dst+2] = f.Pix[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img, nil
}

// ToImage encodes a frame as a displayable image, choosing grayscale or
// color from the frame's channel count.
func ToImage(f *tensor.Frame) (image.Image, error) {
	switch f.C {
	case 1:
		return Grayscale(f)
	case 3:
		return RGB(f)
	default:
		return nil, fmt.Errorf("unsupported channel count %d (want 1 or 3): %w", f.C, tensor.ErrInvalidArgument)
	}
}

// Mask encodes a {0,1} template mask as a black and white image, with the
// region of interest rendered white.
func Mask(f *tensor.Frame) (*image.Gray, error) {
	if f.C != 1 {
		return nil, fmt.Errorf("mask encoding requires 1 channel, got %d: %w", f.C, tensor.ErrInvalidArgument)
	}

	img := image.NewGray(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if f.Pix[y*f.W+x] != 0 {
				img.Pix[y*img.Stride+x] = 0xff
			}
		}
	}
	return img, nil
}

// FromImage converts a displayable image back to a frame. Grayscale images
// yield a single-channel frame with a channel axis; everything else is
// converted to three channels.
func FromImage(img image.Image) *tensor.Frame {
	if gray, ok := img.(*image.Gray); ok {
		b := gray.Bounds()
		f := &tensor.Frame{H: b.Dy(), W: b.Dx(), C: 1, Channeled: true, Pix: make([]uint8, b.Dy()*b.Dx())}
		for y := 0; y < f.H; y++ {
			copy(f.Pix[y*f.W:(y+1)*f.W], gray.Pix[y*gray.Stride:y*gray.Stride+f.W])
		}
		return f
	}

	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	f := &tensor.Frame{H: b.Dy(), W: b.Dx(), C: 3, Channeled: true, Pix: make([]uint8, b.Dy()*b.Dx()*3)}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			src := y*nrgba.Stride + x*4
			dst := (y*f.W + x) * 3
			f.Pix[dst+0] = nrgba.Pix[src+0]
			f.Pix[dst+1] = nrgba.Pix[src+1]
			f.Pix[dst+2] = nrgba.Pix[src+2]
		}
	}
	return f
}

// SaveJPEG writes an image to path as JPEG with the default quality,
// regardless of the path's extension. Parent directories are created as
// needed.
func SaveJPEG(img image.Image, path string) error {
	return SaveJPEGQuality(img, path, DefaultQuality)
}

// SaveJPEGQuality writes an image to path as JPEG with the given quality.
func SaveJPEGQuality(img image.Image, path string, quality int) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := imaging.Encode(file, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}

// Export writes an image to path in an explicitly chosen format. Unlike
// SaveJPEG the format is a parameter, not derived from the path.
func Export(img image.Image, path, format string, quality int) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch strings.ToLower(format) {
	case "webp":
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		return webp.Encode(file, img, &webp.Options{Quality: float32(quality)})
	case "png":
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		return imaging.Encode(file, img, imaging.PNG)
	case "jpg", "jpeg":
		return SaveJPEGQuality(img, path, quality)
	default:
		return fmt.Errorf("unsupported output format %q: %w", format, tensor.ErrInvalidArgument)
	}
}

// Open loads an image from a file path with WebP support.
func Open(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders, including x/image/webp)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}
