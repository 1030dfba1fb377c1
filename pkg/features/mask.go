package features

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"shortcardiac/internal/models"
)

// Mask rasterizes the closed contour c onto a width x height binary image.
// A pixel belongs to the mask when at least half of it is covered.
func Mask(c models.Contour, width, height int) *image.Gray {
	dc := gg.NewContextForImage(image.NewGray(image.Rect(0, 0, width, height)))
	if len(c) >= 3 {
		dc.MoveTo(c[0].X, c[0].Y)
		for _, p := range c[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(color.White)
		dc.Fill()
	}

	src := dc.Image()
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y >= 128 {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

// Subtract clears every pixel of a that is set in b and returns a new mask.
func Subtract(a, b *image.Gray) *image.Gray {
	out := image.NewGray(a.Bounds())
	copy(out.Pix, a.Pix)
	bounds := a.Bounds().Intersect(b.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if b.GrayAt(x, y).Y != 0 {
				out.SetGray(x, y, color.Gray{})
			}
		}
	}
	return out
}

// Count returns the number of set pixels.
func Count(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// SaveMask writes m as a PNG file, creating the directory if needed.
func SaveMask(m *image.Gray, dir, name string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create mask directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name+".png"))
	if err != nil {
		return fmt.Errorf("failed to create mask file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return fmt.Errorf("failed to encode mask: %w", err)
	}
	return nil
}
