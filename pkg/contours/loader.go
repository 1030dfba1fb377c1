// Package contours reads slice contour files and turns them into pipeline
// inputs.
//
// A contour file is a JSON document:
//
//	{
//	  "slices": [
//	    {
//	      "id": "patient1_slice3",
//	      "imageWidth": 208,
//	      "imageHeight": 256,
//	      "spacing": {"x": 1.40625, "y": 1.40625},
//	      "image": "images/patient1_slice3.png",
//	      "contours": {
//	        "saepicardialContour": [[80.5, 100.0], [81.0, 101.5]]
//	      }
//	    }
//	  ]
//	}
//
// Spacing, image size and image path are optional. Missing values are
// resolved from a spacing manifest, DICOM headers or the decoded image.
package contours

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/spacing"
)

// File is a parsed contour file.
type File struct {
	// Path is where the file was read from; relative image paths resolve
	// against its directory
	Path   string  `json:"-"`
	Slices []Slice `json:"slices"`
}

// Slice is one slice entry of a contour file.
type Slice struct {
	ID          string                  `json:"id"`
	ImageWidth  int                     `json:"imageWidth"`
	ImageHeight int                     `json:"imageHeight"`
	Spacing     *models.PixelSpacing    `json:"spacing,omitempty"`
	Image       string                  `json:"image,omitempty"`
	Contours    map[string][][2]float64 `json:"contours"`
}

// Load parses the contour file at path.
func Load(path string) (File, error) {
	out := File{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			return out, pfx.Err(fmt.Errorf("syntax error at byte offset %d: %w", e.Offset, err))
		}
		return out, pfx.Err(err)
	}

	seen := make(map[string]bool, len(out.Slices))
	for i, s := range out.Slices {
		if s.ID == "" {
			return out, fmt.Errorf("slice %d: empty id", i)
		}
		if seen[s.ID] {
			return out, fmt.Errorf("slice %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	return out, nil
}

// Sources are the fallbacks for values a slice entry leaves out.
type Sources struct {
	// Manifest maps slice IDs to pixel spacing
	Manifest map[string]models.PixelSpacing

	// Headers maps slice IDs to DICOM headers
	Headers map[string]spacing.Header

	// Spacing is used when nothing else provides one
	Spacing models.PixelSpacing

	// LoadImages decodes the referenced intensity images
	LoadImages bool
}

// Inputs converts every slice of f into a pipeline input. Spacing is taken
// from the entry itself, then the manifest, then the DICOM header, then
// the default. A slice without any spacing is kept with zero spacing and
// ends up not calculable.
func (f File) Inputs(src Sources) ([]models.SliceInput, error) {
	inputs := make([]models.SliceInput, 0, len(f.Slices))
	for _, s := range f.Slices {
		in, err := f.input(s, src)
		if err != nil {
			return nil, fmt.Errorf("slice %s: %w", s.ID, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (f File) input(s Slice, src Sources) (models.SliceInput, error) {
	set := make(map[string]models.Contour, len(s.Contours))
	for label, pts := range s.Contours {
		c := make(models.Contour, len(pts))
		for i, p := range pts {
			c[i] = models.Point{X: p[0], Y: p[1]}
		}
		set[label] = c
	}

	in := models.SliceInput{
		ID:       s.ID,
		Contours: models.NewContourSet(set),
		Width:    s.ImageWidth,
		Height:   s.ImageHeight,
	}

	header, hasHeader := src.Headers[s.ID]
	switch {
	case s.Spacing != nil:
		in.Spacing = *s.Spacing
	case src.Manifest[s.ID] != (models.PixelSpacing{}):
		in.Spacing = src.Manifest[s.ID]
	case hasHeader:
		in.Spacing = header.Spacing
	default:
		in.Spacing = src.Spacing
	}

	if (in.Width == 0 || in.Height == 0) && hasHeader {
		in.Width, in.Height = header.Columns, header.Rows
	}

	if src.LoadImages && s.Image != "" {
		path := s.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(f.Path), path)
		}
		img, err := loadImage(path)
		if err != nil {
			return in, err
		}
		in.Image = img
		if in.Width == 0 || in.Height == 0 {
			in.Width, in.Height = img.Bounds().Dx(), img.Bounds().Dy()
		}
	}
	return in, nil
}

// loadImage decodes a PNG or JPEG image.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return img, nil
}
