// Package spacing resolves the physical pixel spacing of each slice, either
// from the DICOM header of the source image or from a CSV manifest.
package spacing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/dicomtag"
	"github.com/suyashkumar/dicom/element"

	"shortcardiac/internal/models"
)

// ErrNoPixelSpacing is returned when a DICOM header has no usable PixelSpacing.
var ErrNoPixelSpacing = errors.New("no pixel spacing in dicom header")

// Header holds the DICOM fields a slice needs.
type Header struct {
	Spacing models.PixelSpacing
	Rows    int
	Columns int
}

// FromDICOM reads the header of a DICOM file. Pixel data is not decoded.
func FromDICOM(path string) (Header, error) {
	dcm, err := os.ReadFile(path)
	if err != nil {
		return Header{}, pfx.Err(err)
	}
	return FromDICOMBytes(dcm)
}

// FromDICOMBytes parses a DICOM header held in memory.
func FromDICOMBytes(dcm []byte) (Header, error) {
	parsedData, err := safelyParse(dcm, dicom.ParseOptions{DropPixelData: true})
	if parsedData == nil || err != nil {
		return Header{}, pfx.Err(fmt.Errorf("error reading dicom: %v", err))
	}

	var h Header
	for _, elem := range parsedData.Elements {
		if err := applyElement(&h, elem.Tag, elem.Value); err != nil {
			return Header{}, pfx.Err(err)
		}
	}
	if h.Spacing.X <= 0 || h.Spacing.Y <= 0 {
		return Header{}, ErrNoPixelSpacing
	}
	return h, nil
}

// safelyParse turns panics of the dicom parser into errors.
func safelyParse(dcm []byte, opts dicom.ParseOptions) (parsedData *element.DataSet, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			parsedData, err = nil, fmt.Errorf("%v", panicErr)
		}
	}()

	p, err := dicom.NewParserFromBytes(dcm, nil)
	if err != nil {
		return nil, err
	}
	return p.Parse(opts)
}

// applyElement copies the value of a known tag into h. The first
// PixelSpacing value is taken as X, the second as Y.
func applyElement(h *Header, tag dicomtag.Tag, values []interface{}) error {
	switch tag {
	case dicomtag.PixelSpacing:
		for k, v := range values {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("pixel spacing value %d: unexpected type %T", k, v)
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("pixel spacing value %d: %w", k, err)
			}
			switch k {
			case 0:
				h.Spacing.X = f
			case 1:
				h.Spacing.Y = f
			}
		}
	case dicomtag.Rows:
		for _, v := range values {
			if n, ok := v.(uint16); ok {
				h.Rows = int(n)
			}
		}
	case dicomtag.Columns:
		for _, v := range values {
			if n, ok := v.(uint16); ok {
				h.Columns = int(n)
			}
		}
	}
	return nil
}

// FromDICOMDir reads every .dcm file in dir and keys the headers by file
// name without extension.
func FromDICOMDir(dir string) (map[string]Header, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]Header)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dcm") {
			continue
		}
		h, err := FromDICOM(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = h
	}
	return out, nil
}
