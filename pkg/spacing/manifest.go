package spacing

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"shortcardiac/internal/models"
)

// ManifestRow is one line of a spacing manifest:
//
//	id,spacing_x,spacing_y
//	patient1_slice3,1.40625,1.40625
type ManifestRow struct {
	ID       string  `csv:"id"`
	SpacingX float64 `csv:"spacing_x"`
	SpacingY float64 `csv:"spacing_y"`
}

// LoadManifest reads a spacing manifest keyed by slice ID.
func LoadManifest(path string) (map[string]models.PixelSpacing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	records := []*ManifestRow{}
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]models.PixelSpacing, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("manifest row %d: empty id", i+1)
		}
		if r.SpacingX <= 0 || r.SpacingY <= 0 {
			return nil, fmt.Errorf("manifest row %d (%s): spacing must be positive", i+1, r.ID)
		}
		if _, dup := out[r.ID]; dup {
			return nil, fmt.Errorf("manifest row %d: duplicate id %q", i+1, r.ID)
		}
		out[r.ID] = models.PixelSpacing{X: r.SpacingX, Y: r.SpacingY}
	}
	return out, nil
}
