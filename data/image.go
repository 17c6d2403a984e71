package data

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Image describes one rendition of an artist or album image.
type Image struct {
	URL    string `json:"url"`
	Height int64  `json:"height"`
	Width  int64  `json:"width"`
}

// ImageList is stored as a JSON text column.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Color is a single named color extracted from cover art.
type Color struct {
	Hex string `json:"hex"`
}

// Palette holds the three colors extracted from an album's cover art. It is
// stored as a JSON text column.
type Palette struct {
	ColorRaw   Color `json:"colorRaw"`
	ColorLight Color `json:"colorLight"`
	ColorDark  Color `json:"colorDark"`
}

func (p Palette) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Palette) Scan(src interface{}) error {
	return scanJSON(src, p)
}

func scanJSON(src, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
}
