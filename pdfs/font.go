package pdfs

import "fmt"

// Font selects a face and size. Style is "" (regular), "B", "I" or "BI"
type Font struct {
	Family string  `json:"family" yaml:"family"`
	Style  string  `json:"style" yaml:"style"`
	Size   float64 `json:"size" yaml:"size"` // in `pt`
}

// WithSize returns a copy of f at another size
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

func (f Font) String() string {
	if f.Style == "" {
		return fmt.Sprintf("%s %.1fpt", f.Family, f.Size)
	}
	return fmt.Sprintf("%s-%s %.1fpt", f.Family, f.Style, f.Size)
}
