package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFontUnavailable means the font files of a family cannot be used.
var ErrFontUnavailable = errors.New("font family unavailable")

// FontFamily is a TrueType family on disk, laid out as
// <Dir>/<Name>-Regular.ttf with optional -Bold, -Italic and -BoldItalic.
type FontFamily struct {
	Name string
	Dir  string
}

var fontStyles = map[string]string{
	"":   "Regular",
	"B":  "Bold",
	"I":  "Italic",
	"BI": "BoldItalic",
}

// LoadFontFamily checks that dir holds at least the regular face of name.
func LoadFontFamily(dir, name string) (FontFamily, error) {
	if name == "" {
		return FontFamily{}, fmt.Errorf("%w: empty family name", ErrFontUnavailable)
	}
	family := FontFamily{Name: name, Dir: dir}
	regular := filepath.Join(dir, family.fileName(""))
	if _, err := os.Stat(regular); err != nil {
		return FontFamily{}, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, name, err)
	}
	return family, nil
}

func (f FontFamily) fileName(style string) string {
	return f.Name + "-" + fontStyles[style] + ".ttf"
}

// faces returns the fpdf style keys whose files are present, regular first.
func (f FontFamily) faces() []string {
	faces := []string{""}
	for _, style := range []string{"B", "I", "BI"} {
		if _, err := os.Stat(filepath.Join(f.Dir, f.fileName(style))); err == nil {
			faces = append(faces, style)
		}
	}
	return faces
}
