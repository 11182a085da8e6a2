package document

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R, G, B int
}

var (
	Black   = Color{0, 0, 0}
	BlueHue = Color{84, 141, 212}
	Gray20  = Color{128, 128, 128}
)

// Style is the visual theme of the evidence document. It is a plain value:
// pass a modified copy to render another theme.
type Style struct {
	// Title is the heading phrase; its first character is the accent run.
	Title string
	// Caption is the footer line under the repository name.
	Caption string

	Accent  Color
	Neutral Color
	Text    Color

	TitleSize    float64
	SubtitleSize float64
	FootSize     float64
	BodySize     float64

	// Margin is the uniform page inset in millimetres.
	Margin float64
	// LargeBreak and SmallBreak are vertical gaps measured in body lines.
	LargeBreak float64
	SmallBreak float64
	// LineSpacing multiplies the font size to get a line height.
	LineSpacing float64

	PageSize string
}

// DefaultStyle returns the stock evidence theme.
func DefaultStyle() Style {
	return Style{
		Title:        "Datos de evidencia",
		Caption:      "Evidencia I+D+I",
		Accent:       BlueHue,
		Neutral:      Gray20,
		Text:         Black,
		TitleSize:    30,
		SubtitleSize: 24,
		FootSize:     19,
		BodySize:     12,
		Margin:       10,
		LargeBreak:   10,
		SmallBreak:   4,
		LineSpacing:  1.2,
		PageSize:     "A4",
	}
}

// color resolves a tone against the theme.
func (s Style) color(tone Tone) Color {
	switch tone {
	case ToneAccent:
		return s.Accent
	case ToneNeutral:
		return s.Neutral
	default:
		return s.Text
	}
}
