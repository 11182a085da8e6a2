package document

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

var errNoLayout = errors.New("layout has no blocks")

// RenderError wraps a failure of the PDF backend.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to render document: %v", e.Err)
	}
	return fmt.Sprintf("failed to render document to %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer draws layouts into PDF files with one font family.
type Renderer struct {
	font      FontFamily
	createdAt time.Time
	compress  bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithCreationDate pins the PDF creation and modification dates.
func WithCreationDate(t time.Time) RendererOption {
	return func(r *Renderer) {
		r.createdAt = t
	}
}

// WithCompression toggles stream compression (on by default).
func WithCompression(compress bool) RendererOption {
	return func(r *Renderer) {
		r.compress = compress
	}
}

// NewRenderer creates a Renderer for a resolved font family.
func NewRenderer(font FontFamily, opts ...RendererOption) (*Renderer, error) {
	if font.Name == "" {
		return nil, fmt.Errorf("%w: no family resolved", ErrFontUnavailable)
	}
	r := &Renderer{font: font, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderToFile draws layout and writes it to path. The path doubles as the
// document title.
func (r *Renderer) RenderToFile(layout Layout, path string) error {
	pdf, err := r.build(layout, path)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return &RenderError{Path: path, Err: err}
	}
	return nil
}

// Render draws layout and writes the PDF to w.
func (r *Renderer) Render(layout Layout, title string, w io.Writer) error {
	pdf, err := r.build(layout, title)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

func (r *Renderer) build(layout Layout, title string) (*fpdf.Fpdf, error) {
	if len(layout.Blocks) == 0 {
		return nil, &RenderError{Path: title, Err: errNoLayout}
	}
	style := layout.Style
	pdf := fpdf.New("P", "mm", style.PageSize, r.font.Dir)
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	if !r.createdAt.IsZero() {
		pdf.SetCreationDate(r.createdAt)
		pdf.SetModificationDate(r.createdAt)
	}
	pdf.SetTitle(title, true)

	if err := r.registerFont(pdf); err != nil {
		return nil, err
	}

	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.Margin)
	pdf.SetCellMargin(0)

	d := &drawer{pdf: pdf, style: style, family: r.font.Name}
	pdf.SetHeaderFunc(d.header)
	pdf.AddPage()

	for _, block := range layout.Blocks {
		switch b := block.(type) {
		case Break:
			pdf.Ln(b.Lines * d.lineHeight(style.BodySize))
		case Paragraph:
			d.paragraph(b)
		}
	}

	if pdf.Err() {
		return nil, &RenderError{Err: pdf.Error()}
	}
	return pdf, nil
}

// registerFont embeds every face of the family found on disk. Font files are
// resolved against the family directory, not the working directory.
func (r *Renderer) registerFont(pdf *fpdf.Fpdf) error {
	for _, face := range r.font.faces() {
		pdf.AddUTF8Font(r.font.Name, face, r.font.fileName(face))
	}
	if pdf.Err() {
		return fmt.Errorf("%w: %s: %v", ErrFontUnavailable, r.font.Name, pdf.Error())
	}
	return nil
}

type drawer struct {
	pdf    *fpdf.Fpdf
	style  Style
	family string
}

func (d *drawer) lineHeight(size float64) float64 {
	return d.pdf.PointConvert(size) * d.style.LineSpacing
}

// header frames one empty body line across the printable width.
func (d *drawer) header() {
	left, top, right, _ := d.pdf.GetMargins()
	width, _ := d.pdf.GetPageSize()
	height := d.lineHeight(d.style.BodySize)

	d.pdf.SetDrawColor(d.style.Neutral.R, d.style.Neutral.G, d.style.Neutral.B)
	d.pdf.Rect(left, top, width-left-right, height, "D")
	d.pdf.SetY(top + height)
}

func (d *drawer) paragraph(p Paragraph) {
	size := p.Size
	if size == 0 {
		size = d.style.BodySize
	}
	d.pdf.SetFont(d.family, "", size)
	height := d.lineHeight(size)

	texts := make([]string, len(p.Runs))
	widths := make([]float64, len(p.Runs))
	total := 0.0
	for i, run := range p.Runs {
		texts[i] = run.Text
		widths[i] = d.pdf.GetStringWidth(texts[i])
		total += widths[i]
	}

	left, _, right, _ := d.pdf.GetMargins()
	pageWidth, _ := d.pdf.GetPageSize()
	d.pdf.SetX(left + (pageWidth-left-right-total)/2)

	for i, run := range p.Runs {
		c := d.style.color(run.Tone)
		d.pdf.SetTextColor(c.R, c.G, c.B)
		d.pdf.CellFormat(widths[i], height, texts[i], "", 0, "L", false, 0, "")
	}
	d.pdf.Ln(height)
}
