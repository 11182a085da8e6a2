package document

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alimgiray/evidence/internal/models"
)

// ErrEmptyHeading means a heading has no first character to accent.
var ErrEmptyHeading = errors.New("heading must not be empty")

// Tone names a color slot of the Style.
type Tone int

const (
	ToneDefault Tone = iota
	ToneAccent
	ToneNeutral
)

// Run is a fragment of text drawn in one tone.
type Run struct {
	Text string
	Tone Tone
}

// Block is an element of the document flow: a Paragraph or a Break.
type Block interface {
	block()
}

// Paragraph is one centered line made of styled runs. A zero Size means the
// body size of the style.
type Paragraph struct {
	Runs []Run
	Size float64
}

// Break is vertical space measured in body lines.
type Break struct {
	Lines float64
}

func (Paragraph) block() {}
func (Break) block()     {}

// Text returns the concatenated text of the runs.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Layout is the composed document, ready for a backend to draw.
type Layout struct {
	Style  Style
	Blocks []Block
}

// Paragraphs returns the text of each paragraph in document order.
func (l Layout) Paragraphs() []string {
	var lines []string
	for _, block := range l.Blocks {
		if p, ok := block.(Paragraph); ok {
			lines = append(lines, p.Text())
		}
	}
	return lines
}

// Compose builds the evidence layout for record.
func Compose(record models.EvidenceRecord, style Style) (Layout, error) {
	if record.IsZero() {
		return Layout{}, fmt.Errorf("cannot compose document: %w", models.ErrIncompleteRecord)
	}

	titleHead, titleTail, err := splitAccent(style.Title)
	if err != nil {
		return Layout{}, fmt.Errorf("title: %w", err)
	}
	monthHead, monthTail, err := splitAccent(record.Month())
	if err != nil {
		return Layout{}, fmt.Errorf("month: %w", err)
	}

	blocks := []Block{
		Break{Lines: style.LargeBreak},
		Paragraph{
			Size: style.TitleSize,
			Runs: []Run{
				{Text: titleHead, Tone: ToneAccent},
				{Text: titleTail, Tone: ToneNeutral},
			},
		},
		Paragraph{
			Size: style.TitleSize,
			Runs: []Run{
				{Text: monthHead, Tone: ToneAccent},
				// Year is the offset within the century, always two digits: 5 prints 2005.
				{Text: monthTail + fmt.Sprintf(" 20%02d", record.Year()), Tone: ToneNeutral},
			},
		},
		Break{Lines: style.LargeBreak},
		Paragraph{
			Size: style.SubtitleSize,
			Runs: []Run{{Text: record.Author()}},
		},
		Paragraph{
			Size: style.FootSize,
			Runs: []Run{{Text: record.Repository()}},
		},
		Break{Lines: style.SmallBreak},
		Paragraph{
			Runs: []Run{{Text: style.Caption}},
		},
	}

	return Layout{Style: style, Blocks: blocks}, nil
}

// splitAccent separates the first character of s from the rest.
func splitAccent(s string) (string, string, error) {
	if s == "" {
		return "", "", ErrEmptyHeading
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], s[size:], nil
}
