package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alimgiray/evidence/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func junioRecord(t *testing.T) models.EvidenceRecord {
	t.Helper()
	record, err := models.NewEvidenceRecord("Junio", 22, "Climate Trade Marketplace", "Pablo Blanco Celdrán")
	require.NoError(t, err)
	return record
}

const fixtureFamily = "DejaVuSansCondensed"

// fixtureFont loads the TrueType family kept in testdata through an absolute
// directory, the way the font manifest resolves it.
func fixtureFont(t *testing.T) FontFamily {
	t.Helper()
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	family, err := LoadFontFamily(dir, fixtureFamily)
	require.NoError(t, err)
	return family
}

func TestComposeBlockOrder(t *testing.T) {
	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	require.Len(t, layout.Blocks, 8)
	assert.Equal(t, Break{Lines: 10}, layout.Blocks[0])
	assert.IsType(t, Paragraph{}, layout.Blocks[1])
	assert.IsType(t, Paragraph{}, layout.Blocks[2])
	assert.Equal(t, Break{Lines: 10}, layout.Blocks[3])
	assert.IsType(t, Paragraph{}, layout.Blocks[4])
	assert.IsType(t, Paragraph{}, layout.Blocks[5])
	assert.Equal(t, Break{Lines: 4}, layout.Blocks[6])
	assert.IsType(t, Paragraph{}, layout.Blocks[7])

	assert.Equal(t, []string{
		"Datos de evidencia",
		"Junio 2022",
		"Pablo Blanco Celdrán",
		"Climate Trade Marketplace",
		"Evidencia I+D+I",
	}, layout.Paragraphs())
}

func TestComposeAccentSplit(t *testing.T) {
	style := DefaultStyle()
	layout, err := Compose(junioRecord(t), style)
	require.NoError(t, err)

	title := layout.Blocks[1].(Paragraph)
	assert.Equal(t, []Run{
		{Text: "D", Tone: ToneAccent},
		{Text: "atos de evidencia", Tone: ToneNeutral},
	}, title.Runs)
	assert.Equal(t, style.TitleSize, title.Size)

	subtitle := layout.Blocks[2].(Paragraph)
	assert.Equal(t, []Run{
		{Text: "J", Tone: ToneAccent},
		{Text: "unio 2022", Tone: ToneNeutral},
	}, subtitle.Runs)
	assert.Equal(t, style.TitleSize, subtitle.Size)

	author := layout.Blocks[4].(Paragraph)
	assert.Equal(t, []Run{{Text: "Pablo Blanco Celdrán", Tone: ToneDefault}}, author.Runs)
	assert.Equal(t, style.SubtitleSize, author.Size)

	repository := layout.Blocks[5].(Paragraph)
	assert.Equal(t, style.FootSize, repository.Size)

	caption := layout.Blocks[7].(Paragraph)
	assert.Zero(t, caption.Size)
}

func TestComposeAccentSplitMultibyte(t *testing.T) {
	record, err := models.NewEvidenceRecord("Ábril", 5, "proj", "someone")
	require.NoError(t, err)

	layout, err := Compose(record, DefaultStyle())
	require.NoError(t, err)

	subtitle := layout.Blocks[2].(Paragraph)
	assert.Equal(t, "Á", subtitle.Runs[0].Text)
	assert.Equal(t, "bril 2005", subtitle.Runs[1].Text)
}

func TestComposeIsDeterministic(t *testing.T) {
	record := junioRecord(t)

	first, err := Compose(record, DefaultStyle())
	require.NoError(t, err)
	second, err := Compose(record, DefaultStyle())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComposePreconditions(t *testing.T) {
	t.Run("Empty title phrase", func(t *testing.T) {
		style := DefaultStyle()
		style.Title = ""
		_, err := Compose(junioRecord(t), style)
		assert.True(t, errors.Is(err, ErrEmptyHeading))
	})

	t.Run("Unconstructed record", func(t *testing.T) {
		_, err := Compose(models.EvidenceRecord{}, DefaultStyle())
		assert.True(t, errors.Is(err, models.ErrIncompleteRecord))
	})
}

func TestStyleColor(t *testing.T) {
	style := DefaultStyle()
	assert.Equal(t, BlueHue, style.color(ToneAccent))
	assert.Equal(t, Gray20, style.color(ToneNeutral))
	assert.Equal(t, Black, style.color(ToneDefault))
}

func TestRenderWritesPDF(t *testing.T) {
	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	renderer, err := NewRenderer(fixtureFont(t),
		WithCompression(false),
		WithCreationDate(time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(layout, "evidence.pdf", &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/BaseFont /utf8dejavusanscondensed")
	assert.Contains(t, buf.String(), "/Encoding /Identity-H")
}

func TestRenderIndependentOfWorkingDirectory(t *testing.T) {
	font := fixtureFont(t)
	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	chdir(t, t.TempDir())

	renderer, err := NewRenderer(font)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(layout, "evidence.pdf", &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderCorruptFont(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken-Regular.ttf"), []byte("this is not a font file"), 0o644))

	family, err := LoadFontFamily(dir, "Broken")
	require.NoError(t, err)
	renderer, err := NewRenderer(family)
	require.NoError(t, err)

	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	err = renderer.Render(layout, "evidence.pdf", &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrFontUnavailable), "got %v", err)

	path := filepath.Join(dir, "out.pdf")
	err = renderer.RenderToFile(layout, path)
	assert.True(t, errors.Is(err, ErrFontUnavailable), "got %v", err)
	assert.NoFileExists(t, path)
}

func TestRenderToFile(t *testing.T) {
	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	renderer, err := NewRenderer(fixtureFont(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, renderer.RenderToFile(layout, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderToFileBadPath(t *testing.T) {
	layout, err := Compose(junioRecord(t), DefaultStyle())
	require.NoError(t, err)

	renderer, err := NewRenderer(fixtureFont(t))
	require.NoError(t, err)

	err = renderer.RenderToFile(layout, filepath.Join(t.TempDir(), "missing", "test.pdf"))
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestRenderEmptyLayout(t *testing.T) {
	renderer, err := NewRenderer(fixtureFont(t))
	require.NoError(t, err)

	err = renderer.Render(Layout{Style: DefaultStyle()}, "empty", &bytes.Buffer{})
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
}

func TestNewRendererRequiresFamily(t *testing.T) {
	_, err := NewRenderer(FontFamily{})
	assert.True(t, errors.Is(err, ErrFontUnavailable))
}

func TestLoadFontFamily(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFontFamily(dir, "Roboto")
	assert.True(t, errors.Is(err, ErrFontUnavailable))

	_, err = LoadFontFamily(dir, "")
	assert.True(t, errors.Is(err, ErrFontUnavailable))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Roboto-Regular.ttf"), []byte("ttf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Roboto-Bold.ttf"), []byte("ttf"), 0o644))

	family, err := LoadFontFamily(dir, "Roboto")
	require.NoError(t, err)
	assert.Equal(t, "Roboto", family.Name)
	assert.Equal(t, dir, family.Dir)
	assert.Equal(t, []string{"", "B"}, family.faces())
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
