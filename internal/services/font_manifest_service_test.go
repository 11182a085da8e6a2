package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFontManifestName(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		file     string
		content  string
		expected string
		wantErr  error
	}{
		{name: "JSON manifest", file: "manifest.json", content: `{"font": "Roboto"}`, expected: "Roboto"},
		{name: "YAML manifest", file: "manifest.yaml", content: "font: LiberationSans\n", expected: "LiberationSans"},
		{name: "Extra keys ignored", file: "extra.json", content: `{"font": "Roboto", "size": 12}`, expected: "Roboto"},
		{name: "Invalid JSON", file: "broken.json", content: `{"font": `, wantErr: ErrFontManifestMalformed},
		{name: "Missing font key", file: "empty.json", content: `{"family": "Roboto"}`, wantErr: ErrFontManifestMalformed},
		{name: "Font is blank", file: "blank.json", content: `{"font": ""}`, wantErr: ErrFontManifestMalformed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			writeFile(t, path, tc.content)

			name, err := NewFontManifestService(path).FontName()
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func TestFontManifestNotFound(t *testing.T) {
	service := NewFontManifestService(filepath.Join(t.TempDir(), "missing.json"))

	_, err := service.FontName()
	assert.True(t, errors.Is(err, ErrFontManifestNotFound))

	_, err = service.Resolve()
	assert.True(t, errors.Is(err, ErrFontManifestNotFound))
}

func TestFontManifestResolve(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")
	writeFile(t, manifest, `{"font": "Roboto"}`)

	_, err := NewFontManifestService(manifest).Resolve()
	assert.True(t, errors.Is(err, document.ErrFontUnavailable), "got %v", err)

	writeFile(t, filepath.Join(dir, "Roboto-Regular.ttf"), "")

	family, err := NewFontManifestService(manifest).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "Roboto", family.Name)
	assert.Equal(t, dir, family.Dir)
}
