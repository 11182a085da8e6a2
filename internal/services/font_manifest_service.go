package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alimgiray/evidence/internal/document"
	"github.com/spf13/viper"
)

var (
	// ErrFontManifestNotFound means the manifest file cannot be opened.
	ErrFontManifestNotFound = errors.New("cannot open font manifest")
	// ErrFontManifestMalformed means the manifest was read but is unusable.
	ErrFontManifestMalformed = errors.New("bad font manifest, recover an example from the repository")
)

// FontManifestService reads the font manifest ({"font": "<family>"}) and
// resolves the family from the files next to it.
type FontManifestService struct {
	manifestPath string
}

func NewFontManifestService(manifestPath string) *FontManifestService {
	return &FontManifestService{manifestPath: manifestPath}
}

// FontName returns the family name declared by the manifest.
func (s *FontManifestService) FontName() (string, error) {
	if _, err := os.Stat(s.manifestPath); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrFontManifestNotFound, s.manifestPath, err)
	}

	manifest := viper.New()
	manifest.SetConfigFile(s.manifestPath)
	if err := manifest.ReadInConfig(); err != nil {
		return "", fmt.Errorf("%w (%s): %v", ErrFontManifestMalformed, s.manifestPath, err)
	}

	font := manifest.GetString("font")
	if font == "" {
		return "", fmt.Errorf("%w (%s): missing \"font\" entry", ErrFontManifestMalformed, s.manifestPath)
	}
	return font, nil
}

// Resolve loads the font family named by the manifest.
func (s *FontManifestService) Resolve() (document.FontFamily, error) {
	name, err := s.FontName()
	if err != nil {
		return document.FontFamily{}, err
	}
	return document.LoadFontFamily(filepath.Dir(s.manifestPath), name)
}
