package template

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrTemplateNotFound reports that a named template source does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// Source resolves a template name to a decoded raster. A name that does not
// exist yields an error wrapping ErrTemplateNotFound.
type Source interface {
	Load(name string) (image.Image, error)
}

// FileSource loads templates from disk. Relative names are resolved against
// Dir when it is set.
type FileSource struct {
	Dir string
}

// Load stats the file first so a missing template is reported before any
// decoding work, then decodes it (PNG, JPEG, GIF, TIFF, BMP, WebP).
func (s FileSource) Load(name string) (image.Image, error) {
	path := name
	if s.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return img, nil
}

// MapSource serves in-memory templates, keyed by name.
type MapSource map[string]image.Image

// Load implements Source.
func (m MapSource) Load(name string) (image.Image, error) {
	img, ok := m[name]
	if !ok || img == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return img, nil
}
