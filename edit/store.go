// Package edit keeps the derived "_edit" copy of an image on disk and runs
// transforms against it. It is the only package of the module touching files.
package edit

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"picedit/pipeline"
	"picedit/raster"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultQuality is the JPEG quality edit copies are written with.
const DefaultQuality = 90

// Store resolves and persists edit copies.
type Store struct {
	// Dir holds the edit copies. Empty means next to the source image.
	Dir string
	// Quality is the JPEG quality, DefaultQuality when zero.
	Quality int
}

// EditPath returns where the edit copy of src lives.
func (s *Store) EditPath(src string) string {
	dir := s.Dir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, EditName(filepath.Base(src)))
}

// EditCopy returns the path of the edit copy of src, creating it from src
// when there is none yet.
func (s *Store) EditCopy(logger *slog.Logger, src string) (string, error) {
	dest := s.EditPath(src)

	exists, err := checkFile(src, dest)
	if err != nil {
		return "", err
	}
	if exists {
		logger.Debug("reusing edit copy", "copy", dest)
		return dest, nil
	}

	buf, _, err := Load(src)
	if err != nil {
		return "", err
	}
	logger.Info("creating edit copy", "copy", dest)
	if err := s.Save(dest, buf); err != nil {
		return "", err
	}
	return dest, nil
}

// Apply runs reqs against the image at path and writes the result back. When a
// transform fails the file is left untouched.
func (s *Store) Apply(logger *slog.Logger, path string, reqs ...pipeline.Request) error {
	buf, _, err := Load(path)
	if err != nil {
		return err
	}

	for _, r := range reqs {
		logger.Debug("applying transform", "op", r.String())
	}
	out, err := pipeline.ApplyAll(buf, reqs...)
	if err != nil {
		return fmt.Errorf("could not transform %q: %w", path, err)
	}

	logger.Info("saving edit copy", "width", out.Width(), "height", out.Height(), "transforms", len(reqs))
	return s.Save(path, out)
}

// Reset deletes the edit copy at path. A missing copy is not an error.
func (s *Store) Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not delete edit copy %q: %w", path, err)
	}
	return nil
}

// Load decodes the image at path.
func Load(path string) (*raster.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "name", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return raster.FromImage(img), format, nil
}

// Save encodes buf to path with the encoder matching its extension. The data
// goes to a temporary file first, so a failed write leaves path as it was.
func (s *Store) Save(path string, buf *raster.Buffer) (err error) {
	outType, ok := formatOf(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}

	destDir, destName := filepath.Split(path)
	if destDir == "" {
		destDir = "."
	}
	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	switch outType {
	case "gif":
		if err = gif.Encode(outFile, buf, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, buf, &jpeg.Options{Quality: s.quality()}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", destName, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, buf); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, buf); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, buf, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
		}
	}

	canRename = true
	return err
}

func (s *Store) quality() int {
	if s.Quality <= 0 {
		return DefaultQuality
	}
	return min(s.Quality, 100)
}

// checkFile verifies src is a regular file and reports whether dest exists.
func checkFile(src, dest string) (bool, error) {
	srcFileInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("cannot stat source file %q: %w", src, err)
	}
	if !srcFileInfo.Mode().IsRegular() {
		return false, fmt.Errorf("cannot edit non-regular file %q: %s", srcFileInfo.Name(), srcFileInfo.Mode().String())
	}
	if _, err := os.Stat(dest); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return false, nil
	}
	return true, nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
