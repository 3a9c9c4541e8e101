package edit

import (
	"path/filepath"
	"strings"
)

const (
	editSuffix = "_edit"
	defaultExt = ".jpg"
)

// EditName returns the name of the derived copy of name: "photo.png" becomes
// "photo_edit.png". Names without an extension, or with one Save cannot
// encode, get ".jpg".
func EditName(name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	if _, ok := formatOf(ext); !ok {
		ext = defaultExt
	}
	return base + editSuffix + ext
}

// IsEditName reports whether name looks like a derived copy.
func IsEditName(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), editSuffix)
}

// formatOf maps a file extension to the encoder Save uses for it.
func formatOf(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg", true
	case ".png":
		return "png", true
	case ".gif":
		return "gif", true
	case ".bmp":
		return "bmp", true
	case ".tif", ".tiff":
		return "tiff", true
	}
	return "", false
}
