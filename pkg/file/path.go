package file

import (
	"path/filepath"
	"strings"
)

// ReplaceExt swaps the extension of path with ext. A missing leading dot on
// ext is tolerated; an empty ext strips the extension.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	old := filepath.Ext(path)
	return strings.TrimSuffix(path, old) + ext
}
