package file

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindByExt returns every regular file under dir whose extension matches ext
// (case-insensitive, leading dot optional).
func FindByExt(dir, ext string) ([]string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}
