// Package scan lists the candidate files of a source directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// List returns the regular files directly inside dir, sorted by name.
// Subdirectories are not descended into. Symlinks are resolved with Stat;
// links to directories and dangling links are left out.
func List(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if !info.Mode().IsRegular() {
			if info.Mode()&os.ModeSymlink == 0 {
				continue
			}
			target, err := fs.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	return files, nil
}
