package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/backmassage/jxlmigrate/internal/planner"
)

// Discover walks root recursively and returns every regular file, sorted by
// path for deterministic processing order. Size and modification time are
// snapshotted here and never re-read for accounting.
//
// Symlinks inside the tree are not followed, but a root that is itself a
// link is walked through its target. Entries that vanish or cannot be read
// mid-walk are skipped; only a failure on root itself is returned.
func Discover(fsys afero.Fs, root string) ([]SourceFile, error) {
	root, err := followRoot(fsys, root)
	if err != nil {
		return nil, err
	}

	var files []SourceFile
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, SourceFile{
			Path:    path,
			Ext:     planner.Ext(path),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// followRoot resolves root when it is a symlink on the OS filesystem.
// afero.Walk lstats its starting point and would otherwise stop at the link.
func followRoot(fsys afero.Fs, root string) (string, error) {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return root, nil
	}
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return root, nil
	}
	return filepath.EvalSymlinks(root)
}
