package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is one resolved lint/format target.
type File struct {
	Path    string // relative to project root, forward slashes
	AbsPath string // absolute path on disk
	Size    int64
}

// UnknownFileError reports an explicit file argument that is not part
// of the project's discoverable source files. It aborts the run before
// any rule executes.
type UnknownFileError struct {
	Path string
}

func (e *UnknownFileError) Error() string {
	return fmt.Sprintf("%s is not part of the project", e.Path)
}

// Resolve computes the final set of files to process for one invocation.
//
// Precedence: explicit files (every one must be discoverable, else
// UnknownFileError) > tsconfig "files" (order preserved) >
// include globs minus exclude globs. Exclude always wins on overlap.
// The computation is pure over the current directory listing.
func Resolve(cfg *Config, rootDir, targetDir string, explicit []string) ([]File, error) {
	if targetDir == "" {
		targetDir = rootDir
	}

	if len(explicit) > 0 {
		return resolveExplicit(cfg, rootDir, targetDir, explicit)
	}

	if len(cfg.Files) > 0 {
		return resolveListed(cfg, rootDir)
	}

	return discover(cfg, rootDir, targetDir)
}

// resolveExplicit validates each requested file against the project's
// discoverable set and returns exactly the requested files, in order.
func resolveExplicit(cfg *Config, rootDir, targetDir string, explicit []string) ([]File, error) {
	known, err := discoverable(cfg, rootDir)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(explicit))
	for _, arg := range explicit {
		abs := arg
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(targetDir, arg)
		}
		rel, err := filepath.Rel(rootDir, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, &UnknownFileError{Path: arg}
		}
		rel = filepath.ToSlash(rel)
		if !known[rel] {
			return nil, &UnknownFileError{Path: arg}
		}
		files = append(files, newFile(rootDir, rel))
	}
	return files, nil
}

// resolveListed returns the tsconfig "files" list exactly as given.
// Include/exclude are ignored when the list is non-empty.
func resolveListed(cfg *Config, rootDir string) ([]File, error) {
	files := make([]File, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		rel := strings.TrimPrefix(filepath.ToSlash(f), "./")
		files = append(files, newFile(rootDir, rel))
	}
	return files, nil
}

// discover walks targetDir and keeps regular files whose root-relative
// path matches the include patterns and none of the exclude patterns.
func discover(cfg *Config, rootDir, targetDir string) ([]File, error) {
	include := cfg.IncludePatterns()

	var files []File
	err := filepath.WalkDir(targetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			base := filepath.Base(rel)
			// Hidden directories and node_modules never participate.
			if (strings.HasPrefix(base, ".") && base != ".") || base == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if !matchAny(include, rel) || matchAny(cfg.Exclude, rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, File{Path: rel, AbsPath: path, Size: info.Size()})
		return nil
	})

	return files, err
}

// discoverable returns the set of root-relative paths an explicit file
// argument is allowed to name: the "files" list when present, otherwise
// everything matched by the include rules.
func discoverable(cfg *Config, rootDir string) (map[string]bool, error) {
	known := make(map[string]bool)

	if len(cfg.Files) > 0 {
		for _, f := range cfg.Files {
			known[strings.TrimPrefix(filepath.ToSlash(f), "./")] = true
		}
		return known, nil
	}

	all, err := discover(cfg, rootDir, rootDir)
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		known[f.Path] = true
	}
	return known, nil
}

func newFile(rootDir, rel string) File {
	abs := filepath.Join(rootDir, filepath.FromSlash(rel))
	f := File{Path: rel, AbsPath: abs}
	if info, err := os.Stat(abs); err == nil {
		f.Size = info.Size()
	}
	return f
}
