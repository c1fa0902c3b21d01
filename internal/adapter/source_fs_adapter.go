// Package adapter contains filesystem and persistence adapters for the
// scanner CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

// defaultExcludes are directory names never descended into.
var defaultExcludes = []string{".git", ".venv", "venv", "node_modules", "__pycache__"}

// scannableExts are the file extensions the pipeline understands.
var scannableExts = map[string]struct{}{
	".py":      {},
	".graphql": {},
	".gql":     {},
}

// SourceFSAdapter abstracts filesystem operations the domain layer relies on
// when scanning user projects, so workflow logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// Get collects candidate files under the roots. Roots support the
	// `dir/...` recursive suffix and `~` expansion. Exclude entries are
	// extra directory or file names skipped during the walk.
	Get(roots []m.Path, exclude []string) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain
// layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter implementation.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects scannable files for the provided roots in sorted order.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, exclude []string) ([]m.Path, error) {
	if len(roots) == 0 {
		return []m.Path{}, nil
	}

	excluded := make(map[string]struct{}, len(defaultExcludes)+len(exclude))
	for _, name := range defaultExcludes {
		excluded[name] = struct{}{}
	}

	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	seen := make(map[string]struct{})

	var files []m.Path

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if scannable(rootPath) {
				addPath(&files, seen, rootPath)
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)

			if info.IsDir() {
				if _, ok := excluded[base]; ok && path != rootPath {
					return filepath.SkipDir
				}

				return nil
			}

			if _, ok := excluded[base]; ok {
				return nil
			}

			if scannable(path) {
				addPath(&files, seen, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// Walk iterates over files under root, optionally descending into
// subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func scannable(path string) bool {
	_, ok := scannableExts[strings.ToLower(filepath.Ext(path))]

	return ok
}

func addPath(files *[]m.Path, seen map[string]struct{}, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	if _, ok := seen[abs]; ok {
		return
	}

	seen[abs] = struct{}{}

	*files = append(*files, m.Path(abs))
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
