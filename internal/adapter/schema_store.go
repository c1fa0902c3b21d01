package adapter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

// versionPattern matches quarterly schema versions: YYYY-MM with the month
// on a release boundary.
var versionPattern = regexp.MustCompile(`^(\d{4})-(01|04|07|10)$`)

// SchemaStore loads schema snapshot pairs from disk.
type SchemaStore interface {
	// LoadSurface builds one surface from its old and new snapshot files.
	// Files ending in .json are decoded as introspection results, anything
	// else is parsed as SDL.
	LoadSurface(name string, oldPath, newPath m.Path) (schema.Surface, error)
}

type schemaStore struct {
	fs SourceFSAdapter
}

// NewSchemaStore constructs a SchemaStore backed by the filesystem adapter.
func NewSchemaStore(fs SourceFSAdapter) SchemaStore {
	return &schemaStore{fs: fs}
}

func (s *schemaStore) LoadSurface(name string, oldPath, newPath m.Path) (schema.Surface, error) {
	old, err := s.loadSnapshot(oldPath)
	if err != nil {
		return schema.Surface{}, fmt.Errorf("%s old schema: %w", name, err)
	}

	latest, err := s.loadSnapshot(newPath)
	if err != nil {
		return schema.Surface{}, fmt.Errorf("%s new schema: %w", name, err)
	}

	return schema.Surface{Name: name, Old: old, New: latest}, nil
}

func (s *schemaStore) loadSnapshot(path m.Path) (*schema.Snapshot, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	version := strings.TrimSuffix(filepath.Base(string(path)), filepath.Ext(string(path)))

	if strings.EqualFold(filepath.Ext(string(path)), ".json") {
		return schema.FromIntrospection(version, data)
	}

	return schema.FromSDL(version, string(data))
}

// ValidVersion reports whether a version string names a supported quarterly
// schema release.
func ValidVersion(version string) bool {
	match := versionPattern.FindStringSubmatch(version)
	if match == nil {
		return false
	}

	year, err := strconv.Atoi(match[1])
	if err != nil {
		return false
	}

	return year >= 2020 && year <= 2030
}
