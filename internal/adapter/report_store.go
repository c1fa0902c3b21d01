package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
)

const (
	findingsFile = "findings.json"
	blocksFile   = "blocks.json"
)

// ReportStore persists and retrieves scan results.
type ReportStore interface {
	SaveFindings(dir m.Path, findings []m.Finding) error
	LoadFindings(dir m.Path) ([]m.Finding, error)
	SaveBlocks(dir m.Path, blocks []m.ExtractedBlock) error
}

type reportStore struct{}

// NewReportStore constructs a ReportStore writing JSON files.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveFindings(dir m.Path, findings []m.Finding) error {
	return writeJSON(dir, findingsFile, findings)
}

func (rs *reportStore) LoadFindings(dir m.Path) ([]m.Finding, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), findingsFile))
	if err != nil {
		return nil, err
	}

	var findings []m.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", findingsFile, err)
	}

	return findings, nil
}

func (rs *reportStore) SaveBlocks(dir m.Path, blocks []m.ExtractedBlock) error {
	return writeJSON(dir, blocksFile, blocks)
}

func writeJSON(dir m.Path, name string, v any) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(string(dir), name), data, 0o600)
}
