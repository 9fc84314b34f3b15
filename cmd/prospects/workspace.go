package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

// mappingFile is the on-disk form of a column mapping. The columns command
// writes it and the --mapping flag reads it back.
type mappingFile struct {
	Sheet   string            `yaml:"sheet,omitempty"`
	Sheets  []string          `yaml:"sheets,omitempty"`
	Columns []string          `yaml:"columns,omitempty"`
	Mapping map[string]string `yaml:"mapping"`
}

func newMappingFile(state core.SessionState) mappingFile {
	m := mappingFile{
		Sheet:   state.Sheet,
		Sheets:  state.Sheets,
		Columns: state.Columns,
		Mapping: make(map[string]string, len(core.Fields)),
	}
	for _, f := range core.Fields {
		m.Mapping[string(f)] = state.Mapping.Column(f)
	}
	return m
}

func (m mappingFile) columnMapping() core.ColumnMapping {
	out := make(core.ColumnMapping, len(m.Mapping))
	for field, column := range m.Mapping {
		if column != "" {
			out[core.Field(field)] = column
		}
	}
	return out
}

func readMappingFile(path string) (*mappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	var m mappingFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return &m, nil
}

// workspace is a single-session service holding one loaded file.
type workspace struct {
	svc   *core.Service
	state core.SessionState
}

// openWorkspace loads path into a fresh session. When mappingPath is set its
// mapping replaces the guessed one and its sheet is used unless sheet is set.
func openWorkspace(ctx context.Context, path, sheet, mappingPath string) (*workspace, error) {
	var saved *mappingFile
	if mappingPath != "" {
		m, err := readMappingFile(mappingPath)
		if err != nil {
			return nil, err
		}
		saved = m
		if sheet == "" {
			sheet = m.Sheet
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	svc := core.NewService(core.Options{MaxSessions: 1})
	state := svc.NewSession(ctx)
	state, err = svc.Upload(ctx, state.ID, filepath.Base(path), data, sheet)
	if err != nil {
		return nil, err
	}

	if saved != nil {
		if state, err = svc.SetMapping(ctx, state.ID, saved.columnMapping()); err != nil {
			return nil, err
		}
	}
	return &workspace{svc: svc, state: state}, nil
}
