// Package parser reads signature tree files.
package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sigsub/internal/model"
	"sigsub/internal/sigfile"
)

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatAuto = ""
)

// Parser reads signature documents and converts them to declarations.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// FormatFor picks the document format from a file extension.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatAuto
}

// ParseFile reads a single signature file.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	decls, err := p.Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &model.File{Path: path, Declarations: decls}, nil
}

// ParseFiles reads several signature files in order.
func (p *Parser) ParseFiles(paths []string) ([]*model.File, error) {
	files := make([]*model.File, 0, len(paths))
	for _, path := range paths {
		f, err := p.ParseFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Parse decodes a document held in memory. FormatAuto tries YAML, then JSON.
func (p *Parser) Parse(data []byte, format string) ([]model.Decl, error) {
	var doc sigfile.Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case FormatAuto:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("unable to parse signatures as YAML or JSON")
			}
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return sigfile.Decode(doc)
}
