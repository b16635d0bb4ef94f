// Package generator writes signature trees.
package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"

	"sigsub/internal/config"
	"sigsub/internal/model"
	"sigsub/internal/sigfile"
)

// Generator renders declarations in the configured format.
type Generator struct {
	config   *config.Config
	template *template.Template
}

// New creates a new Generator.
func New(cfg *config.Config) *Generator {
	return &Generator{
		config: cfg,
	}
}

// LoadTemplate loads a template from file.
func (g *Generator) LoadTemplate(path string) error {
	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs()).
		ParseFiles(path)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	g.template = tmpl
	return nil
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	File         *model.File    // The subtracted tree
	Declarations []model.Decl   // Shorthand for File.Declarations
	Config       *config.Config // Configuration
}

// Generate writes file in the configured output format.
func (g *Generator) Generate(file *model.File, w io.Writer) error {
	return g.GenerateFormat(file, w, g.config.Options.Format)
}

// GenerateFormat writes file in the given format.
func (g *Generator) GenerateFormat(file *model.File, w io.Writer, format string) error {
	switch format {
	case config.FormatYAML:
		return encodeYAML(file.Declarations, w)
	case config.FormatJSON:
		return encodeJSON(file.Declarations, w)
	case config.FormatTemplate:
		if g.template == nil {
			return fmt.Errorf("no template loaded")
		}
		data := &TemplateData{
			File:         file,
			Declarations: file.Declarations,
			Config:       g.config,
		}
		if err := g.template.Execute(w, data); err != nil {
			return fmt.Errorf("executing template: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

func encodeYAML(decls []model.Decl, w io.Writer) error {
	doc, err := sigfile.Encode(decls)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func encodeJSON(decls []model.Decl, w io.Writer) error {
	doc, err := sigfile.Encode(decls)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
