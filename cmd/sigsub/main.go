// sigsub removes from signature trees everything that other signature
// trees already declare.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"sigsub/internal/config"
	"sigsub/internal/generator"
	"sigsub/internal/index"
	"sigsub/internal/model"
	"sigsub/internal/parser"
	"sigsub/internal/sigfile"
	"sigsub/internal/subtract"
)

var (
	subtrahends    stringList
	configFile     string
	outputFile     string
	format         string
	templateFile   string
	write          bool
	strictAccessor bool
	showDiff       bool
	verbose        bool
	showHelp       bool
)

func init() {
	flag.Var(&subtrahends, "subtrahend", "Subtrahend file (repeatable, comma-separated)")
	flag.Var(&subtrahends, "s", "Subtrahend file (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	flag.StringVar(&outputFile, "o", "", "Output file (shorthand)")

	flag.StringVar(&format, "format", "", "Output format: yaml, json or template")
	flag.StringVar(&format, "f", "", "Output format (shorthand)")

	flag.StringVar(&templateFile, "template", "", "Output template file (implies -format template)")
	flag.StringVar(&templateFile, "t", "", "Output template file (shorthand)")

	flag.BoolVar(&write, "write", false, "Rewrite each minuend file in place")
	flag.BoolVar(&write, "w", false, "Rewrite each minuend file in place (shorthand)")

	flag.BoolVar(&strictAccessor, "strict-accessor", false, "Drop attr accessors only when both reader and writer exist")
	flag.BoolVar(&showDiff, "diff", false, "Print a diff of each minuend to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `sigsub - subtract signature trees

Usage:
    sigsub -s <subtrahend.yaml> [options] <minuend.yaml>...

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # Print what generated.yaml declares beyond core.yaml
    sigsub -s core.yaml generated.yaml

    # Subtract several trees and keep only new declarations in place
    sigsub -s core.yaml,stdlib.yaml -w generated/*.yaml

    # Show what would be removed
    sigsub -s core.yaml -diff -o /dev/null generated.yaml

    # Render the result through a template
    sigsub -s core.yaml -t examples/rbs.tmpl generated.yaml

`)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	// Load configuration
	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if format != "" {
		cfg.Options.Format = format
	}
	if templateFile != "" {
		cfg.Options.Template = templateFile
		if format == "" {
			cfg.Options.Format = config.FormatTemplate
		}
	}
	cfg.Options.Subtrahends = append(cfg.Options.Subtrahends, subtrahends...)
	if strictAccessor {
		cfg.Options.StrictAccessor = true
	}
	if write {
		cfg.Options.Write = true
	}

	if flag.NArg() == 0 {
		return fmt.Errorf("at least one minuend file is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return execute(cfg, flag.Args(), runOptions{
		output:  outputFile,
		diff:    showDiff,
		verbose: verbose,
	}, os.Stdout, os.Stderr)
}

type runOptions struct {
	output  string
	diff    bool
	verbose bool
}

// execute subtracts the configured subtrahends from every minuend file.
func execute(cfg *config.Config, minuends []string, opts runOptions, stdout, stderr io.Writer) error {
	colored := isTerminal(stderr)
	removedColor := color.New(color.FgRed)
	if colored {
		removedColor.EnableColor()
	} else {
		removedColor.DisableColor()
	}

	// Build the subtrahend index
	p := parser.New()
	subFiles, err := p.ParseFiles(cfg.Options.Subtrahends)
	if err != nil {
		return fmt.Errorf("parsing subtrahend: %w", err)
	}
	env, err := index.Build(subFiles...)
	if err != nil {
		return err
	}

	if opts.verbose {
		st := env.Stats()
		fmt.Fprintf(stderr, "Indexed %d subtrahend files: %d classes/modules, %d interfaces, %d constants, %d aliases, %d globals\n",
			len(subFiles), st.Containers, st.Interfaces, st.Constants,
			st.TypeAliases+st.ClassAliases+st.ModuleAliases, st.Globals)
	}

	subOpts := subtract.Options{StrictAccessor: cfg.Options.StrictAccessor}
	if opts.verbose {
		subOpts.OnRemove = func(owner model.TypeName, n model.Node) {
			fmt.Fprintf(stderr, "  - %s (%s)\n", removedColor.Sprint(removedLabel(owner, n)), sigfile.KindOf(n))
		}
	}
	sub := subtract.New(env, subOpts)

	gen := generator.New(cfg)
	if cfg.Options.Format == config.FormatTemplate {
		if err := gen.LoadTemplate(cfg.Options.Template); err != nil {
			return err
		}
	}

	var combined []model.Decl
	for _, path := range minuends {
		file, err := p.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parsing minuend: %w", err)
		}
		if opts.verbose {
			fmt.Fprintf(stderr, "Subtracting from %s\n", path)
		}

		result, err := sub.Subtract(file.Declarations, nil)
		if err != nil {
			return fmt.Errorf("subtracting from %s: %w", path, err)
		}

		if opts.diff {
			if err := writeDiff(gen, stderr, path, file.Declarations, result, colored); err != nil {
				return err
			}
		}

		if cfg.Options.Write {
			if err := writeInPlace(gen, path, result, opts.verbose, stderr); err != nil {
				return err
			}
			continue
		}
		combined = append(combined, result...)
	}

	if cfg.Options.Write {
		return nil
	}

	// Determine output destination
	output := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if err := gen.Generate(&model.File{Path: opts.output, Declarations: combined}, output); err != nil {
		return err
	}

	if opts.verbose && opts.output != "" {
		fmt.Fprintf(stderr, "Generated output to %s\n", opts.output)
	}

	return nil
}

// writeInPlace replaces path with result, or deletes it when nothing is left.
func writeInPlace(gen *generator.Generator, path string, result []model.Decl, verbose bool, stderr io.Writer) error {
	if len(result) == 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		if verbose {
			fmt.Fprintf(stderr, "Removed %s\n", path)
		}
		return nil
	}

	fileFormat := parser.FormatFor(path)
	if fileFormat == parser.FormatAuto {
		fileFormat = config.FormatYAML
	}
	var buf bytes.Buffer
	if err := gen.GenerateFormat(&model.File{Path: path, Declarations: result}, &buf, fileFormat); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(stderr, "Wrote %s\n", path)
	}
	return nil
}

func writeDiff(gen *generator.Generator, w io.Writer, path string, before, after []model.Decl, colored bool) error {
	var a, b bytes.Buffer
	if err := gen.GenerateFormat(&model.File{Declarations: before}, &a, config.FormatYAML); err != nil {
		return err
	}
	if err := gen.GenerateFormat(&model.File{Declarations: after}, &b, config.FormatYAML); err != nil {
		return err
	}
	fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path)
	return generator.WriteDiff(w, a.Bytes(), b.Bytes(), colored)
}

func removedLabel(owner model.TypeName, n model.Node) string {
	if owner.Name == "" {
		return sigfile.NameOf(n)
	}
	if _, ok := n.(model.Decl); ok {
		return owner.String() + "::" + sigfile.NameOf(n)
	}
	return owner.String() + "#" + sigfile.NameOf(n)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stringList is a flag that may be repeated and holds comma-separated values.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(s string) error {
	*l = append(*l, parseCommaSeparated(s)...)
	return nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
