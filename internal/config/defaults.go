// Package config provides configuration handling for sigsub.
package config

// Output formats.
const (
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatTemplate = "template"
)

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Format: FormatYAML,
	}
}
