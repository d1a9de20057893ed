package output

import (
	"fmt"
	"io"

	"github.com/aryankumar/hvui/internal/executor"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// Format outputs a single data item as one YAML document.
// Errors from flushing the encoder are reported too.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(data); err != nil {
		_ = encoder.Close()
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}

// FormatResults outputs per-cluster results as a YAML sequence
func (f *YAMLFormatter) FormatResults(w io.Writer, results []executor.Result) error {
	return f.Format(w, Documents(results))
}
