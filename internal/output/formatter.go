package output

import (
	"fmt"
	"io"

	"github.com/aryankumar/hvui/internal/executor"
)

// Format represents the output format type
type Format string

const (
	// FormatTable outputs data in a table format (kubectl-style)
	FormatTable Format = "table"
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named by s
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: table, json, yaml)", s)
	}
}

// Formatter writes command results in one output format
type Formatter interface {
	// Format outputs a single data item to the writer
	Format(w io.Writer, data any) error

	// FormatResults outputs per-cluster task results to the writer
	FormatResults(w io.Writer, results []executor.Result) error
}

// Tabular is implemented by values that render as table rows
type Tabular interface {
	Headers() []string
	Rows() [][]string
}

// Columnar is implemented by task result data that contributes table columns
type Columnar interface {
	Columns() []string
	Values() []string
}

// Option is a functional option for configuring formatters
type Option func(*Options)

// Options holds configuration for formatters
type Options struct {
	// NoColor disables color output
	NoColor bool

	// NoHeaders disables table headers
	NoHeaders bool

	// Wide enables wide output with additional columns
	Wide bool
}

// WithNoColor disables color output
func WithNoColor(noColor bool) Option {
	return func(o *Options) {
		o.NoColor = noColor
	}
}

// WithNoHeaders disables table headers
func WithNoHeaders(noHeaders bool) Option {
	return func(o *Options) {
		o.NoHeaders = noHeaders
	}
}

// WithWide enables wide output
func WithWide(wide bool) Option {
	return func(o *Options) {
		o.Wide = wide
	}
}

// NewFormatter creates a new formatter based on the specified format
func NewFormatter(format Format, opts ...Option) Formatter {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	default:
		return NewTableFormatter(options)
	}
}

// ResultDocument is the structured form of a task result
type ResultDocument struct {
	Cluster  string `json:"cluster" yaml:"cluster"`
	Status   string `json:"status" yaml:"status"`
	Duration string `json:"duration" yaml:"duration"`
	Data     any    `json:"data,omitempty" yaml:"data,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Documents converts results for structured encoders
func Documents(results []executor.Result) []ResultDocument {
	docs := make([]ResultDocument, len(results))
	for i, result := range results {
		doc := ResultDocument{
			Cluster:  result.ClusterName,
			Duration: result.Duration.String(),
		}
		if result.Error != nil {
			doc.Status = "failed"
			doc.Error = result.Error.Error()
		} else {
			doc.Status = "success"
			doc.Data = result.Data
		}
		docs[i] = doc
	}
	return docs
}
