package output

import (
	"bytes"
	"strings"
	"testing"
)

type clusterRows [][]string

func (c clusterRows) Headers() []string { return []string{"NAME", "CLUSTER ID", "READY"} }
func (c clusterRows) Rows() [][]string  { return c }

func TestTableFormatter_Format(t *testing.T) {
	tests := []struct {
		name        string
		data        any
		opts        *Options
		contains    []string
		notContains []string
	}{
		{
			name:     "tabular data",
			data:     clusterRows{{"hv-east", "c-m-east", "true"}},
			opts:     &Options{NoColor: true},
			contains: []string{"NAME", "CLUSTER ID", "READY", "hv-east", "c-m-east"},
		},
		{
			name:        "tabular data without headers",
			data:        clusterRows{{"hv-east", "c-m-east", "true"}},
			opts:        &Options{NoColor: true, NoHeaders: true},
			contains:    []string{"hv-east"},
			notContains: []string{"NAME"},
		},
		{
			name:     "empty tabular data",
			data:     clusterRows{},
			contains: []string{"No resources found"},
		},
		{
			name:     "string map sorted by key",
			data:     map[string]string{"ui-source": "bundled", "server-version": "v2.8.0"},
			opts:     &Options{NoColor: true},
			contains: []string{"KEY", "VALUE", "server-version", "v2.8.0", "ui-source", "bundled"},
		},
		{
			name:     "plain value",
			data:     "https://rancher.example.com/dashboard",
			contains: []string{"https://rancher.example.com/dashboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTableFormatter(tt.opts).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestTableFormatter_FormatMapOrder(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"b": "2", "a": "1", "c": "3"}
	if err := NewTableFormatter(&Options{NoColor: true}).Format(&buf, data); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !(strings.Index(out, "a") < strings.Index(out, "b") && strings.Index(out, "b") < strings.Index(out, "c")) {
		t.Errorf("keys not sorted:\n%s", out)
	}
}

func TestTableFormatter_FormatResults(t *testing.T) {
	tests := []struct {
		name        string
		opts        *Options
		contains    []string
		notContains []string
	}{
		{
			name: "default columns",
			opts: &Options{NoColor: true},
			contains: []string{
				"CLUSTER", "PACKAGE", "URL", "STATUS",
				"hv-east", "harvester-1.2.1", "Success",
				"hv-west", "Failed",
				"Summary: 1 successful, 1 failed",
				"hv-west: ui-plugin-index is not set",
			},
			notContains: []string{"DURATION"},
		},
		{
			name:     "wide adds duration and error columns",
			opts:     &Options{NoColor: true, Wide: true},
			contains: []string{"DURATION", "ERROR", "120ms", "ui-plugin-index is not set"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTableFormatter(tt.opts).FormatResults(&buf, testResults()); err != nil {
				t.Fatalf("FormatResults() error = %v", err)
			}

			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestTableFormatter_FormatResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(nil).FormatResults(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("got %q, want No results", buf.String())
	}
}

func TestTableFormatter_FailedRowHasPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&Options{NoColor: true, NoHeaders: true}).FormatResults(&buf, testResults()); err != nil {
		t.Fatal(err)
	}

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "hv-west") {
			if strings.Count(line, "-") < 3 {
				t.Errorf("failed row should show placeholders for package columns: %q", line)
			}
			return
		}
	}
	t.Errorf("no row for hv-west:\n%s", buf.String())
}
