package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/aryankumar/hvui/internal/executor"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a table (kubectl-style)
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Tabular:
		rows := v.Rows()
		if len(rows) == 0 {
			fmt.Fprintln(w, "No resources found")
			return nil
		}
		table := f.createTable(w)
		f.setHeaders(table, v.Headers(), NewColorScheme(w, f.options.NoColor))
		table.AppendBulk(rows)
		table.Render()
	case map[string]string:
		f.formatMap(w, v)
	default:
		fmt.Fprintln(w, v)
	}
	return nil
}

// FormatResults outputs per-cluster results as a table followed by a summary
func (f *TableFormatter) FormatResults(w io.Writer, results []executor.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	columns := resultColumns(results)

	headers := append([]string{"CLUSTER"}, columns...)
	headers = append(headers, "STATUS")
	if f.options.Wide {
		headers = append(headers, "DURATION", "ERROR")
	}

	table := f.createTable(w)
	f.setHeaders(table, headers, colors)
	for _, result := range results {
		table.Append(f.formatResultRow(result, len(columns), colors))
	}
	table.Render()

	f.printSummary(w, results, colors)
	return nil
}

// resultColumns returns the columns contributed by the first successful result
func resultColumns(results []executor.Result) []string {
	for _, r := range results {
		if c, ok := r.Data.(Columnar); ok && r.Error == nil {
			return c.Columns()
		}
	}
	return nil
}

// formatResultRow formats a single result as a table row
func (f *TableFormatter) formatResultRow(result executor.Result, columns int, colors *ColorScheme) []string {
	row := []string{colors.Cluster("%s", result.ClusterName)}

	var values []string
	if c, ok := result.Data.(Columnar); ok && result.Error == nil {
		values = c.Values()
	}
	for i := 0; i < columns; i++ {
		value := "-"
		if i < len(values) && values[i] != "" {
			value = values[i]
		}
		row = append(row, value)
	}

	status := "Success"
	if result.Error != nil {
		status = "Failed"
	}
	row = append(row, colors.StatusColor(result.Error != nil)("%s", status))

	if f.options.Wide {
		errText := ""
		if result.Error != nil {
			errText = result.Error.Error()
		}
		row = append(row, colors.Duration("%s", result.Duration), errText)
	}

	return row
}

// formatMap formats a map as a two-column table, sorted by key
func (f *TableFormatter) formatMap(w io.Writer, data map[string]string) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := f.createTable(w)
	f.setHeaders(table, []string{"KEY", "VALUE"}, NewColorScheme(w, f.options.NoColor))
	for _, k := range keys {
		table.Append([]string{k, data[k]})
	}
	table.Render()
}

func (f *TableFormatter) setHeaders(table *tablewriter.Table, headers []string, colors *ColorScheme) {
	if f.options.NoHeaders {
		return
	}
	if colors.Disabled {
		table.SetHeader(headers)
		return
	}
	colored := make([]string, len(headers))
	for i, h := range headers {
		colored[i] = colors.Header("%s", h)
	}
	table.SetHeader(colored)
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t") // Tab-separated like kubectl
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints a summary line, then one line per failure unless the
// wide ERROR column already shows them
func (f *TableFormatter) printSummary(w io.Writer, results []executor.Result, colors *ColorScheme) {
	summary := executor.Summarize(results)

	failedText := fmt.Sprintf("%d failed", summary.Failed)
	if summary.Failed > 0 {
		failedText = colors.Error("%s", failedText)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %s, %s\n", colors.Success("%d successful", summary.Successful), failedText)

	if f.options.Wide {
		return
	}
	for _, r := range executor.FilterFailed(results) {
		fmt.Fprintf(w, "  %s: %v\n", colors.Cluster("%s", r.ClusterName), r.Error)
	}
}
