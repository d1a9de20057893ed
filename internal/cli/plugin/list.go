package plugin

import (
	"strconv"
	"time"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/plugin"
	"github.com/spf13/cobra"
)

// descriptorList renders as a table
type descriptorList []plugin.Descriptor

func (l descriptorList) Headers() []string {
	return []string{"NAME", "PRODUCT", "VERSION", "BUILTIN", "LOADED", "URL"}
}

func (l descriptorList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, d := range l {
		loaded := "-"
		if !d.LoadedAt.IsZero() {
			loaded = d.LoadedAt.Local().Format(time.RFC3339)
		}
		url := d.URL
		if url == "" {
			url = "-"
		}
		rows = append(rows, []string{d.Name, d.Product(), d.Version(), strconv.FormatBool(d.Builtin), loaded, url})
	}
	return rows
}

// newListCmd creates the plugin list command
func newListCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List cached and built-in plugins",
		Long:    `List the plugins in the local cache and the configured built-in plugins, newest version first.`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(a)
		},
	}

	return cmd
}

func runList(a *app.App) error {
	store, err := a.OpenStore(nil)
	if err != nil {
		return err
	}
	return a.Print(descriptorList(store.List()))
}
