package cluster

import (
	"context"
	"sort"
	"strconv"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/spf13/cobra"
)

// clusterInfo is the listed view of a Harvester cluster
type clusterInfo struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`
	ClusterID string `json:"clusterId,omitempty" yaml:"clusterId,omitempty"`
	Ready     bool   `json:"ready" yaml:"ready"`
}

// clusterList renders as a table
type clusterList []clusterInfo

func (l clusterList) Headers() []string {
	return []string{"NAME", "CLUSTER ID", "READY"}
}

func (l clusterList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		id := c.ClusterID
		if id == "" {
			id = "<pending>"
		}
		rows = append(rows, []string{c.Name, id, strconv.FormatBool(c.Ready)})
	}
	return rows
}

// newListCmd creates the cluster list command
func newListCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Harvester clusters",
		Long: `List the Harvester clusters imported into Rancher with their management
cluster id and readiness. A cluster is ready when its Connected condition is
true, or its Ready condition when it has no Connected condition.`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), a)
		},
	}

	return cmd
}

func runList(ctx context.Context, a *app.App) error {
	ctx, cancel := a.WithTimeout(ctx)
	defer cancel()

	env, err := a.Connect(ctx)
	if err != nil {
		return err
	}

	records, err := env.Client.ListHarvesterClusters(ctx)
	if err != nil {
		return err
	}

	list := make(clusterList, 0, len(records))
	for _, rec := range records {
		c := env.Session.Cluster(rec)
		list = append(list, clusterInfo{
			Name:      rec.Name,
			Namespace: rec.Namespace,
			ClusterID: rec.ClusterName,
			Ready:     c.IsReady(),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	return a.Print(list)
}
