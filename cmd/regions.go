package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wgapi/cluster"
)

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List clusters, regions and their API hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		clusters := cluster.Clusters()
		if clusterFlag != "" {
			c, err := cluster.ParseCluster(clusterFlag)
			if err != nil {
				return err
			}
			clusters = []cluster.Cluster{c}
		}
		return printRegions(cmd.OutOrStdout(), clusters)
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

func printRegions(out io.Writer, clusters []cluster.Cluster) error {
	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintf(out, "%-10s %-8s %s\n", "CLUSTER", "REGION", "HOST")
	fmt.Fprintln(out, strings.Repeat("━", 60))

	for _, c := range clusters {
		for _, r := range c.Regions() {
			host, err := c.Host(r)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-10s %-8s %s\n", c, r, host)
		}
	}
	fmt.Fprintln(out, strings.Repeat("━", 60))
	return nil
}
