package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/cluster"
	"github.com/s0up4200/wgapi/request"
	"github.com/s0up4200/wgapi/wot"
)

var statusGames []string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show players online on every game server",
	Long: `Query servers/info in every region concurrently and print the number of
players online per server. Regions that fail are reported but do not stop the others.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		regions := cluster.WGN.Regions()
		if regionFlag != "" {
			r, err := cluster.ParseRegion(regionFlag)
			if err != nil {
				return err
			}
			regions = []cluster.Region{r}
		}

		base := request.New().WithScheme(request.Scheme(cfg.API.Scheme))
		results := collectStatus(cmd.Context(), c, base, regions, statusGames, cfg.Status.Concurrency)
		printStatus(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringSliceVarP(&statusGames, "game", "g", nil, "games to include (wot, wotb, wows, ...), all if empty")
	rootCmd.AddCommand(statusCmd)
}

// regionStatus is the servers/info result of one region
type regionStatus struct {
	Region cluster.Region
	Games  map[string][]wot.ServerInfo
	Err    error
}

// collectStatus queries every region with bounded concurrency.
// Results keep the order of regions.
func collectStatus(ctx context.Context, c *client.Client, base request.Builder, regions []cluster.Region, games []string, concurrency int) []regionStatus {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]regionStatus, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, r := range regions {
		g.Go(func() error {
			info, err := wot.NewServers(c, base.WithRegion(r)).Info(ctx, wot.ServerOptions{Game: games})
			if err != nil {
				logger.Warn().Err(err).Str("region", r.String()).Msg("Failed to get server status")
			}

			// Each goroutine owns its slot
			results[i] = regionStatus{Region: r, Games: info, Err: err}

			// Continue with the other regions
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func printStatus(out io.Writer, results []regionStatus) {
	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintf(out, "%-8s %-8s %-12s %s\n", "REGION", "GAME", "SERVER", "ONLINE")
	fmt.Fprintln(out, strings.Repeat("━", 60))

	var total int64
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "%-8s %s\n", res.Region, "unavailable: "+res.Err.Error())
			continue
		}

		games := make([]string, 0, len(res.Games))
		for game := range res.Games {
			games = append(games, game)
		}
		slices.Sort(games)

		for _, game := range games {
			for _, s := range res.Games[game] {
				fmt.Fprintf(out, "%-8s %-8s %-12s %s\n", res.Region, game, s.Server, humanize.Comma(s.PlayersOnline))
			}
		}
		total += wot.Online(res.Games)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintf(out, "Total players online: %s\n", humanize.Comma(total))
}
