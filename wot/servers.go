package wot

import (
	"context"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/cluster"
	"github.com/s0up4200/wgapi/request"
)

// Servers is the "servers" method block of the WGN cluster
type Servers struct {
	block
}

// NewServers creates the servers block. The cluster of base is replaced by WGN.
func NewServers(c *client.Client, base request.Builder) *Servers {
	return &Servers{block: newBlock(c, base.WithCluster(cluster.WGN), "servers")}
}

// ServerOptions filters servers/info. Game takes cluster API names
// such as "wot" or "wows"; empty means every game.
type ServerOptions struct {
	Game     []string `url:"game,comma,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

// ServerInfo is the online count of one game server
type ServerInfo struct {
	Server        string `json:"server"`
	PlayersOnline int64  `json:"players_online"`
}

// Info returns the online population keyed by game
func (s *Servers) Info(ctx context.Context, opts ServerOptions) (map[string][]ServerInfo, error) {
	return fetch[map[string][]ServerInfo](ctx, s.block, "info", opts)
}

// Online sums the players online across every server of every returned game
func Online(info map[string][]ServerInfo) int64 {
	var total int64
	for _, servers := range info {
		for _, s := range servers {
			total += s.PlayersOnline
		}
	}
	return total
}
