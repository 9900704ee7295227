package wot

import (
	"context"
	"errors"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/cluster"
	"github.com/s0up4200/wgapi/request"
)

// ErrNoClanIDs is returned when clan details are requested without identifiers
var ErrNoClanIDs = errors.New("at least one clan id is required")

// Clans is the "clans" method block. Clans are shared across games and
// always served by the WGN cluster.
type Clans struct {
	block
}

// NewClans creates the clans block. The cluster of base is replaced by WGN.
func NewClans(c *client.Client, base request.Builder) *Clans {
	return &Clans{block: newBlock(c, base.WithCluster(cluster.WGN), "clans")}
}

// ClanListOptions filters clans/list
type ClanListOptions struct {
	Search   string   `url:"search,omitempty"`
	Limit    int      `url:"limit,omitempty"`
	PageNo   int      `url:"page_no,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

// ClanInfoOptions selects the data returned by clans/info
type ClanInfoOptions struct {
	Fields     []string `url:"fields,comma,omitempty"`
	Extra      []string `url:"extra,comma,omitempty"`
	MembersKey string   `url:"members_key,omitempty"`
	Language   string   `url:"language,omitempty"`
}

// ClanSummary is a clans/list entry
type ClanSummary struct {
	ClanID       int64  `json:"clan_id"`
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Color        string `json:"color"`
	MembersCount int    `json:"members_count"`
	CreatedAt    int64  `json:"created_at"`
}

// ClanMember is one entry of a clan's member list
type ClanMember struct {
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name"`
	Role        string `json:"role"`
	JoinedAt    int64  `json:"joined_at"`
}

// Clan is a clans/info entry
type Clan struct {
	ClanSummary
	Motto           string       `json:"motto"`
	Description     string       `json:"description"`
	LeaderID        int64        `json:"leader_id"`
	LeaderName      string       `json:"leader_name"`
	CreatorID       int64        `json:"creator_id"`
	CreatorName     string       `json:"creator_name"`
	IsClanDisbanded bool         `json:"is_clan_disbanded"`
	OldName         *string      `json:"old_name"`
	OldTag          *string      `json:"old_tag"`
	RenamedAt       *int64       `json:"renamed_at"`
	UpdatedAt       int64        `json:"updated_at"`
	Members         []ClanMember `json:"members"`
}

// List searches clans by name or tag. The envelope's meta carries the total count.
func (c *Clans) List(ctx context.Context, opts ClanListOptions) (*client.Envelope[[]ClanSummary], error) {
	return fetchEnvelope[[]ClanSummary](ctx, c.block, "list", opts)
}

// Info returns clan details keyed by clan id.
// Unknown clans map to nil.
func (c *Clans) Info(ctx context.Context, clanIDs []int64, opts ClanInfoOptions) (map[string]*Clan, error) {
	if len(clanIDs) == 0 {
		return nil, ErrNoClanIDs
	}
	return fetch[map[string]*Clan](ctx, c.block, "info", opts, request.IntListParam("clan_id", clanIDs))
}
