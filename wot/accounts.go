package wot

import (
	"context"
	"errors"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/request"
)

// Search types accepted by account/list
const (
	SearchStartsWith = "startswith"
	SearchExact      = "exact"
)

// ErrNoAccountIDs is returned when a lookup is called without identifiers
var ErrNoAccountIDs = errors.New("at least one account id is required")

// Accounts is the "account" method block
type Accounts struct {
	block
}

// NewAccounts creates the account block. base must carry cluster and region.
func NewAccounts(c *client.Client, base request.Builder) *Accounts {
	return &Accounts{block: newBlock(c, base, "account")}
}

// AccountListOptions filters account/list
type AccountListOptions struct {
	Search   string   `url:"search"`
	Type     string   `url:"type,omitempty"`
	Limit    int      `url:"limit,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

// AccountInfoOptions selects the extra data returned by account/info
type AccountInfoOptions struct {
	Fields   []string `url:"fields,comma,omitempty"`
	Extra    []string `url:"extra,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

// Player is an account/list entry
type Player struct {
	AccountID int64  `json:"account_id"`
	Nickname  string `json:"nickname"`
}

// Statistics holds the counters shared by every statistics section
type Statistics struct {
	Battles              int64 `json:"battles"`
	Wins                 int64 `json:"wins"`
	Losses               int64 `json:"losses"`
	Draws                int64 `json:"draws"`
	SurvivedBattles      int64 `json:"survived_battles"`
	Frags                int64 `json:"frags"`
	Spotted              int64 `json:"spotted"`
	Shots                int64 `json:"shots"`
	Hits                 int64 `json:"hits"`
	DamageDealt          int64 `json:"damage_dealt"`
	DamageReceived       int64 `json:"damage_received"`
	CapturePoints        int64 `json:"capture_points"`
	DroppedCapturePoints int64 `json:"dropped_capture_points"`
	XP                   int64 `json:"xp"`
	BattleAvgXP          int64 `json:"battle_avg_xp"`
	HitsPercents         int64 `json:"hits_percents"`
}

// Maxima are the per-battle records reported for some sections
type Maxima struct {
	MaxXP           int64  `json:"max_xp"`
	MaxXPTankID     *int64 `json:"max_xp_tank_id"`
	MaxDamage       int64  `json:"max_damage"`
	MaxDamageTankID *int64 `json:"max_damage_tank_id"`
	MaxFrags        int64  `json:"max_frags"`
	MaxFragsTankID  *int64 `json:"max_frags_tank_id"`
}

// DetailedStatistics is a statistics section that also reports records
type DetailedStatistics struct {
	Statistics
	Maxima
}

// AccountStatistics groups the statistics sections of an account.
// Sections the server does not return stay nil.
type AccountStatistics struct {
	All        DetailedStatistics  `json:"all"`
	Clan       *Statistics         `json:"clan,omitempty"`
	Company    *Statistics         `json:"company,omitempty"`
	Historical *Statistics         `json:"historical,omitempty"`
	Regular    *DetailedStatistics `json:"regular_team,omitempty"`
	Stronghold *DetailedStatistics `json:"stronghold_skirmish,omitempty"`
	GlobalMap  *DetailedStatistics `json:"globalmap,omitempty"`
	TreesCut   int64               `json:"trees_cut"`
	Frags      map[string]int64    `json:"frags,omitempty"`
}

// PrivateData is only returned when a valid access token is sent
type PrivateData struct {
	Gold             int64   `json:"gold"`
	Credits          int64   `json:"credits"`
	FreeXP           int64   `json:"free_xp"`
	IsPremium        bool    `json:"is_premium"`
	PremiumExpiresAt *int64  `json:"premium_expires_at"`
	BanTime          *int64  `json:"ban_time"`
	BanInfo          *string `json:"ban_info"`
	BattleLifeTime   int64   `json:"battle_life_time"`
}

// AccountInfo is an account/info entry
type AccountInfo struct {
	AccountID      int64             `json:"account_id"`
	Nickname       string            `json:"nickname"`
	ClanID         *int64            `json:"clan_id"`
	GlobalRating   int64             `json:"global_rating"`
	ClientLanguage string            `json:"client_language"`
	CreatedAt      int64             `json:"created_at"`
	UpdatedAt      int64             `json:"updated_at"`
	LastBattleTime int64             `json:"last_battle_time"`
	LogoutAt       int64             `json:"logout_at"`
	Statistics     AccountStatistics `json:"statistics"`
	Private        *PrivateData      `json:"private"`
}

// Achievements is an account/achievements entry
type Achievements struct {
	Achievements map[string]int64 `json:"achievements"`
	Frags        map[string]int64 `json:"frags"`
	MaxSeries    map[string]int64 `json:"max_series"`
}

// List searches players by nickname
func (a *Accounts) List(ctx context.Context, opts AccountListOptions) ([]Player, error) {
	return fetch[[]Player](ctx, a.block, "list", opts)
}

// Info returns account details keyed by account id.
// Unknown accounts map to nil.
func (a *Accounts) Info(ctx context.Context, accountIDs []int64, opts AccountInfoOptions) (map[string]*AccountInfo, error) {
	if len(accountIDs) == 0 {
		return nil, ErrNoAccountIDs
	}
	return fetch[map[string]*AccountInfo](ctx, a.block, "info", opts, request.IntListParam("account_id", accountIDs))
}

// Achievements returns achievements keyed by account id
func (a *Accounts) Achievements(ctx context.Context, accountIDs []int64) (map[string]*Achievements, error) {
	if len(accountIDs) == 0 {
		return nil, ErrNoAccountIDs
	}
	return fetch[map[string]*Achievements](ctx, a.block, "achievements", nil, request.IntListParam("account_id", accountIDs))
}
