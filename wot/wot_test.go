package wot

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/wgapi/apierr"
	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/cluster"
	"github.com/s0up4200/wgapi/internal/testutil"
	"github.com/s0up4200/wgapi/request"
)

func setup(t *testing.T, handler http.HandlerFunc) (*client.Client, request.Builder) {
	t.Helper()
	_, httpClient := testutil.NewAPIServer(t, handler)
	c, err := client.New(zerolog.Nop(), client.WithHTTPClient(httpClient), client.WithApplicationID("demo"))
	require.NoError(t, err)
	return c, request.New().WithCluster(cluster.WOT).WithRegion(cluster.EU)
}

func TestAccountsList(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api.worldoftanks.eu", r.Host)
		assert.Equal(t, "/wot/account/list/", r.URL.Path)
		assert.Equal(t, "limit=10&search=tanker&type=exact&application_id=demo", r.URL.RawQuery)
		testutil.WriteOK(t, w, []Player{{AccountID: 500, Nickname: "Tanker"}}, 1)
	})

	players, err := NewAccounts(c, base).List(context.Background(), AccountListOptions{
		Search: "Tanker",
		Type:   SearchExact,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, []Player{{AccountID: 500, Nickname: "Tanker"}}, players)
}

func TestAccountsInfo(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wot/account/info/", r.URL.Path)
		assert.Equal(t, "1,2,3", r.URL.Query().Get("account_id"))
		assert.Equal(t, "private.credits,statistics.all", r.URL.Query().Get("fields"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "ok",
			"meta": {"count": 3},
			"data": {
				"1": {
					"account_id": 1,
					"nickname": "first",
					"clan_id": null,
					"statistics": {"all": {"battles": 100, "wins": 55, "max_xp": 2400, "max_xp_tank_id": 1}, "trees_cut": 7},
					"private": {"credits": 1000, "ban_time": null}
				},
				"2": {
					"account_id": 2,
					"nickname": "second",
					"clan_id": 77,
					"statistics": {"all": {"battles": 5}, "clan": {"battles": 3}},
					"private": {"credits": 5, "ban_time": 1700000000, "ban_info": "chat"}
				},
				"3": null
			}
		}`)
	})

	info, err := NewAccounts(c, base).Info(context.Background(), []int64{1, 2, 3}, AccountInfoOptions{
		Fields: []string{"private.credits", "statistics.all"},
	})
	require.NoError(t, err)
	require.Len(t, info, 3)

	first := info["1"]
	require.NotNil(t, first)
	assert.Nil(t, first.ClanID)
	assert.Equal(t, int64(100), first.Statistics.All.Battles)
	assert.Equal(t, int64(55), first.Statistics.All.Wins)
	assert.Equal(t, int64(2400), first.Statistics.All.MaxXP)
	require.NotNil(t, first.Statistics.All.MaxXPTankID)
	assert.Equal(t, int64(7), first.Statistics.TreesCut)
	assert.Nil(t, first.Statistics.Clan)
	require.NotNil(t, first.Private)
	assert.Nil(t, first.Private.BanTime)

	second := info["2"]
	require.NotNil(t, second)
	require.NotNil(t, second.ClanID)
	assert.Equal(t, int64(77), *second.ClanID)
	require.NotNil(t, second.Statistics.Clan)
	assert.Equal(t, int64(3), second.Statistics.Clan.Battles)
	require.NotNil(t, second.Private.BanTime)
	assert.Equal(t, int64(1700000000), *second.Private.BanTime)
	require.NotNil(t, second.Private.BanInfo)
	assert.Equal(t, "chat", *second.Private.BanInfo)

	third, ok := info["3"]
	assert.True(t, ok)
	assert.Nil(t, third)
}

func TestAccountsRequireIDs(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	accounts := NewAccounts(c, base)

	_, err := accounts.Info(context.Background(), nil, AccountInfoOptions{})
	assert.ErrorIs(t, err, ErrNoAccountIDs)

	_, err = accounts.Achievements(context.Background(), []int64{})
	assert.ErrorIs(t, err, ErrNoAccountIDs)
}

func TestAccountsAchievements(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wot/account/achievements/", r.URL.Path)
		assert.Equal(t, "account_id=9&application_id=demo", r.URL.RawQuery)
		testutil.WriteOK(t, w, map[string]any{
			"9": map[string]any{
				"achievements": map[string]int{"medalKay": 4},
				"max_series":   map[string]int{"armorPiercer": 12},
			},
		}, 1)
	})

	got, err := NewAccounts(c, base).Achievements(context.Background(), []int64{9})
	require.NoError(t, err)
	require.NotNil(t, got["9"])
	assert.Equal(t, int64(4), got["9"].Achievements["medalKay"])
	assert.Equal(t, int64(12), got["9"].MaxSeries["armorPiercer"])
	assert.Nil(t, got["9"].Frags)
}

func TestAccountsRemoteError(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteError(t, w, 407, "NOT_ENOUGH_SEARCH_LENGTH", "search", "a")
	})

	_, err := NewAccounts(c, base).List(context.Background(), AccountListOptions{Search: "a"})
	require.Error(t, err)
	assert.True(t, apierr.HasCode(err, apierr.NotEnoughFieldLength))
}

func TestClansUseWGN(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api.worldoftanks.eu", r.Host)

		switch r.URL.Path {
		case "/wgn/clans/list/":
			assert.Equal(t, "limit=2&search=wg&application_id=demo", r.URL.RawQuery)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"status":"ok","meta":{"count":2,"total":40},"data":[{"clan_id":1,"tag":"WG"},{"clan_id":2,"tag":"WGX"}]}`)
		case "/wgn/clans/info/":
			assert.Equal(t, "1", r.URL.Query().Get("clan_id"))
			testutil.WriteOK(t, w, map[string]any{
				"1": map[string]any{
					"clan_id":   1,
					"tag":       "WG",
					"leader_id": 10,
					"old_name":  nil,
					"members": []map[string]any{
						{"account_id": 10, "account_name": "boss", "role": "commander"},
					},
				},
			}, 1)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	clans := NewClans(c, base)

	list, err := clans.List(context.Background(), ClanListOptions{Search: "WG", Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "WGX", list.Data[1].Tag)
	require.NotNil(t, list.Meta.Total)
	assert.Equal(t, 40, *list.Meta.Total)

	info, err := clans.Info(context.Background(), []int64{1}, ClanInfoOptions{})
	require.NoError(t, err)
	clan := info["1"]
	require.NotNil(t, clan)
	assert.Equal(t, int64(1), clan.ClanID)
	assert.Equal(t, "WG", clan.Tag)
	assert.Nil(t, clan.OldName)
	require.Len(t, clan.Members, 1)
	assert.Equal(t, "commander", clan.Members[0].Role)

	_, err = clans.Info(context.Background(), nil, ClanInfoOptions{})
	assert.ErrorIs(t, err, ErrNoClanIDs)
}

func TestGlobalMap(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wot/globalmap/fronts/":
			assert.Equal(t, "limit=5&page_no=2&application_id=demo", r.URL.RawQuery)
			testutil.WriteOK(t, w, []Front{{FrontID: "season_1_bg", MaxVehicleLevel: 10, IsActive: true}}, 1)
		case "/wot/globalmap/seasons/":
			assert.Equal(t, "status=ACTIVE&limit=1&application_id=demo", r.URL.RawQuery)
			testutil.WriteOK(t, w, []Season{{SeasonID: "s1", Status: SeasonActive}}, 1)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	gm := NewGlobalMap(c, base)

	fronts, err := gm.Fronts(context.Background(), PageOptions{Limit: 5, PageNo: 2})
	require.NoError(t, err)
	require.Len(t, fronts, 1)
	assert.True(t, fronts[0].IsActive)
	assert.Nil(t, fronts[0].MaxTanksPerDivision)

	seasons, err := gm.Seasons(context.Background(), SeasonOptions{PageOptions: PageOptions{Limit: 1}, Status: "active"})
	require.NoError(t, err)
	require.Len(t, seasons.Data, 1)
	assert.Equal(t, SeasonActive, seasons.Data[0].Status)
	assert.Equal(t, 1, seasons.Meta.Count)
}

func TestServers(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api.worldoftanks.com", r.Host)
		assert.Equal(t, "/wgn/servers/info/", r.URL.Path)
		assert.Equal(t, "wot,wows", r.URL.Query().Get("game"))
		testutil.WriteOK(t, w, map[string][]ServerInfo{
			"wot":  {{Server: "NA", PlayersOnline: 1200}, {Server: "NA2", PlayersOnline: 300}},
			"wows": {{Server: "NA", PlayersOnline: 500}},
		}, 2)
	})

	info, err := NewServers(c, base.WithRegion(cluster.NA)).Info(context.Background(), ServerOptions{Game: []string{"wot", "wows"}})
	require.NoError(t, err)
	assert.Len(t, info["wot"], 2)
	assert.Equal(t, int64(2000), Online(info))
}

func TestBlockDoesNotChangeBase(t *testing.T) {
	c, base := setup(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteOK(t, w, map[string][]ServerInfo{}, 0)
	})

	_, err := NewServers(c, base).Info(context.Background(), ServerOptions{})
	require.NoError(t, err)

	assert.Equal(t, cluster.WOT, base.Cluster())
	assert.Empty(t, base.MethodBlock())
	assert.Empty(t, base.Params())
}
