package wot

import (
	"context"
	"strings"

	"github.com/s0up4200/wgapi/client"
	"github.com/s0up4200/wgapi/request"
)

// Season statuses accepted by globalmap/seasons
const (
	SeasonPlanned  = "PLANNED"
	SeasonActive   = "ACTIVE"
	SeasonFinished = "FINISHED"
)

// GlobalMap is the "globalmap" method block
type GlobalMap struct {
	block
}

// NewGlobalMap creates the global map block. base must carry cluster and region.
func NewGlobalMap(c *client.Client, base request.Builder) *GlobalMap {
	return &GlobalMap{block: newBlock(c, base, "globalmap")}
}

// PageOptions pages through list methods
type PageOptions struct {
	Limit    int      `url:"limit,omitempty"`
	PageNo   int      `url:"page_no,omitempty"`
	Fields   []string `url:"fields,comma,omitempty"`
	Language string   `url:"language,omitempty"`
}

// SeasonOptions filters globalmap/seasons
type SeasonOptions struct {
	PageOptions
	SeasonID string `url:"season_id,omitempty"`
	Status   string `url:"status,omitempty"`
}

// Front is a globalmap/fronts entry
type Front struct {
	FrontID             string `json:"front_id"`
	FrontName           string `json:"front_name"`
	MinVehicleLevel     int    `json:"min_vehicle_level"`
	MaxVehicleLevel     int    `json:"max_vehicle_level"`
	ProvincesCount      int    `json:"provinces_count"`
	AvailableLanding    bool   `json:"available_landing"`
	IsEvent             bool   `json:"is_event"`
	IsActive            bool   `json:"is_active"`
	MaxTanksPerDivision *int   `json:"max_tanks_per_division"`
}

// Season is a globalmap/seasons entry
type Season struct {
	SeasonID   string  `json:"season_id"`
	SeasonName string  `json:"season_name"`
	Status     string  `json:"status"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Fronts     []Front `json:"fronts"`
}

// Fronts lists the fronts of the current map
func (g *GlobalMap) Fronts(ctx context.Context, opts PageOptions) ([]Front, error) {
	return fetch[[]Front](ctx, g.block, "fronts", opts)
}

// Seasons lists campaigns, optionally filtered by status.
// Status is sent upper-case regardless of the case it was given in.
func (g *GlobalMap) Seasons(ctx context.Context, opts SeasonOptions) (*client.Envelope[[]Season], error) {
	status := opts.Status
	opts.Status = ""

	var extra []request.Param
	if status != "" {
		extra = append(extra, request.ExactParam("status", strings.ToUpper(status)))
	}
	return fetchEnvelope[[]Season](ctx, g.block, "seasons", opts, extra...)
}
