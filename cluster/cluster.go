package cluster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/s0up4200/wgapi/apierr"
)

// Cluster is a backend product with its own set of regional API hosts
type Cluster string

const (
	// WOT is World of Tanks (PC)
	WOT Cluster = "wot"
	// WOTB is World of Tanks Blitz
	WOTB Cluster = "wotb"
	// WOTX is World of Tanks console
	WOTX Cluster = "wotx"
	// WOWS is World of Warships
	WOWS Cluster = "wows"
	// WOWP is World of Warplanes
	WOWP Cluster = "wowp"
	// WGN is the Wargaming.net platform (clans, servers)
	WGN Cluster = "wgn"
)

// Region is a deployment of a cluster
type Region string

const (
	RU   Region = "ru"
	EU   Region = "eu"
	NA   Region = "na"
	ASIA Region = "asia"
	PS4  Region = "ps4"
	XBOX Region = "xbox"
)

// allRegions fixes the iteration order used by Regions
var allRegions = []Region{RU, EU, NA, ASIA, PS4, XBOX}

type entry struct {
	apiName string
	hosts   map[Region]string
}

var registry = map[Cluster]entry{
	WOT: {
		apiName: "wot",
		hosts: map[Region]string{
			RU:   "api.worldoftanks.ru",
			EU:   "api.worldoftanks.eu",
			NA:   "api.worldoftanks.com",
			ASIA: "api.worldoftanks.asia",
		},
	},
	WOTB: {
		apiName: "wotb",
		hosts: map[Region]string{
			RU:   "api.wotblitz.ru",
			EU:   "api.wotblitz.eu",
			NA:   "api.wotblitz.com",
			ASIA: "api.wotblitz.asia",
		},
	},
	WOTX: {
		apiName: "wotx",
		hosts: map[Region]string{
			PS4:  "api-ps4-console.worldoftanks.com",
			XBOX: "api-xbox-console.worldoftanks.com",
		},
	},
	WOWS: {
		apiName: "wows",
		hosts: map[Region]string{
			RU:   "api.worldofwarships.ru",
			EU:   "api.worldofwarships.eu",
			NA:   "api.worldofwarships.com",
			ASIA: "api.worldofwarships.asia",
		},
	},
	WOWP: {
		apiName: "wowp",
		hosts: map[Region]string{
			RU: "api.worldofwarplanes.ru",
			EU: "api.worldofwarplanes.eu",
			NA: "api.worldofwarplanes.com",
		},
	},
	WGN: {
		apiName: "wgn",
		hosts: map[Region]string{
			RU:   "api.worldoftanks.ru",
			EU:   "api.worldoftanks.eu",
			NA:   "api.worldoftanks.com",
			ASIA: "api.worldoftanks.asia",
		},
	},
}

// Clusters returns every known cluster in a stable order
func Clusters() []Cluster {
	return []Cluster{WOT, WOTB, WOTX, WOWS, WOWP, WGN}
}

// IsValid checks if the cluster is registered
func (c Cluster) IsValid() bool {
	_, ok := registry[c]
	return ok
}

// APIName returns the first path segment used for this cluster
func (c Cluster) APIName() string {
	return registry[c].apiName
}

// Host returns the API host serving the cluster in region.
// A region the cluster does not serve is an *apierr.Error with apierr.NoSuchRegion.
func (c Cluster) Host(r Region) (string, error) {
	e, ok := registry[c]
	if !ok {
		return "", &apierr.Error{
			Code: apierr.NoSuchRegion,
			Err:  fmt.Errorf("unknown cluster %q", string(c)),
		}
	}
	host, ok := e.hosts[r]
	if !ok {
		return "", &apierr.Error{
			Code: apierr.NoSuchRegion,
			Err:  fmt.Errorf("cluster %s has no host for region %q", c, string(r)),
		}
	}
	return host, nil
}

// Regions returns the regions served by the cluster
func (c Cluster) Regions() []Region {
	e := registry[c]
	regions := make([]Region, 0, len(e.hosts))
	for _, r := range allRegions {
		if _, ok := e.hosts[r]; ok {
			regions = append(regions, r)
		}
	}
	return regions
}

// Serves checks if the cluster has a host in region
func (c Cluster) Serves(r Region) bool {
	return slices.Contains(c.Regions(), r)
}

// String implements fmt.Stringer
func (c Cluster) String() string {
	return string(c)
}

// String implements fmt.Stringer
func (r Region) String() string {
	return string(r)
}

// IsValid checks if the region is known
func (r Region) IsValid() bool {
	return slices.Contains(allRegions, r)
}

// AllRegions returns every known region
func AllRegions() []Region {
	return slices.Clone(allRegions)
}

// ParseCluster parses a cluster name, case-insensitively
func ParseCluster(s string) (Cluster, error) {
	c := Cluster(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown cluster: %s", s)
	}
	return c, nil
}

// ParseRegion parses a region name, case-insensitively. "com" is accepted for NA.
func ParseRegion(s string) (Region, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "com" {
		v = string(NA)
	}
	r := Region(v)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown region: %s", s)
	}
	return r, nil
}
