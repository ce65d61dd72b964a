// Package osrm implements the route-oracle contract against an OSRM trip
// endpoint.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"edrop/config"
	"edrop/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultBaseURL = "https://router.project-osrm.org"
	defaultTimeout = 15 * time.Second
)

// osrmClient implements service.RouteOracle using OSRM's trip service, which
// solves the visiting order for a set of coordinates.
type osrmClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// tripResponse mirrors the subset of OSRM's /trip response we consume.
type tripResponse struct {
	Code  string `json:"code"`
	Trips []struct {
		Geometry *geojson.Geometry `json:"geometry"`
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
	} `json:"trips"`
	Waypoints []struct {
		WaypointIndex int `json:"waypoint_index"`
	} `json:"waypoints"`
}

// Params holds dependencies for the route oracle, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewRouteOracle creates a RouteOracle backed by an OSRM server.
func NewRouteOracle(params Params) service.RouteOracle {
	baseURL := defaultBaseURL
	timeout := defaultTimeout
	if cfg := params.Config.RouteOracle; cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &osrmClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: params.Logger,
	}
}

// OptimizeTrip asks OSRM for an optimized visiting order over the given
// coordinates. The first coordinate is pinned as the trip start.
func (c *osrmClient) OptimizeTrip(ctx context.Context, coords []orb.Point) (*service.TripPlan, error) {
	if len(coords) < 2 {
		return nil, errors.New("trip optimization needs at least two coordinates")
	}

	pairs := make([]string, 0, len(coords))
	for _, pt := range coords {
		pairs = append(pairs, fmt.Sprintf("%f,%f", pt.Lon(), pt.Lat()))
	}

	url := fmt.Sprintf("%s/trip/v1/driving/%s?source=first&roundtrip=true&overview=full&geometries=geojson",
		c.baseURL, strings.Join(pairs, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "route oracle request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read route oracle response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Route oracle returned non-OK status",
			slog.Int("status", resp.StatusCode),
		)

		return nil, errors.Errorf("route oracle returned status %d", resp.StatusCode)
	}

	var trip tripResponse
	if err := json.Unmarshal(body, &trip); err != nil {
		return nil, errors.Wrap(err, "failed to decode route oracle response")
	}

	if trip.Code != "Ok" || len(trip.Trips) == 0 {
		return nil, errors.Errorf("route oracle found no trip (code %s)", trip.Code)
	}

	waypointOrder := make([]int, 0, len(trip.Waypoints))
	for _, wp := range trip.Waypoints {
		waypointOrder = append(waypointOrder, wp.WaypointIndex)
	}

	return &service.TripPlan{
		WaypointOrder: waypointOrder,
		Geometry:      trip.Trips[0].Geometry,
		TotalDistance: trip.Trips[0].Distance,
		TotalDuration: trip.Trips[0].Duration,
	}, nil
}
