package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Records *int   `json:"records,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports per-component status. The library itself cannot be down;
// redis and the facade are optional and only degrade functionality.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Library.Len()

		components := map[string]componentStatus{
			"library": {
				OK:      true,
				Records: &count,
			},
			"redis": checkRedis(d),
			"genai": checkFacade(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(d, components),
			Components: components,
		})
	}
}

// determineMode summarizes the deployment: "volatile" when persistence was
// never configured, "persistent" when redis is configured and reachable,
// "degraded" when it is configured but down.
func determineMode(d deps.Deps, components map[string]componentStatus) string {
	if d.RedisClient == nil {
		return "volatile"
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}
	return "persistent"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "library-is-volatile",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-paused",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
	}
}

func checkFacade(d deps.Deps) componentStatus {
	if !d.FacadeConfigured {
		return componentStatus{
			OK:     false,
			Mode:   "unconfigured",
			Impact: "generation-returns-error-text",
			Error:  "api key missing",
		}
	}
	return componentStatus{
		OK:   true,
		Mode: "configured",
	}
}
