package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
)

type componentStatus struct {
	OK       bool   `json:"ok"`
	Upstream string `json:"upstream,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Impact   string `json:"impact,omitempty"`
	Error    string `json:"error,omitempty"`
}

type infraResponse struct {
	RelayMode  string                     `json:"relay_mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra describes the relay's upstream wiring. It says whether the platform
// key is configured, never what it is.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"chat_directory": {
				OK:       d.Chat != nil,
				Upstream: d.ChatDirectoryURL,
			},
			"platform_directory": platformStatus(d),
			"avatar_proxy": {
				OK: d.Avatars != nil,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			RelayMode:  determineRelayMode(components),
			Components: components,
		})
	}
}

func platformStatus(d deps.Deps) componentStatus {
	if d.Platform == nil || !d.Platform.Configured() {
		return componentStatus{
			OK:       false,
			Upstream: d.PlatformAPIURL,
			Mode:     "degraded",
			Impact:   "platform-lookups-disabled",
			Error:    "api key not configured",
		}
	}
	return componentStatus{
		OK:       true,
		Upstream: d.PlatformAPIURL,
		Mode:     "optimal",
	}
}

func determineRelayMode(components map[string]componentStatus) string {
	if chat, ok := components["chat_directory"]; ok && !chat.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "operational"
}
