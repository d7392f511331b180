// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Login        = "/login"
	Signup       = "/signup"
	Logout       = "/logout"
	AuthCallback = "/auth/callback"
	Health       = "/up"
	StaticPrefix = "/static/"

	Dashboard          = "/dashboard"
	DashboardPrefix    = "/dashboard/"
	Missions           = "/missions"
	MissionsPrefix     = "/missions/"
	MissionPattern     = MissionsPrefix + "{missionID}"
	MissionRestPattern = MissionsPrefix + "{missionID}/{rest...}"
	Telemetry          = "/telemetry"
	TelemetryPrefix    = "/telemetry/"
	Observatory        = "/observatory"
	ObservatoryPrefix  = "/observatory/"
	ObservatoryStream  = "/observatory/ws"
	Discoveries        = "/discoveries"
	DiscoveriesPrefix  = "/discoveries/"
	Globes             = "/globes"
	GlobesPrefix       = "/globes/"
	Profile            = "/profile"
	ProfilePrefix      = "/profile/"
	Settings           = "/settings"
	SettingsPrefix     = "/settings/"
	SettingsLanguage   = "/settings/language"

	// CallbackSessionParam carries the backend session id on the auth callback.
	CallbackSessionParam = "session"
)

// ProtectedPrefixes lists every authenticated surface in sidebar order.
func ProtectedPrefixes() []string {
	return []string{Dashboard, Missions, Telemetry, Observatory, Discoveries, Globes, Profile, Settings}
}

// AuthOnlyPrefixes lists views that only make sense before sign-in.
func AuthOnlyPrefixes() []string {
	return []string{Login, Signup, AuthCallback}
}

// Mission returns the mission detail route.
func Mission(missionID string) string {
	return MissionsPrefix + escapeSegment(missionID)
}

// TelemetryFor returns the telemetry route focused on one satellite.
func TelemetryFor(satelliteID string) string {
	satelliteID = strings.TrimSpace(satelliteID)
	if satelliteID == "" {
		return Telemetry
	}
	return Telemetry + "?" + url.Values{"satellite": {satelliteID}}.Encode()
}

// ObservatoryFocus returns the observatory route with a satellite preselected.
func ObservatoryFocus(satelliteID string) string {
	satelliteID = strings.TrimSpace(satelliteID)
	if satelliteID == "" {
		return Observatory
	}
	return Observatory + "?" + url.Values{"focus": {satelliteID}}.Encode()
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
