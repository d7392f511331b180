package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

// DiscoveryRow is one discovery in a list.
type DiscoveryRow struct {
	Title       string
	MissionName string
	MissionURL  string
	Date        string
	Summary     string
}

// DashboardView summarizes the catalog for the signed-in user.
type DashboardView struct {
	Name           string
	ActiveMissions int
	Satellites     int
	Discoveries    int
	Recent         []DiscoveryRow
}

// DashboardPage renders the dashboard overview.
func DashboardPage(loc Localizer, view DashboardView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.element("p", T(loc, "dashboard.welcome", view.Name), "class", "welcome")
		h.open("dl", "class", "stats")
		stat(h, T(loc, "dashboard.active_missions"), itoa(view.ActiveMissions), routepath.Missions)
		stat(h, T(loc, "dashboard.satellites"), itoa(view.Satellites), routepath.Telemetry)
		stat(h, T(loc, "dashboard.discoveries"), itoa(view.Discoveries), routepath.Discoveries)
		h.close("dl")
		discoveryList(h, loc, view.Recent)
	})
}

func stat(h *htmlWriter, label string, value string, link string) {
	h.open("div", "class", "stat")
	h.element("dt", label)
	h.open("dd")
	h.element("a", value, "href", link)
	h.close("dd")
	h.close("div")
}

// MissionRow is one mission in a list.
type MissionRow struct {
	Name          string
	Status        string
	SatelliteName string
	Launched      string
	URL           string
}

// MissionsPage renders the mission table.
func MissionsPage(loc Localizer, rows []MissionRow) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if len(rows) == 0 {
			h.element("p", T(loc, "missions.empty"), "class", "empty")
			return
		}
		h.open("table", "class", "missions")
		h.raw("<thead><tr>")
		h.element("th", T(loc, "title.missions"))
		h.element("th", T(loc, "missions.status"))
		h.element("th", T(loc, "missions.satellite"))
		h.element("th", T(loc, "missions.launched"))
		h.raw("</tr></thead><tbody>")
		for _, row := range rows {
			h.raw("<tr>")
			h.open("td")
			h.element("a", row.Name, "href", row.URL)
			h.close("td")
			h.open("td")
			h.element("span", row.Status, "class", "status status-"+row.Status)
			h.close("td")
			h.element("td", row.SatelliteName)
			h.element("td", row.Launched)
			h.raw("</tr>")
		}
		h.raw("</tbody>")
		h.close("table")
	})
}

// MissionDetailView is one mission with its discoveries.
type MissionDetailView struct {
	Mission        MissionRow
	Summary        string
	TelemetryURL   string
	ObservatoryURL string
	Discoveries    []DiscoveryRow
}

// MissionDetailPage renders a mission.
func MissionDetailPage(loc Localizer, view MissionDetailView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("dl", "class", "mission-facts")
		fact(h, T(loc, "missions.status"), view.Mission.Status)
		fact(h, T(loc, "missions.satellite"), view.Mission.SatelliteName)
		fact(h, T(loc, "missions.launched"), view.Mission.Launched)
		h.close("dl")
		h.element("p", view.Summary, "class", "summary")
		h.open("div", "class", "actions")
		h.element("a", T(loc, "title.telemetry"), "class", "button", "href", view.TelemetryURL)
		h.element("a", T(loc, "observatory.focus"), "class", "button", "href", view.ObservatoryURL)
		h.close("div")
		h.element("h2", T(loc, "missions.discoveries"))
		discoveryList(h, loc, view.Discoveries)
	})
}

// TelemetryRow is one satellite's current state.
type TelemetryRow struct {
	ID          string
	Name        string
	Radius      string
	Period      string
	Inclination string
	Position    string
	Selected    bool
}

// TelemetryView lists sampled satellite positions.
type TelemetryView struct {
	SampledAt string
	Rows      []TelemetryRow
}

// TelemetryPage renders the telemetry table.
func TelemetryPage(loc Localizer, view TelemetryView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.element("p", T(loc, "telemetry.sampled_at", view.SampledAt), "class", "sampled-at")
		h.open("table", "class", "telemetry")
		h.raw("<thead><tr>")
		for _, key := range []string{"telemetry.satellite", "telemetry.altitude", "telemetry.period", "telemetry.inclination", "telemetry.position"} {
			h.element("th", T(loc, key))
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range view.Rows {
			if row.Selected {
				h.open("tr", "id", "sat-"+row.ID, "class", "selected")
			} else {
				h.open("tr", "id", "sat-"+row.ID)
			}
			h.open("td")
			h.element("a", row.Name, "href", routepath.ObservatoryFocus(row.ID))
			h.close("td")
			h.element("td", row.Radius)
			h.element("td", row.Period)
			h.element("td", row.Inclination)
			h.element("td", row.Position, "class", "mono")
			h.close("tr")
		}
		h.raw("</tbody>")
		h.close("table")
	})
}

// SatelliteOption is a selectable satellite in the observatory.
type SatelliteOption struct {
	ID    string
	Name  string
	Color string
}

// ObservatoryView configures the live viewer.
type ObservatoryView struct {
	StreamURL  string
	Focus      string
	Satellites []SatelliteOption
}

// ObservatoryPage renders the viewer canvas and satellite picker. The
// canvas is driven by /static/app.js over the websocket stream.
func ObservatoryPage(loc Localizer, view ObservatoryView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.element("p", T(loc, "observatory.hint"), "class", "hint")
		h.open("div", "class", "observatory", "data-stream", view.StreamURL, "data-focus", view.Focus)
		h.open("canvas", "id", "observatory-canvas", "width", "960", "height", "540")
		h.close("canvas")
		h.open("ul", "class", "satellite-picker")
		for _, sat := range view.Satellites {
			h.raw("<li>")
			h.open("button", "type", "button", "data-satellite", sat.ID, "style", "--sat-color: "+sat.Color)
			h.text(sat.Name)
			h.close("button")
			h.raw("</li>")
		}
		h.raw("<li>")
		h.element("button", T(loc, "observatory.unfocus"), "type", "button", "data-unfocus", "true")
		h.raw("</li>")
		h.close("ul")
		h.close("div")
	})
}

// DiscoveriesPage renders every discovery, newest first.
func DiscoveriesPage(loc Localizer, rows []DiscoveryRow) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		discoveryList(h, loc, rows)
	})
}

func discoveryList(h *htmlWriter, loc Localizer, rows []DiscoveryRow) {
	if len(rows) == 0 {
		h.element("p", T(loc, "discoveries.empty"), "class", "empty")
		return
	}
	h.open("ul", "class", "discoveries")
	for _, row := range rows {
		h.raw("<li>")
		h.element("h3", row.Title)
		h.open("p", "class", "meta")
		h.element("time", row.Date)
		if row.MissionName != "" {
			h.text(" · ")
			h.element("a", row.MissionName, "href", row.MissionURL)
		}
		h.close("p")
		h.element("p", row.Summary)
		h.raw("</li>")
	}
	h.close("ul")
}

// GlobeRow is one rendered body.
type GlobeRow struct {
	Name    string
	Radius  string
	Texture string
}

// GlobesPage renders the globe gallery.
func GlobesPage(loc Localizer, rows []GlobeRow) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if len(rows) == 0 {
			h.element("p", T(loc, "globes.empty"), "class", "empty")
			return
		}
		h.open("ul", "class", "globes")
		for _, row := range rows {
			h.open("li", "class", "globe", "data-texture", row.Texture)
			h.element("h3", row.Name)
			h.element("p", T(loc, "globes.radius")+": "+row.Radius)
			h.close("li")
		}
		h.close("ul")
	})
}

// ProfileView is the signed-in account.
type ProfileView struct {
	UserID      string
	Username    string
	Email       string
	DisplayName string
	MaskedToken string
}

// ProfilePage renders the account details.
func ProfilePage(loc Localizer, view ProfileView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("dl", "class", "profile")
		fact(h, T(loc, "profile.user_id"), view.UserID)
		fact(h, T(loc, "profile.username"), view.Username)
		fact(h, T(loc, "profile.email"), view.Email)
		fact(h, T(loc, "profile.display_name"), view.DisplayName)
		fact(h, T(loc, "profile.token"), view.MaskedToken)
		h.close("dl")
	})
}

// LanguageChoice is one option of the settings language form.
type LanguageChoice struct {
	Tag    string
	Label  string
	Active bool
}

// SettingsView is the settings form state.
type SettingsView struct {
	Languages []LanguageChoice
}

// SettingsPage renders the language preference form.
func SettingsPage(loc Localizer, view SettingsView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.open("form", "method", "post", "action", routepath.SettingsLanguage, "class", "settings")
		h.open("label", "for", "language")
		h.text(T(loc, "settings.language"))
		h.close("label")
		h.open("select", "id", "language", "name", "language")
		for _, choice := range view.Languages {
			if choice.Active {
				h.open("option", "value", choice.Tag, "selected", "selected")
			} else {
				h.open("option", "value", choice.Tag)
			}
			h.text(choice.Label)
			h.close("option")
		}
		h.close("select")
		h.element("button", T(loc, "settings.save"), "type", "submit", "class", "button primary")
		h.close("form")
	})
}

func fact(h *htmlWriter, label string, value string) {
	h.element("dt", label)
	h.element("dd", value)
}
