// Package modules composes the web feature modules.
package modules

import (
	"time"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/public"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/settings"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backends and shared config required to compose
// the module registry. Each backend is typed as the narrow interface the
// consuming module declares.
//
// Request-scoped resolvers are passed separately as module.Dependencies since
// the server derives them after construction.
type Dependencies struct {
	// AuthGateway backs login, signup, the auth callback and logout.
	AuthGateway public.AuthGateway
	// ProfileGateway stores account preferences.
	ProfileGateway settings.ProfileGateway
	// Catalog publishes the observatory catalog snapshot.
	Catalog catalogview.Source

	// Guard decides post-login destinations; nil uses the default routes.
	Guard        *redirectguard.Guard
	SchemePolicy requestmeta.SchemePolicy
	FrameRate    int
	Clock        func() time.Time

	// SessionChanged runs after a session was revoked or its user updated,
	// so cached session lookups can be dropped.
	SessionChanged func(sessionID string)
}
