package modules

import (
	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/dashboard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/discoveries"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/globes"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/missions"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/observatory"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/profile"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/public"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/settings"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/telemetry"
)

// DefaultPublicModules returns the unauthenticated modules.
func DefaultPublicModules(deps Dependencies, res module.Dependencies) []Module {
	opts := []public.Option{
		public.WithSchemePolicy(deps.SchemePolicy),
		public.WithLanguage(res.ResolveLanguage),
		public.WithSessionEnded(deps.SessionChanged),
	}
	if deps.Guard != nil {
		opts = append(opts, public.WithGuard(*deps.Guard))
	}
	if deps.AuthGateway != nil {
		opts = append(opts, public.WithGateway(deps.AuthGateway))
	}
	return []Module{public.New(opts...)}
}

// DefaultProtectedModules returns the authenticated modules in sidebar order.
func DefaultProtectedModules(deps Dependencies, res module.Dependencies) []Module {
	telemetryOpts := []telemetry.Option{
		telemetry.WithCatalog(deps.Catalog),
		telemetry.WithDependencies(res),
	}
	observatoryOpts := []observatory.Option{
		observatory.WithCatalog(deps.Catalog),
		observatory.WithDependencies(res),
		observatory.WithFrameRate(deps.FrameRate),
		observatory.WithSchemePolicy(deps.SchemePolicy),
	}
	if deps.Clock != nil {
		telemetryOpts = append(telemetryOpts, telemetry.WithClock(deps.Clock))
		observatoryOpts = append(observatoryOpts, observatory.WithClock(deps.Clock))
	}
	settingsOpts := []settings.Option{
		settings.WithDependencies(res),
		settings.WithSchemePolicy(deps.SchemePolicy),
		settings.WithProfileUpdated(deps.SessionChanged),
	}
	if deps.ProfileGateway != nil {
		settingsOpts = append(settingsOpts, settings.WithGateway(deps.ProfileGateway))
	}

	return []Module{
		dashboard.New(dashboard.WithCatalog(deps.Catalog), dashboard.WithDependencies(res)),
		missions.New(missions.WithCatalog(deps.Catalog), missions.WithDependencies(res)),
		telemetry.New(telemetryOpts...),
		observatory.New(observatoryOpts...),
		discoveries.New(discoveries.WithCatalog(deps.Catalog), discoveries.WithDependencies(res)),
		globes.New(globes.WithCatalog(deps.Catalog), globes.WithDependencies(res)),
		profile.New(res),
		settings.New(settingsOpts...),
	}
}
