package modules

import (
	"testing"

	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
)

func TestDefaultModulesOrder(t *testing.T) {
	t.Parallel()

	public := DefaultPublicModules(Dependencies{}, module.Dependencies{})
	if len(public) != 1 || public[0].ID() != "public" {
		t.Fatalf("public modules = %d, want the public module only", len(public))
	}

	protected := DefaultProtectedModules(Dependencies{}, module.Dependencies{})
	want := []string{"dashboard", "missions", "telemetry", "observatory", "discoveries", "globes", "profile", "settings"}
	if len(protected) != len(want) {
		t.Fatalf("protected module count = %d, want %d", len(protected), len(want))
	}
	for i, id := range want {
		if got := protected[i].ID(); got != id {
			t.Fatalf("protected module[%d] id = %q, want %q", i, got, id)
		}
	}
}

func TestProtectedModulesCoverProtectedPrefixes(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for _, m := range DefaultProtectedModules(Dependencies{}, module.Dependencies{}) {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
	for _, prefix := range routepath.ProtectedPrefixes() {
		if _, ok := seen[prefix+"/"]; !ok {
			t.Fatalf("protected prefix %q has no module", prefix)
		}
	}
}

func TestModulesReportMissingBackends(t *testing.T) {
	t.Parallel()

	all := append(
		DefaultPublicModules(Dependencies{}, module.Dependencies{}),
		DefaultProtectedModules(Dependencies{}, module.Dependencies{})...,
	)
	for _, m := range all {
		reporter, ok := m.(module.HealthReporter)
		if !ok {
			continue
		}
		if reporter.Healthy() {
			t.Fatalf("module %q reports healthy without a backend", m.ID())
		}
	}
}
