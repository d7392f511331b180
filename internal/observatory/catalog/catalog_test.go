package catalog

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalCatalog = `satellites:
  - id: sat-a
    name: Sat A
    radius: 3
    period: 60s
    inclination: 10
    phase: 0
    color: "#fff"
missions:
  - id: m-1
    name: First
    status: active
    satellite: sat-a
    launched: 2020-01-02
    summary: first mission
discoveries:
  - id: d-old
    title: Older
    mission: m-1
    date: 2021-01-01
    summary: older
  - id: d-new
    title: Newer
    mission: m-1
    date: 2022-01-01
    summary: newer
globes:
  - id: earth
    name: Earth
    radius: 2
    texture: earth.jpg
`

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(cat.Satellites) == 0 || len(cat.Missions) == 0 || len(cat.Globes) == 0 {
		t.Fatalf("default catalog is sparse: %+v", cat)
	}
	mission, ok := cat.Mission("42")
	if !ok {
		t.Fatal("expected mission 42 in default catalog")
	}
	if _, ok := cat.Satellite(mission.Satellite); !ok {
		t.Fatalf("mission 42 satellite %q missing", mission.Satellite)
	}
}

func TestParseDecodesDurationsAndDates(t *testing.T) {
	t.Parallel()

	cat, err := Parse(strings.NewReader(minimalCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sat, ok := cat.Satellite("sat-a")
	if !ok || sat.Period != time.Minute {
		t.Fatalf("satellite = %+v, %v", sat, ok)
	}
	mission, _ := cat.Mission("m-1")
	if got := mission.Launched.Format("2006-01-02"); got != "2020-01-02" {
		t.Fatalf("launched = %s", got)
	}
}

func TestDiscoveriesNewestFirst(t *testing.T) {
	t.Parallel()

	cat, err := Parse(strings.NewReader(minimalCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := cat.DiscoveriesFor("m-1")
	if len(got) != 2 || got[0].ID != "d-new" || got[1].ID != "d-old" {
		t.Fatalf("DiscoveriesFor = %+v", got)
	}
	if recent := cat.RecentDiscoveries(); recent[0].ID != "d-new" {
		t.Fatalf("RecentDiscoveries = %+v", recent)
	}
	if cat.Discoveries[0].ID != "d-old" {
		t.Fatal("RecentDiscoveries must not reorder the snapshot")
	}
	if len(cat.MissionsByStatus(MissionActive)) != 1 || len(cat.MissionsByStatus(MissionCompleted)) != 0 {
		t.Fatal("unexpected MissionsByStatus result")
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{name: "unknown field", mutate: func(s string) string { return s + "extra: true\n" }, wantErr: "extra"},
		{name: "duplicate satellite", mutate: func(s string) string {
			return strings.Replace(s, "missions:", "  - id: sat-a\n    radius: 1\n    period: 1s\nmissions:", 1)
		}, wantErr: "duplicate id"},
		{name: "unknown satellite ref", mutate: func(s string) string {
			return strings.Replace(s, "satellite: sat-a", "satellite: ghost", 1)
		}, wantErr: "unknown satellite"},
		{name: "unknown mission ref", mutate: func(s string) string {
			return strings.Replace(s, "mission: m-1", "mission: ghost", 1)
		}, wantErr: "unknown mission"},
		{name: "bad status", mutate: func(s string) string {
			return strings.Replace(s, "status: active", "status: lost", 1)
		}, wantErr: "unknown status"},
		{name: "zero period", mutate: func(s string) string {
			return strings.Replace(s, "period: 60s", "period: 0s", 1)
		}, wantErr: "period must be positive"},
		{name: "empty", mutate: func(string) string { return "" }, wantErr: "empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(tc.mutate(minimalCatalog)))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFromFileAndDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load(file) error = %v", err)
	}
	if len(cat.Satellites) != 1 {
		t.Fatalf("satellites = %d", len(cat.Satellites))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if cat, err := Load(" "); err != nil || len(cat.Satellites) < 2 {
		t.Fatalf("Load(blank) = %v, %v", cat, err)
	}
}

func TestHolderReloadKeepsPreviousSnapshotOnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	holder, err := NewHolder(path, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewHolder() error = %v", err)
	}
	before := holder.Current()

	if err := os.WriteFile(path, []byte("satellites: [\n"), 0o644); err != nil {
		t.Fatalf("write broken catalog: %v", err)
	}
	if err := holder.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if holder.Current() != before {
		t.Fatal("broken reload replaced the snapshot")
	}
}

func TestHolderWatchPicksUpChanges(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimalCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	var logs bytes.Buffer
	holder, err := NewHolder(path, log.New(&logs, "", 0))
	if err != nil {
		t.Fatalf("NewHolder() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- holder.Watch(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	}()

	updated := strings.Replace(minimalCatalog, "name: Sat A", "name: Sat A Prime", 1)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			t.Fatalf("rewrite catalog: %v", err)
		}
		time.Sleep(250 * time.Millisecond)
		if sat, _ := holder.Current().Satellite("sat-a"); sat.Name == "Sat A Prime" {
			return
		}
	}
	t.Fatalf("catalog was not reloaded; logs: %s", logs.String())
}

func TestStaticHolderWatchReturnsOnCancel(t *testing.T) {
	t.Parallel()

	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	holder := NewStaticHolder(cat)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := holder.Watch(ctx); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if holder.Current() != cat {
		t.Fatal("static holder must expose the given catalog")
	}
}
