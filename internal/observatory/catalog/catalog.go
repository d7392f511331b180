// Package catalog loads the observatory catalog: satellites with their orbit
// parameters, the missions flown on them, mission discoveries, and globes.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Satellite is one orbiting object shown in the observatory.
type Satellite struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Radius is the orbit radius in scene units.
	Radius float64 `yaml:"radius"`
	// Period is the time for one full revolution.
	Period time.Duration `yaml:"period"`
	// Inclination and Phase are in degrees.
	Inclination float64 `yaml:"inclination"`
	Phase       float64 `yaml:"phase"`
	Color       string  `yaml:"color"`
}

// Mission status values.
const (
	MissionActive    = "active"
	MissionPlanned   = "planned"
	MissionCompleted = "completed"
)

// Mission is a program flown on a satellite.
type Mission struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Status    string    `yaml:"status"`
	Satellite string    `yaml:"satellite"`
	Launched  time.Time `yaml:"launched"`
	Summary   string    `yaml:"summary"`
}

// Discovery is a finding attributed to a mission.
type Discovery struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Mission string    `yaml:"mission"`
	Date    time.Time `yaml:"date"`
	Summary string    `yaml:"summary"`
}

// Globe is a body rendered in the globes gallery.
type Globe struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Radius  float64 `yaml:"radius"`
	Texture string  `yaml:"texture"`
}

// Catalog is an immutable snapshot; callers must not mutate it.
type Catalog struct {
	Satellites  []Satellite `yaml:"satellites"`
	Missions    []Mission   `yaml:"missions"`
	Discoveries []Discovery `yaml:"discoveries"`
	Globes      []Globe     `yaml:"globes"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()
	cat, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cat Catalog
	if err := decoder.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks ids are unique and references resolve.
func (c *Catalog) Validate() error {
	if c == nil {
		return errors.New("catalog is required")
	}
	var problems []error

	satellites := make(map[string]bool, len(c.Satellites))
	for i, sat := range c.Satellites {
		switch {
		case strings.TrimSpace(sat.ID) == "":
			problems = append(problems, fmt.Errorf("satellites[%d]: id is required", i))
		case satellites[sat.ID]:
			problems = append(problems, fmt.Errorf("satellites[%d]: duplicate id %q", i, sat.ID))
		}
		satellites[sat.ID] = true
		if sat.Radius <= 0 {
			problems = append(problems, fmt.Errorf("satellite %q: radius must be positive", sat.ID))
		}
		if sat.Period <= 0 {
			problems = append(problems, fmt.Errorf("satellite %q: period must be positive", sat.ID))
		}
	}

	missions := make(map[string]bool, len(c.Missions))
	for i, mission := range c.Missions {
		switch {
		case strings.TrimSpace(mission.ID) == "":
			problems = append(problems, fmt.Errorf("missions[%d]: id is required", i))
		case missions[mission.ID]:
			problems = append(problems, fmt.Errorf("missions[%d]: duplicate id %q", i, mission.ID))
		}
		missions[mission.ID] = true
		switch mission.Status {
		case MissionActive, MissionPlanned, MissionCompleted:
		default:
			problems = append(problems, fmt.Errorf("mission %q: unknown status %q", mission.ID, mission.Status))
		}
		if mission.Satellite != "" && !satellites[mission.Satellite] {
			problems = append(problems, fmt.Errorf("mission %q: unknown satellite %q", mission.ID, mission.Satellite))
		}
	}

	discoveries := make(map[string]bool, len(c.Discoveries))
	for i, discovery := range c.Discoveries {
		switch {
		case strings.TrimSpace(discovery.ID) == "":
			problems = append(problems, fmt.Errorf("discoveries[%d]: id is required", i))
		case discoveries[discovery.ID]:
			problems = append(problems, fmt.Errorf("discoveries[%d]: duplicate id %q", i, discovery.ID))
		}
		discoveries[discovery.ID] = true
		if !missions[discovery.Mission] {
			problems = append(problems, fmt.Errorf("discovery %q: unknown mission %q", discovery.ID, discovery.Mission))
		}
	}

	globes := make(map[string]bool, len(c.Globes))
	for i, globe := range c.Globes {
		switch {
		case strings.TrimSpace(globe.ID) == "":
			problems = append(problems, fmt.Errorf("globes[%d]: id is required", i))
		case globes[globe.ID]:
			problems = append(problems, fmt.Errorf("globes[%d]: duplicate id %q", i, globe.ID))
		}
		globes[globe.ID] = true
		if globe.Radius <= 0 {
			problems = append(problems, fmt.Errorf("globe %q: radius must be positive", globe.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(problems...))
	}
	return nil
}

// Satellite returns the satellite with id.
func (c *Catalog) Satellite(id string) (Satellite, bool) {
	if c == nil {
		return Satellite{}, false
	}
	for _, sat := range c.Satellites {
		if sat.ID == id {
			return sat, true
		}
	}
	return Satellite{}, false
}

// Mission returns the mission with id.
func (c *Catalog) Mission(id string) (Mission, bool) {
	if c == nil {
		return Mission{}, false
	}
	for _, mission := range c.Missions {
		if mission.ID == id {
			return mission, true
		}
	}
	return Mission{}, false
}

// MissionsByStatus returns missions with status, in catalog order.
func (c *Catalog) MissionsByStatus(status string) []Mission {
	if c == nil {
		return nil
	}
	var out []Mission
	for _, mission := range c.Missions {
		if mission.Status == status {
			out = append(out, mission)
		}
	}
	return out
}

// DiscoveriesFor returns a mission's discoveries, newest first.
func (c *Catalog) DiscoveriesFor(missionID string) []Discovery {
	if c == nil {
		return nil
	}
	var out []Discovery
	for _, discovery := range c.Discoveries {
		if discovery.Mission == missionID {
			out = append(out, discovery)
		}
	}
	sortNewestFirst(out)
	return out
}

// RecentDiscoveries returns every discovery, newest first.
func (c *Catalog) RecentDiscoveries() []Discovery {
	if c == nil {
		return nil
	}
	out := make([]Discovery, len(c.Discoveries))
	copy(out, c.Discoveries)
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(discoveries []Discovery) {
	sort.SliceStable(discoveries, func(i, j int) bool {
		return discoveries[i].Date.After(discoveries[j].Date)
	})
}
