// Package prefs persists viewer preferences for the animated background.
//
// Storage goes through gdata, which maps to the user data directory on
// desktop and to localStorage under js/wasm. When no gdata manager is
// available the store keeps preferences in memory only.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/animator"
)

const (
	prefsObject   = "background"
	prefsProperty = "viewer"
)

// Preferences are the user-tunable parts of the background.
type Preferences struct {
	Density float64 `yaml:"density"`
	Grid    bool    `yaml:"grid"`
	Links   bool    `yaml:"links"`
	Trail   bool    `yaml:"trail"`
}

// Default returns the preferences used when nothing is stored.
func Default() Preferences {
	return Preferences{Density: 1, Grid: true, Links: true, Trail: true}
}

// Features converts the toggles into scene features.
func (p Preferences) Features() animator.Features {
	return animator.Features{Grid: p.Grid, Links: p.Links, Trail: p.Trail}
}

// Apply folds the preferences into a scene config.
func (p Preferences) Apply(cfg animator.Config) animator.Config {
	cfg = cfg.Scaled(clampDensity(p.Density))
	cfg.Features = p.Features()
	return cfg
}

func clampDensity(d float64) float64 {
	switch {
	case d < 0.1:
		return 0.1
	case d > 2:
		return 2
	}
	return d
}

// Store loads and saves Preferences.
type Store struct {
	manager *gdata.Manager // nil means memory only
	prefs   Preferences
}

// Open creates a gdata-backed store for appName. Any storage failure is
// logged and the store falls back to memory only.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("preferences storage unavailable, using defaults: %v", err)
		manager = nil
	}
	s, err := NewStore(manager)
	if err != nil {
		log.Printf("preferences: %v", err)
	}
	return s
}

// NewStore wraps manager, which may be nil. The returned store is always
// usable; a load error is reported alongside it and defaults are kept.
func NewStore(manager *gdata.Manager) (*Store, error) {
	s := &Store{manager: manager, prefs: Default()}
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// Load reads stored preferences, keeping defaults when nothing is stored.
func (s *Store) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		s.prefs = Default()
		return nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		s.prefs = Default()
		return fmt.Errorf("load preferences: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		s.prefs = Default()
		return fmt.Errorf("decode preferences: %w", err)
	}
	loaded.Density = clampDensity(loaded.Density)
	s.prefs = loaded
	return nil
}

// Save writes the current preferences. It is a no-op without storage.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (s *Store) Get() Preferences { return s.prefs }

// Set replaces the current preferences in memory. Call Save to persist.
func (s *Store) Set(p Preferences) {
	p.Density = clampDensity(p.Density)
	s.prefs = p
}
