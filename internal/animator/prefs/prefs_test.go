package prefs

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/Zachkp/portfolio/internal/animator"
)

func openTestManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: name})
	if err != nil {
		t.Fatalf("open gdata: %v", err)
	}
	return m
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewStore(nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if got := s.Get(); got != Default() {
		t.Fatalf("prefs = %+v, want defaults", got)
	}
	s.Set(Preferences{Density: 5, Grid: false})
	if err := s.Save(); err != nil {
		t.Fatalf("save without storage: %v", err)
	}
	if got := s.Get().Density; got != 2 {
		t.Fatalf("density = %v, want clamped 2", got)
	}
}

func TestSaveAndReload(t *testing.T) {
	m := openTestManager(t, "portfolio_prefs_test")

	s, err := NewStore(m)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	want := Preferences{Density: 0.5, Grid: false, Links: true, Trail: false}
	s.Set(want)
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := NewStore(m)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Get(); got != want {
		t.Fatalf("reloaded = %+v, want %+v", got, want)
	}
}

func TestApply(t *testing.T) {
	p := Preferences{Density: 0.5, Grid: false, Links: true, Trail: false}
	cfg := p.Apply(animator.DefaultConfig())
	if cfg.StarCount != 40 {
		t.Fatalf("stars = %d, want 40", cfg.StarCount)
	}
	if cfg.Grid || !cfg.Links || cfg.Trail {
		t.Fatalf("features = %+v", cfg.Features)
	}
}

func TestOpenFallsBackOnCorruptData(t *testing.T) {
	const app = "portfolio_prefs_corrupt_test"
	m := openTestManager(t, app)
	if err := m.SaveObjectProp(prefsObject, prefsProperty, []byte("density: [")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var buf bytes.Buffer
	prefix, flags := log.Prefix(), log.Flags()
	log.SetOutput(&buf)
	log.SetPrefix("")
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	})

	s := Open(app)
	if got := s.Get(); got != Default() {
		t.Fatalf("prefs = %+v, want defaults", got)
	}
	// the binary sets the log prefix, so the message carries none of its own
	if !strings.HasPrefix(buf.String(), "preferences: decode preferences") {
		t.Fatalf("log = %q", buf.String())
	}
}
