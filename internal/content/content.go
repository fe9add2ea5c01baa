// Package content holds the portfolio copy. The site is described by a YAML
// document; a default one is embedded and CONTENT_PATH can point elsewhere.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/chat"
)

//go:embed portfolio.yaml
var defaultDocument []byte

// ErrUnknownSection is returned for section names the page does not have.
var ErrUnknownSection = errors.New("unknown section")

// Sections lists the page sections in render order.
var Sections = []string{"hero", "about", "skills", "education", "experience", "projects", "updates", "contact"}

type Site struct {
	Hero       Hero        `yaml:"hero"`
	About      About       `yaml:"about"`
	Skills     []SkillSet  `yaml:"skills"`
	Education  []Entry     `yaml:"education"`
	Experience []Entry     `yaml:"experience"`
	Projects   []Project   `yaml:"projects"`
	Updates    []Update    `yaml:"updates"`
	Contact    ContactInfo `yaml:"contact"`
	Chat       Chat        `yaml:"chat"`
}

type Hero struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Resume  string `yaml:"resume"`
}

type About struct {
	Summary      string        `yaml:"summary"`
	Tabs         []Tab         `yaml:"tabs"`
	Achievements []Achievement `yaml:"achievements"`
}

type Tab struct {
	Label string `yaml:"label"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Achievement struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type SkillSet struct {
	Group  string  `yaml:"group"`
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"` // percent
}

// Entry is one education or experience item.
type Entry struct {
	Title   string   `yaml:"title"`
	Org     string   `yaml:"org"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Logo    string   `yaml:"logo"`
	Bullets []string `yaml:"bullets"`
}

type Project struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Details     string   `yaml:"details"`
	TechStack   []string `yaml:"tech"`
	Category    string   `yaml:"category"`
	Image       string   `yaml:"image"`
	GitHubURL   string   `yaml:"github"`
	LiveURL     string   `yaml:"live"`
	Featured    bool     `yaml:"featured"`
}

type Update struct {
	Title    string `yaml:"title"`
	Snippet  string `yaml:"snippet"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"read_time"`
	Category string `yaml:"category"`
	Link     string `yaml:"link"`
}

type ContactInfo struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
	MapURL   string `yaml:"map_url"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
}

// Chat configures the scripted assistant. Empty tables fall back to the
// built-in ones.
type Chat struct {
	Greeting  string          `yaml:"greeting"`
	Default   string          `yaml:"default"`
	Replies   []chat.Rule     `yaml:"replies"`
	Fallbacks []chat.Fallback `yaml:"fallbacks"`
}

// Responder builds the chat responder described by c.
func (c Chat) Responder() *chat.Responder {
	rules, fallbacks, def := c.Replies, c.Fallbacks, c.Default
	if len(rules) == 0 {
		rules = chat.DefaultRules()
	}
	if len(fallbacks) == 0 {
		fallbacks = chat.DefaultFallbacks()
	}
	if strings.TrimSpace(def) == "" {
		def = chat.DefaultReply
	}
	return chat.NewResponder(rules, fallbacks, def)
}

// Parse decodes a site document.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads the document at path, or the embedded one when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Parse(defaultDocument)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Validate checks the fields the page cannot render without.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Hero.Name) == "" {
		return errors.New("content: hero.name is required")
	}
	for i, p := range s.Projects {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("content: projects[%d].title is required", i)
		}
	}
	for _, set := range s.Skills {
		for _, sk := range set.Skills {
			if sk.Level < 0 || sk.Level > 100 {
				return fmt.Errorf("content: skill %q level %d outside 0-100", sk.Name, sk.Level)
			}
		}
	}
	return nil
}

// Section returns the data a section template renders.
func (s *Site) Section(name string) (any, error) {
	switch name {
	case "hero":
		return s.Hero, nil
	case "about":
		return s.About, nil
	case "skills":
		return s.Skills, nil
	case "education":
		return s.Education, nil
	case "experience":
		return s.Experience, nil
	case "projects":
		return s.Projects, nil
	case "updates":
		return s.Updates, nil
	case "contact":
		return s.Contact, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// FeaturedProjects returns featured projects first, keeping document order
// within each group.
func (s *Site) FeaturedProjects() []Project {
	out := make([]Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	for _, p := range s.Projects {
		if !p.Featured {
			out = append(out, p)
		}
	}
	return out
}
