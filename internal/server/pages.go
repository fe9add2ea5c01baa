package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/github"
)

func (s *Server) setupPageRoutes(r *gin.Engine) {
	// Home page route
	r.GET("/", func(c *gin.Context) {
		site := s.deps.Site
		c.HTML(http.StatusOK, "index.html", gin.H{
			"site":     site,
			"projects": site.FeaturedProjects(),
			"chat":     s.chatView(c),
		})
	})

	// HTMX section fragments
	r.GET("/sections/:name", func(c *gin.Context) {
		s.renderSection(c, c.Param("name"))
	})
	r.GET("/work-content", func(c *gin.Context) { s.renderSection(c, "experience") })
	r.GET("/education-content", func(c *gin.Context) { s.renderSection(c, "education") })
	r.GET("/contact-form", func(c *gin.Context) { s.renderSection(c, "contact") })

	r.GET("/github-stats", func(c *gin.Context) {
		stats, err := s.githubStats(c)
		if err != nil {
			log.Printf("GitHub stats unavailable: %v", err)
		}
		c.HTML(http.StatusOK, "github-stats.html", gin.H{
			"stats": stats,
			"ok":    err == nil,
		})
	})

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
			"site":  s.deps.Site,
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		if err := s.deps.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// renderSection renders one section fragment. Section templates take the
// whole site as dot, the same as when index.html includes them.
func (s *Server) renderSection(c *gin.Context, name string) {
	if _, err := s.deps.Site.Section(name); errors.Is(err, content.ErrUnknownSection) {
		c.String(http.StatusNotFound, "unknown section %q", name)
		return
	}
	c.HTML(http.StatusOK, "section-"+name, s.deps.Site)
}

func (s *Server) githubStats(c *gin.Context) (*github.Stats, error) {
	if s.deps.GitHub == nil {
		return nil, github.ErrNoUser
	}
	return s.deps.GitHub.Stats(c.Request.Context())
}
