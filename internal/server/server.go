// Package server wires the portfolio into a gin engine: page and section
// fragments, the chat widget, the contact form, the GitHub card and the admin
// dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/github"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/store"
)

const shutdownTimeout = 5 * time.Second

// StatsSource provides the GitHub card numbers.
type StatsSource interface {
	Stats(ctx context.Context) (*github.Stats, error)
}

// Config holds the server settings.
type Config struct {
	Addr             string
	AdminUsername    string
	AdminPassword    string
	IPSalt           string
	VisitorRetention time.Duration
}

// Deps are the collaborators the handlers use.
type Deps struct {
	Site     *content.Site
	Store    *store.Store
	Mailer   mail.Sender
	GitHub   StatsSource
	Sessions *chat.Sessions
	// Assets holds templates/*.html and static/.
	Assets fs.FS
}

// Server is the HTTP front of the portfolio.
type Server struct {
	cfg    Config
	deps   Deps
	engine *gin.Engine

	adminToken string
	salt       string

	// tracking counts in-flight visitor writes
	tracking sync.WaitGroup
}

// New builds the engine and registers every route.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Site == nil {
		return nil, errors.New("server: site content is required")
	}
	if deps.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if deps.Assets == nil {
		return nil, errors.New("server: assets are required")
	}
	if deps.Sessions == nil {
		responder := deps.Site.Chat.Responder()
		greeting := deps.Site.Chat.Greeting
		deps.Sessions = chat.NewSessions(func() *chat.Widget {
			return chat.NewWidget(responder, chat.WithGreeting(greeting))
		}, 0)
	}
	if cfg.VisitorRetention <= 0 {
		cfg.VisitorRetention = 365 * 24 * time.Hour
	}

	s := &Server{cfg: cfg, deps: deps}

	var err error
	if s.adminToken, err = generateToken(); err != nil {
		return nil, err
	}
	s.salt = cfg.IPSalt
	if s.salt == "" {
		if s.salt, err = generateToken(); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(deps.Assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(deps.Assets, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.visitorTrackingMiddleware())

	r.StaticFS("/static", http.FS(static))
	if images, err := fs.Sub(static, "images"); err == nil {
		r.StaticFS("/images", http.FS(images))
	}

	s.setupPageRoutes(r)
	s.setupChatRoutes(r)
	s.setupContactRoutes(r)
	s.setupAdminRoutes(r)

	s.engine = r
	return s, nil
}

// Handler exposes the engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully. It also
// runs the chat session janitor and the visitor retention cleanup.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go s.deps.Sessions.RunJanitor(bgCtx, time.Minute)
	go s.runRetention(bgCtx, 24*time.Hour)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", s.cfg.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.tracking.Wait()
	return nil
}

var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"clock": func(t time.Time) string { return t.Format("15:04") },
	"date":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}
