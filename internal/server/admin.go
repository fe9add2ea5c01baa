package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/store"
)

const adminCookie = "admin_token"

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP hashes an address with the server salt. The same IP always maps to
// the same value for one salt, so unique counts still work.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are never recorded as visits.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin", "/favicon", "/privacy", "/healthz", "/api/",
}

// visitorTrackingMiddleware records full page views with a hashed IP. It
// skips assets, admin pages, HTMX fragment requests and visitors sending
// DNT.
func (s *Server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || c.GetHeader("HX-Request") == "true" {
			c.Next()
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		visit := store.Visit{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}
		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			if err := s.deps.Store.RecordVisit(context.Background(), visit); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

func (s *Server) cleanupOldVisitorData(ctx context.Context) {
	n, err := s.deps.Store.CleanupVisits(ctx, time.Now().Add(-s.cfg.VisitorRetention))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %s", n, s.cfg.VisitorRetention)
	}
}

func (s *Server) runRetention(ctx context.Context, interval time.Duration) {
	s.cleanupOldVisitorData(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupOldVisitorData(ctx)
		}
	}
}

func (s *Server) credentialsMatch(username, password string) bool {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
			c.HTML(http.StatusServiceUnavailable, "admin-login.html", gin.H{
				"error": "Admin access is not configured",
			})
			return
		}
		if !s.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		ctx := c.Request.Context()
		stats, err := s.deps.Store.Stats(ctx)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		contacts, err := s.deps.Store.RecentContacts(ctx, 20)
		if err != nil {
			log.Printf("Error loading contact messages: %v", err)
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":        stats,
			"contacts":     contacts,
			"chatSessions": s.deps.Sessions.Len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.deps.Store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"visitors":      stats,
			"chat_sessions": s.deps.Sessions.Len(),
		})
	})

	admin.GET("/api/contacts", func(c *gin.Context) {
		contacts, err := s.deps.Store.RecentContacts(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, contacts)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.deps.Store.RecentVisits(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load visitors"})
			return
		}
		c.JSON(http.StatusOK, visitors)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		s.cleanupOldVisitorData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.deps.Store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
