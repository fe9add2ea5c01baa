package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/chat"
)

const chatCookie = "chat_session"

type chatRequest struct {
	Message string `json:"message"`
}

// widget resolves the visitor's chat widget, starting a session (and
// setting the cookie) when the cookie is missing or expired.
func (s *Server) widget(c *gin.Context) *chat.Widget {
	id, _ := c.Cookie(chatCookie)
	newID, w := s.deps.Sessions.Resolve(id)
	if newID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(chatCookie, newID, 0, "/", "", false, true)
	}
	return w
}

// chatView reads the visitor's widget without starting a session. Sessions
// begin with the first POST.
func (s *Server) chatView(c *gin.Context) chat.Snapshot {
	id, _ := c.Cookie(chatCookie)
	return s.deps.Sessions.Peek(id)
}

func (s *Server) renderChat(c *gin.Context, status int, snap chat.Snapshot, errMsg string) {
	c.HTML(status, "chat.html", gin.H{
		"chat":  snap,
		"error": errMsg,
	})
}

// fragmentStatus is the status for a validation error fragment. htmx does
// not swap 4xx responses, so HTMX requests get 200 and the inline error.
func fragmentStatus(c *gin.Context) int {
	if c.GetHeader("HX-Request") == "true" {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

func (s *Server) setupChatRoutes(r *gin.Engine) {
	// HTMX widget fragment
	r.GET("/chat", func(c *gin.Context) {
		s.renderChat(c, http.StatusOK, s.chatView(c), "")
	})

	r.POST("/chat/open", func(c *gin.Context) {
		w := s.widget(c)
		w.Open()
		s.renderChat(c, http.StatusOK, w.Snapshot(), "")
	})
	r.POST("/chat/minimize", func(c *gin.Context) {
		w := s.widget(c)
		w.Minimize()
		s.renderChat(c, http.StatusOK, w.Snapshot(), "")
	})
	r.POST("/chat/hide", func(c *gin.Context) {
		w := s.widget(c)
		w.Hide()
		s.renderChat(c, http.StatusOK, w.Snapshot(), "")
	})
	r.POST("/chat/toggle", func(c *gin.Context) {
		w := s.widget(c)
		w.Toggle()
		s.renderChat(c, http.StatusOK, w.Snapshot(), "")
	})

	r.POST("/chat/messages", func(c *gin.Context) {
		w := s.widget(c)
		if _, err := w.Submit(c.PostForm("message")); err != nil {
			s.renderChat(c, fragmentStatus(c), w.Snapshot(), "Please type a message first.")
			return
		}
		s.renderChat(c, http.StatusOK, w.Snapshot(), "")
	})

	api := r.Group("/api/chat")

	// GET /api/chat?after=<id> returns the widget state and messages newer
	// than id.
	api.GET("", func(c *gin.Context) {
		snap := s.chatView(c)
		if raw := c.Query("after"); raw != "" {
			after, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "after must be a message id"})
				return
			}
			snap.Messages = snap.Since(after)
		}
		c.JSON(http.StatusOK, snap)
	})

	api.POST("", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		msg, err := s.widget(c).Submit(req.Message)
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": msg})
	})
}
