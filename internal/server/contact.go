package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/store"
)

const (
	contactSuccess = "Thank you for your message! I'll get back to you soon."
	contactFailure = "Sorry, there was an error sending your message. Please try again later."
	contactMissing = "Please fill in your name, email and message."
)

var errMissingFields = errors.New("name, email and message are required")

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// submitContact stores the submission and forwards it by mail. The stored
// row survives a mail failure with delivered=false. A missing mailer
// configuration is not a failure: the message waits in the dashboard.
func (s *Server) submitContact(ctx context.Context, req contactRequest) (int64, bool, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return 0, false, errMissingFields
	}

	id, err := s.deps.Store.SaveContact(ctx, store.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return 0, false, err
	}

	if s.deps.Mailer == nil {
		return id, false, nil
	}
	err = s.deps.Mailer.Send(ctx, mail.Contact{Name: req.Name, Email: req.Email, Message: req.Message})
	if errors.Is(err, mail.ErrNotConfigured) {
		log.Printf("Contact %d stored; mail not configured", id)
		return id, false, nil
	}
	if err != nil {
		return id, false, err
	}
	if err := s.deps.Store.MarkDelivered(ctx, id); err != nil {
		log.Printf("Error marking contact %d delivered: %v", id, err)
	}
	return id, true, nil
}

func (s *Server) setupContactRoutes(r *gin.Engine) {
	// Handle contact form submission with HTMX
	r.POST("/contact", func(c *gin.Context) {
		_, _, err := s.submitContact(c.Request.Context(), contactRequest{
			Name:    c.PostForm("fullName"),
			Email:   c.PostForm("email"),
			Message: c.PostForm("message"),
		})
		switch {
		case errors.Is(err, errMissingFields):
			c.HTML(fragmentStatus(c), "contact-error.html", gin.H{"error": contactMissing})
		case err != nil:
			log.Printf("Contact submission failed: %v", err)
			c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": contactFailure})
		default:
			c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": contactSuccess})
		}
	})

	r.POST("/api/contact", func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMissingFields.Error()})
			return
		}
		id, delivered, err := s.submitContact(c.Request.Context(), req)
		switch {
		case errors.Is(err, errMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil && id == 0:
			log.Printf("Contact submission failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save message"})
		case err != nil:
			log.Printf("Contact %d not mailed: %v", id, err)
			c.JSON(http.StatusBadGateway, gin.H{"id": id, "delivered": false, "error": contactFailure})
		default:
			c.JSON(http.StatusCreated, gin.H{"id": id, "delivered": delivered})
		}
	})
}
