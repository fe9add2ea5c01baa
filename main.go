package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/github"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	log.SetPrefix("[WEB] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	responder := site.Chat.Responder()
	sessions := chat.NewSessions(func() *chat.Widget {
		return chat.NewWidget(responder,
			chat.WithDelay(cfg.ChatReplyDelay),
			chat.WithGreeting(site.Chat.Greeting),
		)
	}, cfg.ChatSessionTTL)

	to := cfg.ToEmail
	if to == "" {
		to = site.Contact.Email
	}
	mailer := mail.NewSMTPSender(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		To:   to,
	})
	if !mailer.Configured() {
		log.Println("WARNING: SMTP credentials not set; contact messages are only stored")
	}

	if !cfg.AdminEnabled() {
		log.Println("WARNING: ADMIN_USERNAME/ADMIN_PASSWORD not set; admin dashboard disabled")
	}

	srv, err := server.New(server.Config{
		Addr:             cfg.Addr(),
		AdminUsername:    cfg.AdminUsername,
		AdminPassword:    cfg.AdminPassword,
		IPSalt:           cfg.IPSalt,
		VisitorRetention: cfg.VisitorRetention,
	}, server.Deps{
		Site:     site,
		Store:    db,
		Mailer:   mailer,
		GitHub:   github.NewClient(cfg.GitHubUser, cfg.GitHubToken, cfg.GitHubCacheTTL),
		Sessions: sessions,
		Assets:   assets,
	})
	if err != nil {
		return err
	}

	log.Printf("Admin access available at: /admin/login")
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return srv.Run(ctx)
}
