package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	ctx := context.Background()
	for range 2 {
		s, err := Open(ctx, path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + migrationTable).Scan(&n); err != nil {
			t.Fatalf("count migrations: %v", err)
		}
		if n != 2 {
			t.Fatalf("applied migrations = %d, want 2", n)
		}
		s.Close()
	}
}

func TestVisitStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	visits := []Visit{
		{HashedIP: "a", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "a", Path: "/sections/projects", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "b", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "c", Path: "/", Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, v); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisitors != 4 || stats.UniqueVisitors != 3 {
		t.Fatalf("total/unique = %d/%d, want 4/3", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 || stats.VisitorsThisWeek != 3 {
		t.Fatalf("today/week = %d/%d, want 2/3", stats.VisitorsToday, stats.VisitorsThisWeek)
	}
	if len(stats.RecentVisitors) != 4 || stats.RecentVisitors[0].Path != "/" || stats.RecentVisitors[0].HashedIP != "a" {
		t.Fatalf("recent = %+v", stats.RecentVisitors)
	}

	n, err := s.CleanupVisits(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 1 {
		t.Fatalf("cleaned %d, want 1", n)
	}
}

func TestContactMessages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveContact(ctx, ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello there, nice site!"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.MarkDelivered(ctx, id); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := s.MarkDelivered(ctx, id+100); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("mark missing = %v, want sql.ErrNoRows", err)
	}

	if _, err := s.SaveContact(ctx, ContactMessage{Name: "Bob", Email: "bob@example.com", Message: "second"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	msgs, err := s.RecentContacts(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Name != "Bob" || !msgs[1].Delivered {
		t.Fatalf("recent contacts = %+v", msgs)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalMessages != 2 || stats.Undelivered != 1 {
		t.Fatalf("messages/undelivered = %d/%d", stats.TotalMessages, stats.Undelivered)
	}
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;")
	if got != "\nCREATE TABLE a(x);\n" {
		t.Fatalf("upSection = %q", got)
	}
	if got := upSection("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("no markers = %q", got)
	}
}
