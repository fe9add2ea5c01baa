// Package store persists visitor hits and contact submissions in sqlite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the sqlite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: sqlite serialises writers anyway, and an in-memory
	// database exists per connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Visit is one tracked page view. The IP is stored only as a salted hash.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitorStats summarises tracked visits.
type VisitorStats struct {
	TotalVisitors    int64   `json:"total_visitors"`
	UniqueVisitors   int64   `json:"unique_visitors"`
	VisitorsToday    int64   `json:"visitors_today"`
	VisitorsThisWeek int64   `json:"visitors_this_week"`
	RecentVisitors   []Visit `json:"recent_visitors"`
	TotalMessages    int64   `json:"total_messages"`
	Undelivered      int64   `json:"undelivered_messages"`
}

// RecordVisit stores a page view.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecentVisits returns the newest visits first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Timestamp = time.Unix(at, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Stats computes the admin dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*VisitorStats, error) {
	now := s.now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &VisitorStats{}
	queries := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{startOfDay.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{weekAgo.Unix()}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM contact_messages`, nil},
		{&stats.Undelivered, `SELECT COUNT(*) FROM contact_messages WHERE delivered = 0`, nil},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	recent, err := s.RecentVisits(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

// CleanupVisits deletes visits recorded before cutoff.
func (s *Store) CleanupVisits(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	return res.RowsAffected()
}

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

// SaveContact stores a submission and returns its id.
func (s *Store) SaveContact(ctx context.Context, m ContactMessage) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, created_at, delivered) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Email, m.Message, m.CreatedAt.Unix(), m.Delivered,
	)
	if err != nil {
		return 0, fmt.Errorf("save contact: %w", err)
	}
	return res.LastInsertId()
}

// MarkDelivered flags a submission as mailed.
func (s *Store) MarkDelivered(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RecentContacts returns the newest submissions first.
func (s *Store) RecentContacts(ctx context.Context, limit int) ([]ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, message, created_at, delivered
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var at int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &at, &m.Delivered); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		m.CreatedAt = time.Unix(at, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}
