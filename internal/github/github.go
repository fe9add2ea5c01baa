// Package github fetches public profile numbers for the stats card.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL  = "https://api.github.com"
	DefaultCacheTTL = time.Hour
	maxBody         = 4 << 20

	// maxRetryDelay bounds how long a failed fetch suppresses new attempts.
	maxRetryDelay = time.Minute
)

// Stats is what the card shows.
type Stats struct {
	User        string    `json:"user"`
	PublicRepos int64     `json:"public_repos"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
	TotalStars  int64     `json:"total_stars"`
	TotalForks  int64     `json:"total_forks"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Client reads the GitHub REST API and caches the result.
type Client struct {
	user    string
	token   string
	baseURL string
	ttl     time.Duration
	http    *http.Client
	now     func() time.Time

	mu      sync.Mutex
	cached  *Stats
	expires time.Time
	retryAt time.Time
	lastErr error
}

type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// NewClient returns a client for user. A zero ttl uses DefaultCacheTTL.
func NewClient(user, token string, ttl time.Duration, opts ...Option) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Client{
		user:    user,
		token:   token,
		baseURL: DefaultBaseURL,
		ttl:     ttl,
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ErrNoUser is returned when no GitHub user is configured.
var ErrNoUser = errors.New("github user not configured")

// Stats returns cached numbers while they are fresh, otherwise refetches.
// A failed refetch serves the stale copy if there is one, and no new fetch
// is tried until the retry delay passes.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	if c.user == "" {
		return nil, ErrNoUser
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.cached != nil && now.Before(c.expires) {
		return c.copyCached(), nil
	}
	if now.Before(c.retryAt) {
		if c.cached != nil {
			return c.copyCached(), nil
		}
		return nil, c.lastErr
	}

	s, err := c.fetch(ctx)
	if err != nil {
		c.lastErr = err
		c.retryAt = now.Add(min(c.ttl, maxRetryDelay))
		if c.cached != nil {
			return c.copyCached(), nil
		}
		return nil, err
	}
	s.FetchedAt = now
	c.cached = s
	c.expires = now.Add(c.ttl)
	c.retryAt = time.Time{}
	c.lastErr = nil
	return c.copyCached(), nil
}

func (c *Client) copyCached() *Stats {
	s := *c.cached
	return &s
}

func (c *Client) fetch(ctx context.Context) (*Stats, error) {
	user := url.PathEscape(c.user)

	profile, err := c.get(ctx, "/users/"+user)
	if err != nil {
		return nil, err
	}
	p := gjson.ParseBytes(profile)
	s := &Stats{
		User:        p.Get("login").String(),
		PublicRepos: p.Get("public_repos").Int(),
		Followers:   p.Get("followers").Int(),
		Following:   p.Get("following").Int(),
	}
	if s.User == "" {
		s.User = c.user
	}

	repos, err := c.get(ctx, "/users/"+user+"/repos?per_page=100")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(repos) {
		return nil, errors.New("github: invalid repos payload")
	}
	r := gjson.ParseBytes(repos)
	s.TotalStars = sum(r, "#.stargazers_count")
	s.TotalForks = sum(r, "#.forks_count")
	return s, nil
}

func sum(r gjson.Result, path string) int64 {
	var total int64
	for _, v := range r.Get(path).Array() {
		total += v.Int()
	}
	return total
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "portfolio-stats")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("github %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "message").String()
		return nil, fmt.Errorf("github %s: status %d: %s", path, resp.StatusCode, msg)
	}
	return body, nil
}
