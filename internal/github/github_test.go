package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fakeAPI(t *testing.T, calls *atomic.Int32, fail *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"API rate limit exceeded"}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"login":"octo","public_repos":3,"followers":10,"following":2}`))
	})
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q", r.URL.Query().Get("per_page"))
		}
		w.Write([]byte(`[
			{"name":"a","stargazers_count":5,"forks_count":1},
			{"name":"b","stargazers_count":7,"forks_count":0},
			{"name":"c","stargazers_count":0,"forks_count":4}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStatsSumsAndCaches(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	srv := fakeAPI(t, &calls, &fail)

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c := NewClient("octo", "tok", time.Minute, WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	s, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.PublicRepos != 3 || s.Followers != 10 || s.Following != 2 {
		t.Fatalf("profile = %+v", s)
	}
	if s.TotalStars != 12 || s.TotalForks != 5 {
		t.Fatalf("stars/forks = %d/%d, want 12/5", s.TotalStars, s.TotalForks)
	}

	if _, err := c.Stats(context.Background()); err != nil {
		t.Fatalf("cached stats: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("profile calls = %d, want 1 while cached", calls.Load())
	}

	now = now.Add(2 * time.Minute)
	fail.Store(true)
	stale, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("stale stats: %v", err)
	}
	if stale.TotalStars != 12 || calls.Load() != 2 {
		t.Fatalf("stale = %+v after %d calls", stale, calls.Load())
	}
}

func TestOutageDoesNotHammerUpstream(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	srv := fakeAPI(t, &calls, &fail)

	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c := NewClient("octo", "tok", 5*time.Minute, WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))
	if _, err := c.Stats(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}

	now = now.Add(6 * time.Minute)
	fail.Store(true)
	for range 10 {
		s, err := c.Stats(context.Background())
		if err != nil || s.TotalStars != 12 {
			t.Fatalf("stale stats = %+v, %v", s, err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("profile calls = %d during outage, want 2", got)
	}

	now = now.Add(maxRetryDelay)
	fail.Store(false)
	if _, err := c.Stats(context.Background()); err != nil {
		t.Fatalf("stats after recovery: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("profile calls = %d after retry delay, want 3", got)
	}
}

func TestStatsErrorWithoutCache(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	fail.Store(true)
	srv := fakeAPI(t, &calls, &fail)

	c := NewClient("octo", "tok", 0, WithBaseURL(srv.URL))
	for range 3 {
		if _, err := c.Stats(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("profile calls = %d, want 1 within the retry delay", got)
	}
}

func TestStatsWithoutUser(t *testing.T) {
	c := NewClient("", "", 0)
	if _, err := c.Stats(context.Background()); !errors.Is(err, ErrNoUser) {
		t.Fatalf("err = %v, want ErrNoUser", err)
	}
}
