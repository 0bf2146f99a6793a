package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, baseURL string, date puzzleDate) *aocClient {
	t.Helper()
	cfg := appConfig{BaseURL: baseURL, UserAgent: "aoc-cli/test"}
	client, err := newAocClient(cfg, date, "testtoken", newLogger(zerolog.Disabled))
	require.NoError(t, err)
	return client
}

func TestFetchInput(t *testing.T) {
	const input = "1721\n979\n366\n299\n675\n1456\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024/day/10/input", r.URL.Path)
		assert.Equal(t, "session=testtoken", r.Header.Get("Cookie"))
		assert.Equal(t, "aoc-cli/test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(input))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 10})
	now := eventClock(2024, time.December, 10, 12)

	got, err := client.fetchInput(context.Background(), now)
	require.NoError(t, err)
	// Byte-exact, trailing newline included.
	assert.Equal(t, []byte(input), got)
}

func TestFetchInputNotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 10})
	_, err := client.fetchInput(context.Background(), eventClock(2024, time.December, 10, 12))

	var locked *lockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, 10, locked.Day)
}

func TestLockedPuzzleSendsNoRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for a locked puzzle")
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 20})
	now := eventClock(2024, time.December, 10, 12)

	var locked *lockedError
	_, err := client.fetchPuzzle(context.Background(), now)
	assert.ErrorAs(t, err, &locked)
	_, err = client.fetchInput(context.Background(), now)
	assert.ErrorAs(t, err, &locked)
	_, err = client.submitAnswer(context.Background(), now, 1, "42")
	assert.ErrorAs(t, err, &locked)
}

func TestFetchPuzzle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2023/day/1", r.URL.Path)
		_, _ = w.Write([]byte(puzzlePageFixture))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2023, Day: 1})
	content, err := client.fetchPuzzle(context.Background(), eventClock(2024, time.June, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Trebuchet?!", content.Title)
}

func TestExpiredSessionFailsDistinctly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><a href="/2024/auth/login">[Log In]</a></main></body></html>`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 10})
	_, err := client.fetchPuzzle(context.Background(), eventClock(2024, time.December, 10, 12))
	assert.ErrorIs(t, err, errAuthFailed)
}

func TestSubmitAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2024/day/10/answer", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2", r.PostForm.Get("level"))
		assert.Equal(t, "1337", r.PostForm.Get("answer"))
		_, _ = w.Write([]byte(`<html><body><main><article><p>That's the right answer!</p></article></main></body></html>`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 10})
	verdict, err := client.submitAnswer(context.Background(), eventClock(2024, time.December, 10, 12), 2, "1337")
	require.NoError(t, err)
	assert.Equal(t, verdictCorrect, verdict.Kind)
}

func TestSubmitAnswerRejectsBadPart(t *testing.T) {
	client := testClient(t, "http://localhost:1", puzzleDate{Year: 2024, Day: 10})
	_, err := client.submitAnswer(context.Background(), eventClock(2024, time.December, 10, 12), 3, "42")
	assert.Error(t, err)
}

func TestFetchCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024", r.URL.Path)
		_, _ = w.Write(calendarPage("calendar", []int{1, 2, 3}, map[int]string{1: "calendar-verycomplete"}))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 1})
	entries, err := client.fetchCalendar(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 25)
	assert.Equal(t, 2, entries[0].Stars)
}

func TestFetchCalendarUnknownYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2031, Day: 1})
	_, err := client.fetchCalendar(context.Background())
	var invalid *invalidDateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2031, invalid.Value)
}

func TestFetchLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024/leaderboard/private/view/12345", r.URL.Path)
		_, _ = w.Write([]byte(`<html><body><main><pre>` + leaderboardFixture + `</pre></main></body></html>`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 1})
	lb, err := client.fetchLeaderboard(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, 2024, lb.Year)
	assert.Len(t, lb.Entries, 2)
}

func TestFetchLeaderboardRedirectMeansUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The site answers with a redirect when the leaderboard does not
		// exist or the user is not a member; it must not be followed.
		http.Redirect(w, r, "/2024/leaderboard/private", http.StatusFound)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 1})
	_, err := client.fetchLeaderboard(context.Background(), 999)
	assert.ErrorIs(t, err, errLeaderboardNotAvailable)
}

func TestTransportErrorsSurfaceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, puzzleDate{Year: 2024, Day: 10})
	_, err := client.fetchPuzzle(context.Background(), eventClock(2024, time.December, 10, 12))

	var he *httpError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusInternalServerError, he.StatusCode)
}
