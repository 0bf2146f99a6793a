package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// errAuthFailed indicates the server served the logged-out page: the
// session token is missing, expired or rejected.
var errAuthFailed = errors.New("authentication failed: session token rejected or expired")

// errLeaderboardNotAvailable indicates the private leaderboard does not
// exist or the user is not a member.
var errLeaderboardNotAvailable = errors.New("private leaderboard does not exist or you are not a member")

// httpError represents a non-2xx response. The site mostly returns soft
// errors inside 200 bodies, so this surfaces genuine transport-level
// failures distinctly.
type httpError struct {
	StatusCode int
	Body       []byte
}

func (e *httpError) Error() string {
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// aocClient issues the authenticated requests for one puzzle date and
// interprets the HTML bodies into typed results. One client serves one
// process invocation; the date and credential never change after
// construction.
type aocClient struct {
	baseURL   string
	userAgent string
	session   string
	date      puzzleDate
	http      *http.Client
	log       *logger
}

func newAocClient(cfg appConfig, date puzzleDate, session string, log *logger) (*aocClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base_url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}

	return &aocClient{
		baseURL:   strings.TrimRight(u.String(), "/"),
		userAgent: cfg.UserAgent,
		session:   session,
		date:      date,
		log:       log,
		http: &http.Client{
			Timeout: 30 * time.Second,
			// Redirects carry meaning here: a missing leaderboard answers
			// with a 302, which must surface as a status, not be followed.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// do issues one request with the session cookie attached and returns the
// body. Non-2xx statuses come back as *httpError.
func (c *aocClient) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cookie", "session="+c.session)
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	const maxResponseSize = 10 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func (c *aocClient) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// ensureLoggedIn rejects bodies carrying the login link before they reach a
// parser, so an expired session never mis-parses as partial content.
func (c *aocClient) ensureLoggedIn(body []byte) error {
	if loggedOut(body) {
		return errAuthFailed
	}
	return nil
}

// fetchPuzzle retrieves and parses the puzzle description. The unlock check
// runs first so no request is spent on a locked puzzle.
func (c *aocClient) fetchPuzzle(ctx context.Context, now time.Time) (*puzzleContent, error) {
	if err := c.date.ensureUnlocked(now); err != nil {
		return nil, err
	}
	c.log.debugf("fetching puzzle for %s", c.date)

	body, err := c.get(ctx, fmt.Sprintf("/%d/day/%d", c.date.Year, c.date.Day))
	if err != nil {
		return nil, err
	}
	if err := c.ensureLoggedIn(body); err != nil {
		return nil, err
	}
	return parseDescription(body)
}

// fetchInput retrieves the raw puzzle input exactly as served, trailing
// newline included.
func (c *aocClient) fetchInput(ctx context.Context, now time.Time) ([]byte, error) {
	if err := c.date.ensureUnlocked(now); err != nil {
		return nil, err
	}
	c.log.debugf("fetching input for %s", c.date)

	body, err := c.get(ctx, fmt.Sprintf("/%d/day/%d/input", c.date.Year, c.date.Day))
	if err != nil {
		var he *httpError
		if errors.As(err, &he) && he.StatusCode == http.StatusNotFound {
			// The input endpoint 404s until the puzzle unlocks server-side.
			return nil, &lockedError{Year: c.date.Year, Day: c.date.Day}
		}
		return nil, err
	}
	if err := c.ensureLoggedIn(body); err != nil {
		return nil, err
	}
	return body, nil
}

// submitAnswer posts an answer for the given part and classifies the
// server's prose into a verdict.
func (c *aocClient) submitAnswer(ctx context.Context, now time.Time, part int, answer string) (*submissionVerdict, error) {
	if part != 1 && part != 2 {
		return nil, fmt.Errorf("invalid puzzle part %d", part)
	}
	if err := c.date.ensureUnlocked(now); err != nil {
		return nil, err
	}
	c.log.debugf("submitting part %d answer for %s", part, c.date)

	form := url.Values{
		"level":  {strconv.Itoa(part)},
		"answer": {answer},
	}
	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%d/day/%d/answer", c.date.Year, c.date.Day), form)
	if err != nil {
		return nil, err
	}
	if err := c.ensureLoggedIn(body); err != nil {
		return nil, err
	}
	return classifyVerdict(body)
}

// fetchCalendar retrieves the event calendar star grid for the client's
// year. No unlock check applies; the calendar exists for the whole event.
func (c *aocClient) fetchCalendar(ctx context.Context) ([]calendarEntry, error) {
	c.log.debugf("fetching %d calendar", c.date.Year)

	body, err := c.get(ctx, fmt.Sprintf("/%d", c.date.Year))
	if err != nil {
		var he *httpError
		if errors.As(err, &he) && he.StatusCode == http.StatusNotFound {
			return nil, &invalidDateError{Field: "year", Value: c.date.Year}
		}
		return nil, err
	}
	if err := c.ensureLoggedIn(body); err != nil {
		return nil, err
	}
	return parseCalendar(body)
}

// fetchLeaderboard retrieves one private leaderboard snapshot.
func (c *aocClient) fetchLeaderboard(ctx context.Context, leaderboardID int) (*leaderboard, error) {
	c.log.debugf("fetching private leaderboard %d", leaderboardID)

	body, err := c.get(ctx, fmt.Sprintf("/%d/leaderboard/private/view/%d", c.date.Year, leaderboardID))
	if err != nil {
		var he *httpError
		if errors.As(err, &he) && (he.StatusCode == http.StatusFound || he.StatusCode == http.StatusNotFound) {
			return nil, errLeaderboardNotAvailable
		}
		return nil, err
	}
	if err := c.ensureLoggedIn(body); err != nil {
		return nil, err
	}
	return parseLeaderboardPage(body, c.date.Year)
}
