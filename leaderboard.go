package main

import (
	"fmt"
	"strconv"
	"strings"
)

// starState is the per-day completion marker in a leaderboard star run.
type starState int

const (
	starNone starState = iota
	starSilver
	starGold
)

// leaderboardEntry is one row of a private leaderboard, in rank order. The
// star run always covers all 25 days; days past the last unlocked one are
// starNone.
type leaderboardEntry struct {
	Rank       int
	LocalScore int
	Stars      [lastPuzzleDay]starState
	Name       string
}

// leaderboard is one snapshot of a private leaderboard for a single year.
type leaderboard struct {
	Year    int
	Entries []leaderboardEntry
}

// starRunWidth is the fixed width of the glyph run in an entry line.
const starRunWidth = lastPuzzleDay

// parseLeaderboardPage extracts the pre-formatted standings block from a
// private leaderboard page and parses it.
func parseLeaderboardPage(body []byte, year int) (*leaderboard, error) {
	mainNode, err := parseMain(body, "leaderboard")
	if err != nil {
		return nil, err
	}
	pre := findElement(mainNode, "pre")
	if pre == nil {
		return nil, &formatError{Page: "leaderboard", Detail: "missing standings block"}
	}
	entries, err := parseLeaderboardText(textContent(pre))
	if err != nil {
		return nil, err
	}
	return &leaderboard{Year: year, Entries: entries}, nil
}

// parseLeaderboardText parses the fixed-width standings block. Each entry
// line is "RANK) SCORE RUN  NAME" where RUN is exactly 25 glyphs; the name
// is whatever remains, so it may contain spaces. Splitting is by column
// offset, never by whitespace tokenization. Header lines carrying the day
// numbers consist of digits only and are skipped.
func parseLeaderboardText(text string) ([]leaderboardEntry, error) {
	var entries []leaderboardEntry
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isDigitsOnly(trimmed) {
			continue
		}
		entry, err := parseLeaderboardLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if len(entries) == 0 {
		return nil, &formatError{Page: "leaderboard", Detail: "no member rows found"}
	}
	return entries, nil
}

func parseLeaderboardLine(line string) (*leaderboardEntry, error) {
	malformed := func(what string) error {
		return &formatError{Page: "leaderboard", Detail: fmt.Sprintf("%s in row %q", what, strings.TrimSpace(line))}
	}

	sep := strings.IndexByte(line, ')')
	if sep < 0 {
		return nil, malformed("missing rank separator")
	}
	rank, err := strconv.Atoi(strings.TrimSpace(line[:sep]))
	if err != nil {
		return nil, malformed("bad rank")
	}

	rest := line[sep+1:]
	i := 0
	for i < len(rest) && rest[i] == ' ' {
		i++
	}
	j := i
	for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
		j++
	}
	if j == i {
		return nil, malformed("missing score")
	}
	score, err := strconv.Atoi(rest[i:j])
	if err != nil {
		return nil, malformed("bad score")
	}

	if j >= len(rest) || rest[j] != ' ' {
		return nil, malformed("missing star run")
	}
	j++
	if len(rest) < j+starRunWidth {
		return nil, malformed("truncated star run")
	}

	entry := &leaderboardEntry{Rank: rank, LocalScore: score}
	for k := 0; k < starRunWidth; k++ {
		switch rest[j+k] {
		case '*':
			entry.Stars[k] = starGold
		case '+':
			entry.Stars[k] = starSilver
		case '.', ' ':
			entry.Stars[k] = starNone
		default:
			return nil, malformed(fmt.Sprintf("unknown star glyph %q", rest[j+k]))
		}
	}
	entry.Name = strings.TrimSpace(rest[j+starRunWidth:])
	return entry, nil
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != ' ' {
			return false
		}
	}
	return true
}
