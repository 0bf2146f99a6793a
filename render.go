package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultOutputWidth = 80

// Star colors match the site: gold for both parts, a muted silver for part
// one, dim gray for nothing.
var (
	goldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	silverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#606060"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// terminalWidth returns the current terminal width, or the default when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultOutputWidth
}

// renderPuzzle renders puzzle markdown for the terminal at the given wrap
// width.
func renderPuzzle(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("build renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render puzzle: %w", err)
	}
	return out, nil
}

// renderCalendar lays the 25 days out as a 5x5 grid numbered column-major:
// days 1-5 run down the first column. Each cell shows the day number and
// its colored stars.
func renderCalendar(entries []calendarEntry, year int) string {
	const rows, cols = 5, 5

	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("Advent of Code %d", year)) + "\n\n")
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, cols)
		for col := 0; col < cols; col++ {
			day := col*rows + row + 1
			e := entries[day-1]
			var stars string
			switch e.Stars {
			case 2:
				stars = goldStyle.Render("**")
			case 1:
				stars = silverStyle.Render("*") + " "
			default:
				stars = dimStyle.Render("..")
			}
			cells = append(cells, fmt.Sprintf("%2d %s", day, stars))
		}
		b.WriteString(strings.Join(cells, "   ") + "\n")
	}
	return b.String()
}

// Day-number header for leaderboard star columns, split at the last
// unlocked day when rendered.
var leaderboardHeaders = [2]string{
	"         1111111111222222",
	"1234567890123456789012345",
}

// renderLeaderboard formats a leaderboard snapshot the way the site's own
// standings read: rank and score columns sized to their widest value, then
// the 25-day star run, then the member name.
func renderLeaderboard(lb *leaderboard, lastUnlocked int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Private leaderboard for Advent of Code %s.\n\n",
		boldStyle.Render(fmt.Sprint(lb.Year)))
	fmt.Fprintf(&b, "%s indicates the user got both stars for that day,\n%s means just the first star, and a %s means none.\n\n",
		goldStyle.Render("Gold *"),
		silverStyle.Render("silver *"),
		dimStyle.Render("gray dot (.)"))

	rankWidth, scoreWidth := 1, 1
	for _, e := range lb.Entries {
		if w := len(fmt.Sprint(e.Rank)); w > rankWidth {
			rankWidth = w
		}
		if w := len(fmt.Sprint(e.LocalScore)); w > scoreWidth {
			scoreWidth = w
		}
	}

	pad := strings.Repeat(" ", rankWidth+scoreWidth)
	for _, header := range leaderboardHeaders {
		on, off := header[:lastUnlocked], header[lastUnlocked:]
		fmt.Fprintf(&b, "%s   %s%s\n", pad, on, dimStyle.Render(off))
	}

	for _, e := range lb.Entries {
		var stars strings.Builder
		for day := firstPuzzleDay; day <= lastPuzzleDay; day++ {
			if day > lastUnlocked {
				stars.WriteString(" ")
				continue
			}
			switch e.Stars[day-1] {
			case starGold:
				stars.WriteString(goldStyle.Render("*"))
			case starSilver:
				stars.WriteString(silverStyle.Render("*"))
			default:
				stars.WriteString(dimStyle.Render("."))
			}
		}
		fmt.Fprintf(&b, "%*d) %*d %s  %s\n", rankWidth, e.Rank, scoreWidth, e.LocalScore, stars.String(), e.Name)
	}
	return b.String()
}

// renderVerdict formats a submission verdict for the terminal.
func renderVerdict(v *submissionVerdict) string {
	switch v.Kind {
	case verdictCorrect, verdictAlreadySolved:
		return goldStyle.Render(v.Message)
	case verdictTooRecent:
		return fmt.Sprintf("%s (wait %s)", v.Message, v.Wait)
	case verdictIncorrect:
		return v.Message
	default:
		return v.Message
	}
}
