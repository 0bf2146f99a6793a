package main

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/net/html"
)

// calendarEntry is the completion state of one advent day: 0, 1 or 2 stars.
type calendarEntry struct {
	Day   int
	Stars int
}

// dayClassRe extracts the day number from a calendar anchor's class list,
// e.g. "calendar-day4 calendar-verycomplete".
var dayClassRe = regexp.MustCompile(`\bcalendar-day([0-9]+)\b`)

// parseCalendar extracts the star grid from an event calendar page. The
// grid is drawn as ASCII art in arbitrary visual order; entries are keyed
// by the day number on each anchor and always returned as exactly 25 values
// in day order. Days the page omits count as zero stars.
func parseCalendar(body []byte) ([]calendarEntry, error) {
	mainNode, err := parseMain(body, "calendar")
	if err != nil {
		return nil, err
	}

	// On a 50-star calendar the site marks the container perfect instead of
	// the individual days.
	perfect := false
	stars := make(map[int]int)

	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			if hasClass(n, "calendar-perfect") {
				perfect = true
			}
			if n.Data == "a" {
				if m := dayClassRe.FindStringSubmatch(attrVal(n, "class")); m != nil {
					day, _ := strconv.Atoi(m[1])
					if day < firstPuzzleDay || day > lastPuzzleDay {
						return &formatError{Page: "calendar", Detail: fmt.Sprintf("day %d outside calendar", day)}
					}
					if _, seen := stars[day]; seen {
						return &formatError{Page: "calendar", Detail: fmt.Sprintf("day %d appears twice", day)}
					}
					switch {
					case hasClass(n, "calendar-verycomplete"):
						stars[day] = 2
					case hasClass(n, "calendar-complete"):
						stars[day] = 1
					default:
						stars[day] = 0
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(mainNode); err != nil {
		return nil, err
	}
	if len(stars) == 0 {
		return nil, &formatError{Page: "calendar", Detail: "no calendar day anchors found"}
	}

	entries := make([]calendarEntry, 0, lastPuzzleDay)
	for day := firstPuzzleDay; day <= lastPuzzleDay; day++ {
		count := stars[day]
		if perfect {
			count = 2
		}
		entries = append(entries, calendarEntry{Day: day, Stars: count})
	}
	return entries, nil
}
