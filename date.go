package main

import (
	"errors"
	"fmt"
	"time"
)

// Event calendar boundaries.
const (
	firstEventYear = 2015
	firstPuzzleDay = 1
	lastPuzzleDay  = 25
)

// eventZone is the fixed UTC-5 offset the event runs on. Puzzles unlock at
// midnight in this zone year-round, DST does not apply.
var eventZone = time.FixedZone("EST", -5*3600)

// puzzleDate identifies one puzzle by event year and day.
type puzzleDate struct {
	Year int
	Day  int
}

func (d puzzleDate) String() string {
	return fmt.Sprintf("day %d, %d", d.Day, d.Year)
}

// errEventNotStarted indicates day inference was requested for the current
// year before its event begins.
var errEventNotStarted = errors.New("event has not started yet, day cannot be inferred")

// lockedError indicates the puzzle's unlock instant is still in the future.
type lockedError struct {
	Year int
	Day  int
}

func (e *lockedError) Error() string {
	return fmt.Sprintf("puzzle %d of %d is still locked", e.Day, e.Year)
}

// invalidDateError indicates a year or day outside the event calendar.
type invalidDateError struct {
	Field string
	Value int
}

func (e *invalidDateError) Error() string {
	return fmt.Sprintf("%d is not a valid puzzle %s", e.Value, e.Field)
}

// latestEventYear returns the year of the most recently started event: the
// current year from December 1 on, the previous year otherwise.
func latestEventYear(now time.Time) int {
	now = now.In(eventZone)
	if now.Month() < time.December {
		return now.Year() - 1
	}
	return now.Year()
}

// latestPuzzleDay infers the most recent unlocked day of the given event
// year. Past events are fully unlocked. During an active event the current
// day of month is the latest unlocked one.
func latestPuzzleDay(year int, now time.Time) (int, error) {
	now = now.In(eventZone)
	switch {
	case year == now.Year() && now.Month() == time.December:
		if now.Day() > lastPuzzleDay {
			return lastPuzzleDay, nil
		}
		return now.Day(), nil
	case year < now.Year():
		return lastPuzzleDay, nil
	default:
		return 0, errEventNotStarted
	}
}

// unlockTime returns the instant the puzzle becomes accessible: midnight of
// December Day in the event timezone.
func unlockTime(d puzzleDate) time.Time {
	return time.Date(d.Year, time.December, d.Day, 0, 0, 0, 0, eventZone)
}

func (d puzzleDate) unlocked(now time.Time) bool {
	return !now.Before(unlockTime(d))
}

func (d puzzleDate) ensureUnlocked(now time.Time) error {
	if d.unlocked(now) {
		return nil
	}
	return &lockedError{Year: d.Year, Day: d.Day}
}

// resolveYear validates an explicit year, or infers the latest event year
// when the argument is zero.
func resolveYear(year int, now time.Time) (int, error) {
	if year == 0 {
		return latestEventYear(now), nil
	}
	if year < firstEventYear {
		return 0, &invalidDateError{Field: "year", Value: year}
	}
	return year, nil
}

// resolvePuzzleDate turns optional explicit year and day (zero means
// omitted) into a validated, unlocked puzzle date. The unlock check applies
// to explicit dates too, so no request is ever built for a locked puzzle.
func resolvePuzzleDate(year, day int, now time.Time) (puzzleDate, error) {
	year, err := resolveYear(year, now)
	if err != nil {
		return puzzleDate{}, err
	}
	if day == 0 {
		if day, err = latestPuzzleDay(year, now); err != nil {
			return puzzleDate{}, err
		}
	}
	if day < firstPuzzleDay || day > lastPuzzleDay {
		return puzzleDate{}, &invalidDateError{Field: "day", Value: day}
	}
	d := puzzleDate{Year: year, Day: day}
	if err := d.ensureUnlocked(now); err != nil {
		return puzzleDate{}, err
	}
	return d, nil
}

// lastUnlockedDay reports how many days of the given event year are
// unlocked; zero for events that have not started.
func lastUnlockedDay(year int, now time.Time) int {
	day, err := latestPuzzleDay(year, now)
	if err != nil {
		return 0
	}
	return day
}
