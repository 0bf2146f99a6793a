package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calendarPage draws days in the given order with the given star classes,
// mimicking the pyramid layout where visual order has nothing to do with
// day order.
func calendarPage(containerClass string, days []int, classes map[int]string) []byte {
	var b strings.Builder
	b.WriteString(`<html><body><main><pre class="` + containerClass + `">`)
	for _, day := range days {
		extra := classes[day]
		fmt.Fprintf(&b, `<a href="/2024/day/%d" class="calendar-day%d %s"><span class="calendar-day">%2d</span></a>`+"\n", day, day, extra, day)
	}
	b.WriteString(`</pre></main></body></html>`)
	return []byte(b.String())
}

func TestParseCalendar(t *testing.T) {
	// Draw order is reversed and interleaved; parsing must key on the day
	// class, not document position.
	days := make([]int, 0, 25)
	for d := 25; d >= 1; d-- {
		days = append(days, d)
	}
	classes := map[int]string{
		1:  "calendar-verycomplete",
		2:  "calendar-complete",
		13: "calendar-verycomplete",
		25: "calendar-complete",
	}

	entries, err := parseCalendar(calendarPage("calendar", days, classes))
	require.NoError(t, err)
	require.Len(t, entries, 25)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Day, "entries must be in day order")
	}
	assert.Equal(t, 2, entries[0].Stars)
	assert.Equal(t, 1, entries[1].Stars)
	assert.Equal(t, 0, entries[2].Stars)
	assert.Equal(t, 2, entries[12].Stars)
	assert.Equal(t, 1, entries[24].Stars)
}

func TestParseCalendarSparseYear(t *testing.T) {
	// Some pages omit day rows entirely; missing days count as zero stars
	// so the calendar is still complete.
	entries, err := parseCalendar(calendarPage("calendar", []int{3, 1, 2}, map[int]string{
		1: "calendar-complete",
	}))
	require.NoError(t, err)
	require.Len(t, entries, 25)
	assert.Equal(t, 1, entries[0].Stars)
	assert.Equal(t, 0, entries[3].Stars)
	assert.Equal(t, 0, entries[24].Stars)
}

func TestParseCalendarPerfect(t *testing.T) {
	days := make([]int, 0, 25)
	for d := 1; d <= 25; d++ {
		days = append(days, d)
	}
	entries, err := parseCalendar(calendarPage("calendar calendar-perfect", days, nil))
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, 2, e.Stars, "day %d", e.Day)
	}
}

func TestParseCalendarErrors(t *testing.T) {
	t.Run("no star grid at all", func(t *testing.T) {
		_, err := parseCalendar([]byte(`<html><body><main><p>nothing here</p></main></body></html>`))
		var fe *formatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "calendar", fe.Page)
	})

	t.Run("missing main", func(t *testing.T) {
		_, err := parseCalendar([]byte(`<html><body></body></html>`))
		var fe *formatError
		assert.ErrorAs(t, err, &fe)
	})

	t.Run("duplicate day", func(t *testing.T) {
		_, err := parseCalendar(calendarPage("calendar", []int{4, 4}, nil))
		var fe *formatError
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe.Detail, "twice")
	})

	t.Run("day out of range", func(t *testing.T) {
		_, err := parseCalendar(calendarPage("calendar", []int{26}, nil))
		var fe *formatError
		assert.ErrorAs(t, err, &fe)
	})
}
