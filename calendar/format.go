package calendar

import (
	"sort"
	"strings"
	"time"
)

const maxDisplayedNameLen = 50

// FormatMonth renders a month's events as a per day listing, the way they are
// posted in the guild's calendar message. The events are assumed to all fall
// in the given month, no filtering happens here.
func FormatMonth(events []*Event, year int, month time.Month, includeEmptyDays bool) string {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].Name < events[j].Name
	})

	byDay := make(map[int][]*Event)
	for _, e := range events {
		byDay[e.Timestamp.Day()] = append(byDay[e.Timestamp.Day()], e)
	}

	var out strings.Builder
	out.WriteString("**Events for " + month.String() + "**")

	current := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for current.Month() == month {
		day := current.Day()
		dayEvents := byDay[day]

		if len(dayEvents) > 0 || includeEmptyDays {
			out.WriteString("\n**" + current.Weekday().String() + " " + FormatDayOrdinal(day) + "**")
			for _, e := range dayEvents {
				name := e.Name
				// truncate on rune boundaries, names can hold emoji
				if runes := []rune(name); len(runes) > maxDisplayedNameLen {
					name = string(runes[:maxDisplayedNameLen]) + "..."
				}
				out.WriteString("\n• " + name)
			}
		}

		current = current.AddDate(0, 0, 1)
	}

	return out.String()
}
