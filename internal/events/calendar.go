package events

import (
	"time"
)

// EventType names the source of a binary event.
type EventType string

const (
	EventFOMC     EventType = "fomc"
	EventBlackout EventType = "blackout"
	EventEarnings EventType = "earnings"
)

// Impact grades how hard an event can invalidate a technical setup.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// BlackoutEntry is one user-maintained blackout date (CPI, NFP, earnings...).
type BlackoutEntry struct {
	Date   string `json:"date" mapstructure:"date"` // YYYY-MM-DD
	Name   string `json:"name" mapstructure:"name"`
	Impact Impact `json:"impact" mapstructure:"impact"`
}

// Calendar is an immutable snapshot of the fixed macro schedule plus the
// user blackout list. Updates produce a new value; concurrent scans can keep
// reading an old snapshot safely.
type Calendar struct {
	fomcDates []string
	blackouts []BlackoutEntry
}

// NewCalendar builds a calendar from FOMC dates and blackout entries.
// Inputs are copied; later mutation of the arguments has no effect.
func NewCalendar(fomcDates []string, blackouts []BlackoutEntry) Calendar {
	return Calendar{
		fomcDates: append([]string(nil), fomcDates...),
		blackouts: append([]BlackoutEntry(nil), blackouts...),
	}
}

// WithBlackouts returns a new calendar with the blackout list fully replaced.
// Partial merges are deliberately unsupported to avoid stale-entry ambiguity.
func (c Calendar) WithBlackouts(entries []BlackoutEntry) Calendar {
	return Calendar{
		fomcDates: c.fomcDates,
		blackouts: append([]BlackoutEntry(nil), entries...),
	}
}

// FOMCDates returns a copy of the fixed macro schedule.
func (c Calendar) FOMCDates() []string {
	return append([]string(nil), c.fomcDates...)
}

// Blackouts returns a copy of the blackout list.
func (c Calendar) Blackouts() []BlackoutEntry {
	return append([]BlackoutEntry(nil), c.blackouts...)
}

// NextFOMC returns the next scheduled FOMC meeting on or after today.
func (c Calendar) NextFOMC(today time.Time) (BinaryEvent, bool) {
	day := truncateToDay(today)
	for _, dateStr := range c.fomcDates {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if !d.Before(day) {
			days := daysBetween(day, d)
			return BinaryEvent{
				Type:        EventFOMC,
				Date:        dateStr,
				DaysAway:    days,
				Impact:      ImpactHigh,
				Description: fomcDescription(days),
			}, true
		}
	}
	return BinaryEvent{}, false
}

// DefaultFOMCDates is the fixed FOMC meeting schedule. Updated annually.
func DefaultFOMCDates() []string {
	return []string{
		// 2025
		"2025-01-29", "2025-03-19", "2025-05-07", "2025-06-18",
		"2025-07-30", "2025-09-17", "2025-11-05", "2025-12-17",
		// 2026
		"2026-01-28", "2026-03-18", "2026-04-29", "2026-06-17",
		"2026-07-29", "2026-09-16", "2026-11-04", "2026-12-16",
		// 2027
		"2027-01-27", "2027-03-17", "2027-05-05", "2027-06-16",
		"2027-07-28", "2027-09-15", "2027-11-03", "2027-12-15",
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
