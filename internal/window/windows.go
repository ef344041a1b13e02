package window

import (
	"fmt"
	"time"

	"github.com/scmhub/calendar"
)

// Type names a time-of-day trading zone.
type Type string

const (
	TypePrep    Type = "prep"
	TypeAvoid   Type = "avoid"
	TypeOptimal Type = "optimal"
	TypeManage  Type = "manage"
	TypeCaution Type = "caution"
	TypeDanger  Type = "danger"
	TypeLethal  Type = "lethal"
)

// Window is one contiguous zone, bounds in minutes after midnight Eastern.
// Start is inclusive, End exclusive.
type Window struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Type  Type   `json:"type"`
}

// exitMinute is the forced 0-DTE exit line: 3:50 PM Eastern.
const exitMinute = 950

// DefaultWindows returns the desk's zone table.
func DefaultWindows() []Window {
	return []Window{
		{Name: "Pre-Market", Start: 480, End: 570, Type: TypePrep},
		{Name: "Opening Range", Start: 570, End: 585, Type: TypeAvoid},
		{Name: "Optimal Entry", Start: 585, End: 615, Type: TypeOptimal},
		{Name: "Mid-Day", Start: 615, End: 840, Type: TypeManage},
		{Name: "Power Hour", Start: 840, End: 900, Type: TypeCaution},
		{Name: "Danger Zone", Start: 900, End: 950, Type: TypeDanger},
		{Name: "Final Minutes", Start: 950, End: 960, Type: TypeLethal},
	}
}

// Status is the evaluated trading-window state at one instant.
type Status struct {
	CurrentTime   string   `json:"current_time"`
	CurrentWindow *Window  `json:"current_window"`
	TimeToExit    string   `json:"time_to_exit"`
	MinutesToExit int      `json:"minutes_to_exit"`
	MarketOpen    bool     `json:"market_open"`
	MarketDay     bool     `json:"market_day"`
	Windows       []Window `json:"windows"`
}

// Clock evaluates trading windows against the NYSE session calendar.
type Clock struct {
	windows  []Window
	location *time.Location
	nyse     *calendar.Calendar
}

// NewClock builds a clock over the given window table. A nil or empty table
// uses the defaults. Falls back to UTC when the Eastern zone is unavailable.
func NewClock(windows []Window) *Clock {
	if len(windows) == 0 {
		windows = DefaultWindows()
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Clock{
		windows:  windows,
		location: loc,
		nyse:     calendar.XNYS(),
	}
}

// Evaluate classifies the given instant. Non-business days report no window
// and a closed market regardless of the hour.
func (c *Clock) Evaluate(now time.Time) Status {
	local := now.In(c.location)
	minutes := local.Hour()*60 + local.Minute()

	status := Status{
		CurrentTime: local.Format("15:04:05 ET"),
		Windows:     c.windows,
		MarketDay:   c.nyse.IsBusinessDay(local),
	}

	remaining, label := TimeToExit(minutes)
	status.MinutesToExit = remaining
	status.TimeToExit = label

	if !status.MarketDay {
		status.TimeToExit = "MARKET CLOSED"
		status.MinutesToExit = 0
		return status
	}

	if w, ok := Lookup(minutes, c.windows); ok {
		status.CurrentWindow = &w
	}
	status.MarketOpen = minutes >= 570 && minutes < 960
	return status
}

// Lookup finds the window covering the given minute-of-day.
func Lookup(minutes int, windows []Window) (Window, bool) {
	for _, w := range windows {
		if w.Start <= minutes && minutes < w.End {
			return w, true
		}
	}
	return Window{}, false
}

// TimeToExit reports minutes until the forced exit line and a display label.
func TimeToExit(minutes int) (int, string) {
	if minutes >= exitMinute {
		return 0, "PAST EXIT"
	}
	remaining := exitMinute - minutes
	if remaining >= 60 {
		return remaining, fmt.Sprintf("%dh %dm", remaining/60, remaining%60)
	}
	return remaining, fmt.Sprintf("%dm", remaining)
}
