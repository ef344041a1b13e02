package events

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BinaryEvent is one scheduled event inside the scan horizon.
type BinaryEvent struct {
	Type        EventType `json:"type"`
	Date        string    `json:"date"` // YYYY-MM-DD
	DaysAway    int       `json:"days_away"`
	Impact      Impact    `json:"impact"`
	Description string    `json:"description"`
}

// HorizonResult summarizes upcoming events and the confidence haircut they
// impose on any technical setup.
type HorizonResult struct {
	Events               []BinaryEvent `json:"events"`
	HasBinaryEvent       bool          `json:"has_binary_event"`
	OverrideMessage      string        `json:"override_message,omitempty"`
	ConfidenceAdjustment int           `json:"confidence_adjustment"`
	Warnings             []string      `json:"warnings"`
}

// HorizonConfig controls the scan bands and per-band penalties.
type HorizonConfig struct {
	LookaheadDays int `mapstructure:"lookahead_days"`
	HighRiskDays  int `mapstructure:"high_risk_days"`
	BlockDays     int `mapstructure:"block_days"`

	FOMCBlockPenalty    int `mapstructure:"fomc_block_penalty"`
	FOMCHighRiskPenalty int `mapstructure:"fomc_high_risk_penalty"`
	FOMCOuterPenalty    int `mapstructure:"fomc_outer_penalty"`

	BlackoutBlockPenalty    int `mapstructure:"blackout_block_penalty"`
	BlackoutHighRiskPenalty int `mapstructure:"blackout_high_risk_penalty"`
	BlackoutOuterPenalty    int `mapstructure:"blackout_outer_penalty"`

	AdjustmentFloor int `mapstructure:"adjustment_floor"`
}

// DefaultHorizonConfig returns the standard 0-DTE desk bands.
func DefaultHorizonConfig() HorizonConfig {
	return HorizonConfig{
		LookaheadDays:           10,
		HighRiskDays:            5,
		BlockDays:               2,
		FOMCBlockPenalty:        -50,
		FOMCHighRiskPenalty:     -25,
		FOMCOuterPenalty:        -10,
		BlackoutBlockPenalty:    -50,
		BlackoutHighRiskPenalty: -20,
		BlackoutOuterPenalty:    -5,
		AdjustmentFloor:         -50,
	}
}

// Horizon scans the calendar for events within the lookahead window and
// computes warnings, the aggregate confidence adjustment, and whether a
// binary event should override the technical read entirely.
func Horizon(today time.Time, cal Calendar, cfg HorizonConfig) HorizonResult {
	day := truncateToDay(today)
	result := HorizonResult{
		Events:   []BinaryEvent{},
		Warnings: []string{},
	}

	for _, dateStr := range cal.fomcDates {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		days := daysBetween(day, d)
		if days < 0 || days > cfg.LookaheadDays {
			continue
		}
		result.Events = append(result.Events, BinaryEvent{
			Type:        EventFOMC,
			Date:        dateStr,
			DaysAway:    days,
			Impact:      ImpactHigh,
			Description: fomcDescription(days),
		})
		switch {
		case days <= cfg.BlockDays:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("FOMC in %d days - NO 0-DTE TRADES", days))
			result.ConfidenceAdjustment += cfg.FOMCBlockPenalty
		case days <= cfg.HighRiskDays:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("FOMC in %d days - reduce size, expect pinning", days))
			result.ConfidenceAdjustment += cfg.FOMCHighRiskPenalty
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("FOMC in %d days - monitor positioning shifts", days))
			result.ConfidenceAdjustment += cfg.FOMCOuterPenalty
		}
	}

	for _, entry := range cal.blackouts {
		d, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		days := daysBetween(day, d)
		if days < 0 || days > cfg.LookaheadDays {
			continue
		}
		impact := entry.Impact
		if days <= cfg.BlockDays {
			impact = ImpactHigh
		}
		result.Events = append(result.Events, BinaryEvent{
			Type:        EventBlackout,
			Date:        entry.Date,
			DaysAway:    days,
			Impact:      impact,
			Description: entry.Name,
		})
		// The block penalty keys off the entry's own impact; promotion
		// only marks the event itself.
		switch {
		case days <= cfg.BlockDays && entry.Impact == ImpactHigh:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s in %d days - high risk", entry.Name, days))
			result.ConfidenceAdjustment += cfg.BlackoutBlockPenalty
		case days <= cfg.HighRiskDays:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s in %d days", entry.Name, days))
			result.ConfidenceAdjustment += cfg.BlackoutHighRiskPenalty
		default:
			result.ConfidenceAdjustment += cfg.BlackoutOuterPenalty
		}
	}

	sort.SliceStable(result.Events, func(i, j int) bool {
		if result.Events[i].DaysAway != result.Events[j].DaysAway {
			return result.Events[i].DaysAway < result.Events[j].DaysAway
		}
		return result.Events[i].Description < result.Events[j].Description
	})

	if result.ConfidenceAdjustment < cfg.AdjustmentFloor {
		result.ConfidenceAdjustment = cfg.AdjustmentFloor
	}

	var blocking []string
	for _, ev := range result.Events {
		if ev.DaysAway <= cfg.HighRiskDays && ev.Impact == ImpactHigh {
			result.HasBinaryEvent = true
			blocking = append(blocking, ev.Description)
		}
	}
	if result.HasBinaryEvent {
		result.OverrideMessage = fmt.Sprintf(
			"HOLD/WAIT: Technical setup invalid due to: %s",
			strings.Join(blocking, ", "))
	}

	return result
}

// TradingBlocked reports whether a high-impact event inside the block band
// forbids opening any 0-DTE position, with the reason when blocked.
func TradingBlocked(result HorizonResult, cfg HorizonConfig) (bool, string) {
	for _, ev := range result.Events {
		if ev.DaysAway <= cfg.BlockDays && ev.Impact == ImpactHigh {
			return true, fmt.Sprintf("%s in %d days", ev.Description, ev.DaysAway)
		}
	}
	return false, ""
}

func fomcDescription(days int) string {
	if days == 0 {
		return "FOMC rate decision today"
	}
	return fmt.Sprintf("FOMC rate decision in %d days", days)
}
