package config

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDate represents a calendar entry that could not be parsed.
type InvalidDate struct {
	Source string // "fomc" or "blackout"
	Value  string
}

// ValidationErrors collects all validation errors
type ValidationErrors struct {
	FieldErrors  []string
	InvalidDates []InvalidDate
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.FieldErrors) > 0 || len(e.InvalidDates) > 0
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")

	if len(e.FieldErrors) > 0 {
		sb.WriteString("\nInvalid settings:\n")
		for _, f := range e.FieldErrors {
			sb.WriteString(fmt.Sprintf("  - %s\n", f))
		}
	}

	if len(e.InvalidDates) > 0 {
		sb.WriteString("\nUnparseable calendar dates (use YYYY-MM-DD):\n")
		for _, d := range e.InvalidDates {
			sb.WriteString(fmt.Sprintf("  - %s: %q\n", d.Source, d.Value))
		}
	}

	return sb.String()
}

// Validate checks every configured value that can render the engine
// undefined, collecting all problems in one pass.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	addf := func(format string, args ...any) {
		errs.FieldErrors = append(errs.FieldErrors, fmt.Sprintf(format, args...))
	}

	if len(c.Symbols) == 0 {
		addf("symbols must not be empty")
	}
	for _, s := range c.Symbols {
		if strings.TrimSpace(s) == "" {
			addf("symbols contains a blank entry")
			break
		}
	}

	if c.Pricing.RiskFreeRatePct < 0 || c.Pricing.RiskFreeRatePct > 25 {
		addf("pricing.risk_free_rate_pct must be in [0, 25], got %v", c.Pricing.RiskFreeRatePct)
	}

	if c.Scan.Workers < 1 {
		addf("scan.workers must be >= 1, got %d", c.Scan.Workers)
	}
	if c.Scan.RatePerSecond < 1 {
		addf("scan.rate_per_second must be >= 1, got %d", c.Scan.RatePerSecond)
	}

	if c.GEX.CallWallThreshold <= 0 {
		addf("gex.call_wall_threshold must be positive, got %v", c.GEX.CallWallThreshold)
	}
	if c.GEX.PutWallThreshold >= 0 {
		addf("gex.put_wall_threshold must be negative, got %v", c.GEX.PutWallThreshold)
	}
	if c.GEX.FlipThreshold <= 0 {
		addf("gex.flip_threshold must be positive, got %v", c.GEX.FlipThreshold)
	}
	if c.GEX.Expirations < 1 {
		addf("gex.expirations must be >= 1, got %d", c.GEX.Expirations)
	}

	if c.Regime.Threshold <= 0 {
		addf("regime.threshold must be positive, got %v", c.Regime.Threshold)
	}
	if c.Regime.StrongThreshold <= c.Regime.Threshold {
		addf("regime.strong_threshold must exceed regime.threshold")
	}

	if c.Events.BlockDays > c.Events.HighRiskDays || c.Events.HighRiskDays > c.Events.LookaheadDays {
		addf("events windows must be ordered: block_days <= high_risk_days <= lookahead_days")
	}
	if c.Events.AdjustmentFloor > 0 {
		addf("events.adjustment_floor must be <= 0, got %d", c.Events.AdjustmentFloor)
	}

	if !(c.Decision.NoTradeBelow <= c.Decision.DowngradeBelow) {
		addf("decision.no_trade_below must not exceed decision.downgrade_below")
	}
	if !(c.Decision.StrongAvoidBelow <= c.Decision.AvoidBelow && c.Decision.AvoidBelow <= c.Decision.NeutralBelow) {
		addf("decision signal cuts must be ordered: strong_avoid_below <= avoid_below <= neutral_below")
	}

	if !(c.VIX.LowMax < c.VIX.ElevatedMax && c.VIX.ElevatedMax < c.VIX.HighMax) {
		addf("vix cut points must be ordered: low_max < elevated_max < high_max")
	}
	if c.VIX.ContangoRatio >= 1 || c.VIX.BackwardationRatio <= 1 {
		addf("vix term-structure bands must straddle 1.0")
	}

	if c.Kill.SpikeElevated >= c.Kill.SpikeCritical {
		addf("kill_switch.spike_elevated must be below kill_switch.spike_critical")
	}

	for _, d := range c.Calendar.FOMCDates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			errs.InvalidDates = append(errs.InvalidDates, InvalidDate{Source: "fomc", Value: d})
		}
	}
	for _, b := range c.Calendar.Blackouts {
		if _, err := time.Parse("2006-01-02", b.Date); err != nil {
			errs.InvalidDates = append(errs.InvalidDates, InvalidDate{Source: "blackout", Value: b.Date})
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
