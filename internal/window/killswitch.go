package window

import (
	"fmt"

	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

// ThreatLevel is the kill-switch severity.
type ThreatLevel string

const (
	ThreatNormal   ThreatLevel = "normal"
	ThreatElevated ThreatLevel = "elevated"
	ThreatCritical ThreatLevel = "critical"
)

var threatRank = map[ThreatLevel]int{
	ThreatNormal:   0,
	ThreatElevated: 1,
	ThreatCritical: 2,
}

// Alert is one triggered kill-switch rule.
type Alert struct {
	Type     string      `json:"type"`
	Severity ThreatLevel `json:"severity"`
	Message  string      `json:"message"`
}

// KillSwitchInput carries the live volatility reads and the current window.
// VIX1DChangePct is nil when the 1-day index has no quote.
type KillSwitchInput struct {
	VIX            float64
	VIXRegime      vol.Regime
	VIX1DChangePct *float64
	TermStructure  vol.TermStructure
	Window         *Window
	TimeToExit     string
}

// KillSwitchConfig holds the spike thresholds, in percent.
type KillSwitchConfig struct {
	SpikeCritical float64 `mapstructure:"spike_critical"`
	SpikeElevated float64 `mapstructure:"spike_elevated"`
}

// DefaultKillSwitchConfig returns the 10%/5% VIX1D spike thresholds.
func DefaultKillSwitchConfig() KillSwitchConfig {
	return KillSwitchConfig{SpikeCritical: 10, SpikeElevated: 5}
}

// KillSwitchStatus is the evaluated threat verdict.
type KillSwitchStatus struct {
	ThreatLevel ThreatLevel `json:"threat_level"`
	Alerts      []Alert     `json:"alerts"`
	Recommended bool        `json:"kill_switch_recommended"`
}

// EvaluateKillSwitch derives the threat level from the volatility reads and
// the time of day. Every rule is checked; the result is the maximum severity
// any rule triggered, never an average.
func EvaluateKillSwitch(input KillSwitchInput, cfg KillSwitchConfig) KillSwitchStatus {
	status := KillSwitchStatus{ThreatLevel: ThreatNormal, Alerts: []Alert{}}

	raise := func(level ThreatLevel, alert Alert) {
		status.Alerts = append(status.Alerts, alert)
		if threatRank[level] > threatRank[status.ThreatLevel] {
			status.ThreatLevel = level
		}
	}

	if v := input.VIX1DChangePct; v != nil {
		switch {
		case *v > cfg.SpikeCritical:
			raise(ThreatCritical, Alert{
				Type: "vix_spike", Severity: ThreatCritical,
				Message: fmt.Sprintf("VIX1D +%.1f%% - CLOSE ALL", *v),
			})
		case *v > cfg.SpikeElevated:
			raise(ThreatElevated, Alert{
				Type: "vix_elevated", Severity: ThreatElevated,
				Message: fmt.Sprintf("VIX1D +%.1f%%", *v),
			})
		}
	}

	if input.Window != nil {
		switch input.Window.Type {
		case TypeLethal:
			raise(ThreatCritical, Alert{
				Type: "time", Severity: ThreatCritical, Message: "EXIT NOW",
			})
		case TypeDanger:
			raise(ThreatElevated, Alert{
				Type: "time", Severity: ThreatElevated,
				Message: fmt.Sprintf("%s to exit", input.TimeToExit),
			})
		}
	}

	if input.VIXRegime == vol.RegimeExtreme {
		raise(ThreatCritical, Alert{
			Type: "vix", Severity: ThreatCritical,
			Message: fmt.Sprintf("VIX %.1f EXTREME", input.VIX),
		})
	}

	if input.TermStructure == vol.TermBackwardation {
		raise(ThreatElevated, Alert{
			Type: "term", Severity: ThreatElevated, Message: "VIX backwardation",
		})
	}

	status.Recommended = status.ThreatLevel == ThreatCritical
	return status
}
