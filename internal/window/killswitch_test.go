package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

func fptr(v float64) *float64 { return &v }

func calmInput() KillSwitchInput {
	return KillSwitchInput{
		VIX:           14,
		VIXRegime:     vol.RegimeLow,
		TermStructure: vol.TermContango,
		Window:        &Window{Name: "Mid-Day", Type: TypeManage},
	}
}

func TestKillSwitchCalm(t *testing.T) {
	status := EvaluateKillSwitch(calmInput(), DefaultKillSwitchConfig())
	assert.Equal(t, ThreatNormal, status.ThreatLevel)
	assert.Empty(t, status.Alerts)
	assert.False(t, status.Recommended)
}

func TestKillSwitchVIX1DSpike(t *testing.T) {
	input := calmInput()
	input.VIX1DChangePct = fptr(12.5)
	status := EvaluateKillSwitch(input, DefaultKillSwitchConfig())

	assert.Equal(t, ThreatCritical, status.ThreatLevel)
	assert.True(t, status.Recommended)
	require.Len(t, status.Alerts, 1)
	assert.Equal(t, "vix_spike", status.Alerts[0].Type)
	assert.Contains(t, status.Alerts[0].Message, "CLOSE ALL")

	input.VIX1DChangePct = fptr(6.0)
	status = EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatElevated, status.ThreatLevel)
	assert.False(t, status.Recommended)
}

func TestKillSwitchWindowRules(t *testing.T) {
	input := calmInput()
	input.Window = &Window{Name: "Final Minutes", Type: TypeLethal}
	status := EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatCritical, status.ThreatLevel)
	assert.Equal(t, "EXIT NOW", status.Alerts[0].Message)

	input.Window = &Window{Name: "Danger Zone", Type: TypeDanger}
	input.TimeToExit = "30m"
	status = EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatElevated, status.ThreatLevel)
	assert.Contains(t, status.Alerts[0].Message, "30m to exit")

	input.Window = nil
	status = EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatNormal, status.ThreatLevel)
}

func TestKillSwitchVIXRegimeAndTermStructure(t *testing.T) {
	input := calmInput()
	input.VIX = 33
	input.VIXRegime = vol.RegimeExtreme
	status := EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatCritical, status.ThreatLevel)
	assert.True(t, status.Recommended)

	input = calmInput()
	input.TermStructure = vol.TermBackwardation
	status = EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatElevated, status.ThreatLevel)
	assert.Equal(t, "term", status.Alerts[0].Type)
}

func TestKillSwitchMaxSeverityWins(t *testing.T) {
	// Elevated rules stacked under one critical rule still report critical.
	input := KillSwitchInput{
		VIX:            33,
		VIXRegime:      vol.RegimeExtreme,
		VIX1DChangePct: fptr(7.0),
		TermStructure:  vol.TermBackwardation,
		Window:         &Window{Name: "Danger Zone", Type: TypeDanger},
		TimeToExit:     "10m",
	}
	status := EvaluateKillSwitch(input, DefaultKillSwitchConfig())
	assert.Equal(t, ThreatCritical, status.ThreatLevel)
	assert.Len(t, status.Alerts, 4)
	assert.True(t, status.Recommended)
}
