package scanner

import (
	"time"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
	"github.com/dgnsrekt/optionsdesk/internal/decision"
	"github.com/dgnsrekt/optionsdesk/internal/events"
	"github.com/dgnsrekt/optionsdesk/internal/gex"
	"github.com/dgnsrekt/optionsdesk/internal/vol"
	"github.com/dgnsrekt/optionsdesk/internal/window"
)

// MarketInputs carries the session-wide reads shared by every symbol in a
// batch. The scanner never fetches; callers supply these up front.
type MarketInputs struct {
	VIX            float64
	VIX1D          *float64
	VIX1DChangePct *float64
	SPYChangePct   float64
}

// Pipeline holds everything needed to take one chain snapshot to a full
// per-symbol verdict. It is a plain value; concurrent workers share it
// without locking.
type Pipeline struct {
	Profile    gex.ProfileConfig
	Regime     gex.RegimeConfig
	Horizon    events.HorizonConfig
	Decision   decision.Config
	VIX        vol.VIXConfig
	IVProfiles map[string]vol.IVProfile

	Calendar events.Calendar
	Market   MarketInputs
	Now      time.Time
}

// SymbolReport is the composed analytics for one underlying.
type SymbolReport struct {
	Symbol    string               `json:"symbol"`
	Spot      float64              `json:"spot"`
	Profile   gex.Profile          `json:"profile"`
	Levels    gex.KeyLevels        `json:"levels"`
	Regime    gex.MarketRegime     `json:"regime"`
	IV        vol.IVMetrics        `json:"iv"`
	VIXRegime vol.Regime           `json:"vix_regime"`
	Desk      decision.DeskResult  `json:"desk"`
	Horizon   events.HorizonResult `json:"horizon"`
}

// Run executes the full analytics chain for one snapshot. A thin or empty
// chain degrades to estimated data sources; it never fails the symbol.
func (p Pipeline) Run(snap *chain.Snapshot) (SymbolReport, error) {
	profile, err := gex.BuildProfile(snap, p.Profile)
	if err != nil {
		return SymbolReport{}, err
	}

	levels := gex.FindKeyLevels(profile.Levels, snap.Spot)
	regime := gex.ClassifyRegime(profile.TotalExposure, p.Regime)
	ivMetrics := vol.ComputeIVMetrics(snap, p.IVProfiles)
	horizon := events.Horizon(p.Now, p.Calendar, p.Horizon)

	vixRegime := vol.ClassifyVIX(p.Market.VIX, p.VIX)
	macro := decision.MacroSnapshot{
		VIXLevel:    p.Market.VIX,
		VIXRegime:   vixRegime,
		MarketTrend: decision.ClassifyMarketTrend(p.Market.SPYChangePct, p.Decision),
	}

	deskInput := decision.DeskInput{
		Symbol:    snap.Underlying,
		Price:     snap.Spot,
		ZeroGamma: levels.GammaFlip,
		CallWall:  levels.CallWall,
		PutWall:   levels.PutWall,
		NetGEX:    profile.TotalExposure,
		// Flow reads need an intraday feed; without one they stay neutral.
		NetDelta:    decision.FlowFlat,
		VannaFlow:   decision.VannaNeutral,
		CharmEffect: decision.CharmNeutral,
		DarkPool:    decision.DarkPoolNone,
	}
	if input := p.charmFromRegime(regime); input != decision.CharmNeutral {
		deskInput.CharmEffect = input
	}

	desk := decision.ComposeDesk(deskInput, horizon, macro, p.Decision)

	return SymbolReport{
		Symbol:    snap.Underlying,
		Spot:      snap.Spot,
		Profile:   *profile,
		Levels:    levels,
		Regime:    regime,
		IV:        ivMetrics,
		VIXRegime: vixRegime,
		Desk:      desk,
		Horizon:   horizon,
	}, nil
}

// charmFromRegime infers pinning pressure from dealer positioning when no
// live charm read exists: a strong long-gamma book pins price.
func (p Pipeline) charmFromRegime(regime gex.MarketRegime) decision.CharmEffect {
	if regime.Type == gex.RegimePositiveGamma && regime.Strength == gex.StrengthStrong {
		return decision.CharmPinning
	}
	return decision.CharmNeutral
}

// KillSwitch evaluates the batch-level kill switch for the session clock.
func (p Pipeline) KillSwitch(clock *window.Clock, cfg window.KillSwitchConfig) window.KillSwitchStatus {
	status := clock.Evaluate(p.Now)

	term := vol.TermUnknown
	if p.Market.VIX1D != nil {
		term = vol.ClassifyTermStructure(*p.Market.VIX1D, p.Market.VIX, p.VIX)
	}

	return window.EvaluateKillSwitch(window.KillSwitchInput{
		VIX:            p.Market.VIX,
		VIXRegime:      vol.ClassifyVIX(p.Market.VIX, p.VIX),
		VIX1DChangePct: p.Market.VIX1DChangePct,
		TermStructure:  term,
		Window:         status.CurrentWindow,
		TimeToExit:     status.TimeToExit,
	}, cfg)
}
