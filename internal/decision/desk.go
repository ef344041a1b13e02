package decision

import (
	"fmt"
	"math"

	"github.com/dgnsrekt/optionsdesk/internal/events"
)

// Status is the 0-DTE desk verdict.
type Status string

const (
	StatusGreenLight Status = "green_light"
	StatusCaution    Status = "caution"
	StatusNoTrade    Status = "no_trade"
)

// DeskRegime names the intraday playbook in effect.
type DeskRegime string

const (
	RegimeTrendDay           DeskRegime = "trend_day"
	RegimeMeanReversion      DeskRegime = "mean_reversion"
	RegimeVolatilityBreakout DeskRegime = "volatility_breakout"
	RegimeGammaSqueeze       DeskRegime = "gamma_squeeze"
	RegimeChoppyFakeout      DeskRegime = "choppy_fakeout"
)

// FakeoutRisk grades the chance the current move is a trap.
type FakeoutRisk string

const (
	FakeoutLow    FakeoutRisk = "low"
	FakeoutMedium FakeoutRisk = "medium"
	FakeoutHigh   FakeoutRisk = "high"
)

// Direction is the suggested trade direction.
type Direction string

const (
	DirBullish Direction = "bullish"
	DirBearish Direction = "bearish"
	DirNeutral Direction = "neutral"
	DirNone    Direction = "none"
)

// FlowBias describes net options-delta flow.
type FlowBias string

const (
	FlowBullish FlowBias = "bullish"
	FlowBearish FlowBias = "bearish"
	FlowFlat    FlowBias = "neutral"
)

// VannaFlow describes dealer vanna pressure.
type VannaFlow string

const (
	VannaSupportive VannaFlow = "supportive"
	VannaHostile    VannaFlow = "hostile"
	VannaNeutral    VannaFlow = "neutral"
)

// CharmEffect describes charm-driven pinning pressure.
type CharmEffect string

const (
	CharmPinning   CharmEffect = "pinning"
	CharmUnpinning CharmEffect = "unpinning"
	CharmNeutral   CharmEffect = "neutral"
)

// DarkPoolRead summarizes dark-pool prints.
type DarkPoolRead string

const (
	DarkPoolBullish DarkPoolRead = "bullish"
	DarkPoolBearish DarkPoolRead = "bearish"
	DarkPoolMixed   DarkPoolRead = "mixed"
	DarkPoolNone    DarkPoolRead = "none"
)

// DeskInput carries the positioning and flow reads for a 0-DTE scan.
type DeskInput struct {
	Symbol         string
	Price          float64
	PriceChangePct float64

	ZeroGamma float64
	CallWall  float64
	PutWall   float64
	NetGEX    float64

	VolumeDelta float64
	NetDelta    FlowBias
	VannaFlow   VannaFlow
	CharmEffect CharmEffect
	DarkPool    DarkPoolRead

	VIXChangePct float64
}

// EntryZone is a suggested entry band around the current price.
type EntryZone struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DeskResult is the composed 0-DTE verdict.
type DeskResult struct {
	Symbol          string `json:"symbol"`
	Status          Status `json:"status"`
	StatusReason    string `json:"status_reason"`
	FinalConfidence int    `json:"final_confidence"`
	MacroOverride   bool   `json:"macro_override"`

	Regime            DeskRegime `json:"regime"`
	RegimeDescription string     `json:"regime_description"`

	Direction          Direction  `json:"direction"`
	StructuralThesis   string     `json:"structural_thesis"`
	Structure          string     `json:"structure,omitempty"`
	Strikes            string     `json:"strikes,omitempty"`
	EntryZone          *EntryZone `json:"entry_zone,omitempty"`
	ProfitTarget       float64    `json:"profit_target,omitempty"`
	InvalidationLevel  float64    `json:"invalidation_level,omitempty"`
	InvalidationReason string     `json:"invalidation_reason,omitempty"`
	HoldTime           string     `json:"hold_time,omitempty"`

	FakeoutRisk FakeoutRisk `json:"fakeout_risk"`
	Warnings    []string    `json:"warnings"`

	Events          events.HorizonResult `json:"events"`
	MacroAdjustment int                  `json:"macro_adjustment"`
	MacroStatus     MacroStatus          `json:"macro_status"`
}

type deskTechnical struct {
	status            Status
	statusReason      string
	regime            DeskRegime
	regimeDescription string
	direction         Direction
	structuralThesis  string
	structure         string
	strikes           string
	entryZone         *EntryZone
	profitTarget      float64
	invalidation      float64
	invalidationWhy   string
	holdTime          string
	fakeoutRisk       FakeoutRisk
	confidence        int
	warnings          []string
}

// ComposeDesk runs the 0-DTE technical read, then applies the override
// hierarchy: a binary event outranks macro adjustments, which outrank the
// technical confidence. A blocking event forces no_trade no matter how
// strong the setup scores.
func ComposeDesk(input DeskInput, horizon events.HorizonResult, macro MacroSnapshot, cfg Config) DeskResult {
	tech := analyzeDesk(input, cfg)

	adjustment := horizon.ConfidenceAdjustment
	macroAdj, macroWarnings := macroAdjust(macro, cfg)
	adjustment += macroAdj
	tech.warnings = append(tech.warnings, macroWarnings...)

	final := clampConfidence(tech.confidence + adjustment)

	status := tech.status
	statusReason := tech.statusReason
	override := horizon.HasBinaryEvent
	switch {
	case override:
		status = StatusNoTrade
		statusReason = horizon.OverrideMessage
		tech.warnings = append([]string{horizon.OverrideMessage}, tech.warnings...)
	case final < cfg.NoTradeBelow:
		status = StatusNoTrade
	case final < cfg.DowngradeBelow && status == StatusGreenLight:
		status = StatusCaution
	}

	macroStatus := MacroClear
	switch {
	case override:
		macroStatus = MacroHighRisk
	case adjustment < -15:
		macroStatus = MacroCaution
	}

	return DeskResult{
		Symbol:             input.Symbol,
		Status:             status,
		StatusReason:       statusReason,
		FinalConfidence:    final,
		MacroOverride:      override,
		Regime:             tech.regime,
		RegimeDescription:  tech.regimeDescription,
		Direction:          tech.direction,
		StructuralThesis:   tech.structuralThesis,
		Structure:          tech.structure,
		Strikes:            tech.strikes,
		EntryZone:          tech.entryZone,
		ProfitTarget:       tech.profitTarget,
		InvalidationLevel:  tech.invalidation,
		InvalidationReason: tech.invalidationWhy,
		HoldTime:           tech.holdTime,
		FakeoutRisk:        tech.fakeoutRisk,
		Warnings:           tech.warnings,
		Events:             horizon,
		MacroAdjustment:    adjustment,
		MacroStatus:        macroStatus,
	}
}

func analyzeDesk(input DeskInput, cfg Config) deskTechnical {
	tech := deskTechnical{warnings: []string{}}

	// Regime detection, first match wins.
	switch {
	case input.NetGEX < cfg.TrendGEXBelow && math.Abs(input.VolumeDelta) > cfg.TrendFlowAbove:
		tech.regime = RegimeTrendDay
		tech.regimeDescription = "Dealers SHORT gamma + strong flow = TREND DAY"
	case input.NetGEX > cfg.PinGEXAbove && input.CharmEffect == CharmPinning:
		tech.regime = RegimeMeanReversion
		tech.regimeDescription = "Dealers LONG gamma + charm pinning = MEAN REVERSION"
	case input.VIXChangePct > cfg.VIXBreakoutChange:
		tech.regime = RegimeVolatilityBreakout
		tech.regimeDescription = "VIX expanding = VOLATILITY BREAKOUT"
	case input.VannaFlow == VannaHostile && input.CharmEffect == CharmUnpinning:
		tech.regime = RegimeGammaSqueeze
		tech.regimeDescription = "Vanna hostile + charm unpinning = GAMMA SQUEEZE"
	default:
		tech.regime = RegimeChoppyFakeout
		tech.regimeDescription = "Conflicting signals = NO TRADE stance"
	}

	// Fakeout detection: price and flow disagreeing is a trap setup.
	tech.fakeoutRisk = FakeoutLow
	priceBullish := input.PriceChangePct > 0
	flowBullish := input.VolumeDelta > 0.5
	flowBearish := input.VolumeDelta < -0.5
	if priceBullish && flowBearish {
		tech.warnings = append(tech.warnings, "DIVERGENCE: price up but flow negative - bull trap risk")
		tech.fakeoutRisk = FakeoutHigh
	}
	if !priceBullish && flowBullish {
		tech.warnings = append(tech.warnings, "DIVERGENCE: price down but flow positive - bear trap risk")
		tech.fakeoutRisk = FakeoutHigh
	}
	if input.DarkPool == DarkPoolMixed {
		tech.warnings = append(tech.warnings, "DARK POOL: mixed prints - no conviction")
		if tech.fakeoutRisk == FakeoutLow {
			tech.fakeoutRisk = FakeoutMedium
		}
	}

	switch {
	case tech.regime == RegimeChoppyFakeout:
		tech.status = StatusNoTrade
		tech.statusReason = "Choppy regime. Capital preservation."
	case tech.fakeoutRisk == FakeoutHigh:
		tech.status = StatusNoTrade
		tech.statusReason = "High fakeout risk."
	case tech.fakeoutRisk == FakeoutMedium:
		tech.status = StatusCaution
		tech.statusReason = "Setup present but needs confirmation."
	default:
		tech.status = StatusGreenLight
		tech.statusReason = "Flow confirmed, structure aligned."
	}

	tech.direction = DirNone
	atm := math.Round(input.Price/5) * 5
	if tech.status != StatusNoTrade {
		switch tech.regime {
		case RegimeTrendDay:
			if input.VolumeDelta > 0 && input.NetDelta == FlowBullish {
				tech.direction = DirBullish
				tech.structuralThesis = fmt.Sprintf("Trend UP: target call wall %.0f", input.CallWall)
				tech.structure = "Bull Call Vertical"
				tech.strikes = fmt.Sprintf("Buy %.0fC / Sell %.0fC", atm, atm+10)
			} else if input.VolumeDelta < 0 && input.NetDelta == FlowBearish {
				tech.direction = DirBearish
				tech.structuralThesis = fmt.Sprintf("Trend DOWN: target put wall %.0f", input.PutWall)
				tech.structure = "Bear Put Vertical"
				tech.strikes = fmt.Sprintf("Buy %.0fP / Sell %.0fP", atm, atm-10)
			}
		case RegimeMeanReversion:
			zg := input.ZeroGamma
			if zg == 0 {
				zg = atm
			}
			switch {
			case input.Price > zg+15:
				tech.direction = DirBearish
				tech.structuralThesis = "FADE: extended above zero gamma"
				tech.structure = "Put Butterfly"
			case input.Price < zg-15:
				tech.direction = DirBullish
				tech.structuralThesis = "BUY DIP: below zero gamma"
				tech.structure = "Call Butterfly"
			default:
				tech.direction = DirNeutral
				tech.structuralThesis = "Range-bound near zero gamma"
				tech.structure = "Iron Condor"
			}
		}
	}

	// Confidence build-up from the base score.
	confidence := cfg.BaseConfidence
	if (tech.direction == DirBullish && input.NetDelta == FlowBullish) ||
		(tech.direction == DirBearish && input.NetDelta == FlowBearish) {
		confidence += cfg.FlowAgreementBonus
	}
	if tech.fakeoutRisk == FakeoutLow {
		confidence += cfg.LowFakeoutBonus
	}
	if tech.fakeoutRisk == FakeoutHigh {
		confidence -= cfg.HighFakeoutPenalty
	}
	tech.confidence = clampConfidence(confidence)

	if input.Price > 0 {
		tech.entryZone = &EntryZone{Low: input.Price - 3, High: input.Price + 2}
	}
	zg := input.ZeroGamma
	if zg == 0 {
		zg = atm
	}
	switch tech.direction {
	case DirBullish:
		tech.profitTarget = input.CallWall
		tech.invalidation = zg - 10
	case DirBearish:
		tech.profitTarget = input.PutWall
		tech.invalidation = zg + 10
	default:
		tech.profitTarget = zg
	}
	if tech.invalidation != 0 {
		tech.invalidationWhy = "Break beyond zero gamma"
	}

	switch tech.regime {
	case RegimeTrendDay:
		tech.holdTime = "1-3 hours"
	case RegimeMeanReversion:
		tech.holdTime = "30 min - 2 hours"
	case RegimeGammaSqueeze:
		tech.holdTime = "15-45 min"
	default:
		tech.holdTime = "1-2 hours"
	}

	return tech
}
