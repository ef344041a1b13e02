package decision

import (
	"fmt"
	"math"
)

// Strategy names a multi-day income structure.
type Strategy string

const (
	StrategyIPMCC    Strategy = "ipmcc"
	Strategy112      Strategy = "112"
	StrategyStrangle Strategy = "strangle"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyIPMCC, Strategy112, StrategyStrangle:
		return true
	}
	return false
}

// Signal is the strategy-scan verdict ladder.
type Signal string

const (
	SignalStrongBuy   Signal = "strong_buy"
	SignalBuy         Signal = "buy"
	SignalNeutral     Signal = "neutral"
	SignalAvoid       Signal = "avoid"
	SignalStrongAvoid Signal = "strong_avoid"
)

// StrategyInput carries the inputs for a multi-day strategy scan.
type StrategyInput struct {
	Symbol   string
	Strategy Strategy
	Price    float64
	IVRank   int
	DTE      int
}

// StrategyResult is the composed strategy-scan verdict.
type StrategyResult struct {
	Symbol          string   `json:"symbol"`
	Strategy        Strategy `json:"strategy"`
	Signal          Signal   `json:"signal"`
	SignalReason    string   `json:"signal_reason"`
	FinalConfidence int      `json:"final_confidence"`
	MacroOverride   bool     `json:"macro_override"`

	IVRankScore  int `json:"iv_rank_score"`
	TrendScore   int `json:"trend_score"`
	PremiumScore int `json:"premium_score"`

	Recommendation string `json:"recommendation"`
	Strikes        string `json:"strikes"`
	TargetPremium  string `json:"target_premium"`
	MaxRisk        string `json:"max_risk"`
	ExpectedReturn string `json:"expected_return"`
	DTE            int    `json:"days_to_expiration"`

	Warnings        []string    `json:"warnings"`
	MacroAdjustment int         `json:"macro_adjustment"`
	MacroStatus     MacroStatus `json:"macro_status"`
}

type strategyTechnical struct {
	signal         Signal
	signalReason   string
	confidence     int
	ivRankScore    int
	trendScore     int
	premiumScore   int
	recommendation string
	strikes        string
	targetPremium  string
	maxRisk        string
	expectedReturn string
	warnings       []string
}

// ComposeStrategy runs the strategy technical read, then applies the macro
// adjustment path. Unlike the desk scan there is no event override tier; a
// deep macro cut downgrades the signal instead.
func ComposeStrategy(input StrategyInput, macro MacroSnapshot, cfg Config) StrategyResult {
	tech := analyzeStrategy(input, cfg)

	adjustment, macroWarnings := macroAdjust(macro, cfg)
	tech.warnings = append(tech.warnings, macroWarnings...)

	final := clampConfidence(tech.confidence + adjustment)

	signal := tech.signal
	override := false
	switch {
	case final < cfg.StrongAvoidBelow:
		signal = SignalStrongAvoid
		override = true
	case final < cfg.NeutralBelow && (signal == SignalStrongBuy || signal == SignalBuy):
		if final < cfg.AvoidBelow {
			signal = SignalAvoid
		} else {
			signal = SignalNeutral
		}
		override = true
	}

	macroStatus := MacroClear
	switch {
	case adjustment < -20:
		macroStatus = MacroHighRisk
	case adjustment < -10:
		macroStatus = MacroCaution
	}

	return StrategyResult{
		Symbol:          input.Symbol,
		Strategy:        input.Strategy,
		Signal:          signal,
		SignalReason:    tech.signalReason,
		FinalConfidence: final,
		MacroOverride:   override,
		IVRankScore:     tech.ivRankScore,
		TrendScore:      tech.trendScore,
		PremiumScore:    tech.premiumScore,
		Recommendation:  tech.recommendation,
		Strikes:         tech.strikes,
		TargetPremium:   tech.targetPremium,
		MaxRisk:         tech.maxRisk,
		ExpectedReturn:  tech.expectedReturn,
		DTE:             input.DTE,
		Warnings:        tech.warnings,
		MacroAdjustment: adjustment,
		MacroStatus:     macroStatus,
	}
}

func analyzeStrategy(input StrategyInput, cfg Config) strategyTechnical {
	tech := strategyTechnical{warnings: []string{}, signal: SignalNeutral}

	ivRank := input.IVRank
	price := input.Price
	if price <= 0 {
		price = 100
	}
	atm := math.Round(price/5) * 5

	// Elevated IV rank gets a bonus: selling premium wants rich vol.
	if ivRank >= 50 {
		tech.ivRankScore = min(100, ivRank+20)
	} else {
		tech.ivRankScore = ivRank
	}
	tech.trendScore = 50
	tech.premiumScore = tech.ivRankScore

	ivFactor := float64(ivRank) / 50

	switch input.Strategy {
	case StrategyIPMCC:
		if ivRank >= 40 {
			overall := float64(tech.ivRankScore)*0.5 + float64(tech.premiumScore)*0.3 + 20
			switch {
			case overall >= 70:
				tech.signal = SignalStrongBuy
				tech.signalReason = "Elevated IV = optimal covered-call entry"
			case overall >= 55:
				tech.signal = SignalBuy
				tech.signalReason = "Decent setup for covered calls"
			default:
				tech.signal = SignalNeutral
				tech.signalReason = "Wait for better IV"
			}
		} else {
			tech.signal = SignalAvoid
			tech.signalReason = "IV too low for meaningful premium"
			tech.warnings = append(tech.warnings, "IV rank < 40: premium insufficient")
		}
		otm := math.Round(price*1.05/5) * 5
		tech.strikes = fmt.Sprintf("Sell %.0f call (0.20-0.30 delta)", otm)
		tech.targetPremium = fmt.Sprintf("$%.2f - $%.2f/share", price*0.01*ivFactor, price*0.02*ivFactor)
		tech.maxRisk = "Stock ownership risk below cost basis"
		tech.expectedReturn = fmt.Sprintf("%.1f%% - %.1f%% monthly", ivFactor*1.5, ivFactor*2.5)
		tech.recommendation = fmt.Sprintf("Sell %dDTE call at %.0f", input.DTE, otm)

	case Strategy112:
		overall := float64(tech.ivRankScore)*0.4 + float64(tech.premiumScore)*0.3 + 30
		switch {
		case overall >= 65 && ivRank >= 35:
			tech.signal = SignalStrongBuy
			tech.signalReason = "Good IV + structure for 112"
		case overall >= 50:
			tech.signal = SignalBuy
			tech.signalReason = "Acceptable 112 conditions"
		default:
			tech.signal = SignalNeutral
			tech.signalReason = "Wait for clearer setup"
		}
		tech.strikes = fmt.Sprintf("Buy 1x %.0fC / Sell 1x %.0fC / Sell 2x %.0fC", atm, atm+5, atm+15)
		tech.targetPremium = "Net credit or small debit"
		tech.maxRisk = "Defined: inner spread width minus credit"
		tech.expectedReturn = "50-100% of credit at expiration"
		tech.recommendation = fmt.Sprintf("Bullish 112 with %dDTE", input.DTE)

	case StrategyStrangle:
		switch {
		case ivRank < 40:
			tech.signal = SignalAvoid
			tech.signalReason = "IV too low for strangle risk"
			tech.warnings = append(tech.warnings, "IV rank < 40: premium doesn't justify risk")
		case ivRank >= 60:
			tech.signal = SignalStrongBuy
			tech.signalReason = "High IV = prime strangle conditions"
		case ivRank >= 45:
			tech.signal = SignalBuy
			tech.signalReason = "Decent strangle setup"
		default:
			tech.signal = SignalNeutral
			tech.signalReason = "Consider iron condor for defined risk"
		}
		callStrike := math.Round(price*1.10/5) * 5
		putStrike := math.Round(price*0.90/5) * 5
		tech.strikes = fmt.Sprintf("Sell %.0fP / Sell %.0fC", putStrike, callStrike)
		tech.targetPremium = fmt.Sprintf("$%.2f - $%.2f credit", price*0.015*ivFactor, price*0.03*ivFactor)
		tech.maxRisk = "Undefined - position size max 2-3% of portfolio"
		tech.expectedReturn = fmt.Sprintf("%.1f%% - %.1f%% monthly", ivFactor*2, ivFactor*4)
		tech.recommendation = fmt.Sprintf("%dDTE strangle at %.0fP/%.0fC", input.DTE, putStrike, callStrike)
	}

	confidence := math.Round(float64(tech.ivRankScore)*0.4 + float64(tech.premiumScore)*0.3 + float64(tech.trendScore)*0.3)
	tech.confidence = clampConfidence(int(confidence))
	return tech
}
