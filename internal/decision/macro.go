package decision

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

// MarketTrend classifies the broad tape from the SPY percent change.
type MarketTrend string

const (
	TrendBullish MarketTrend = "bullish"
	TrendBearish MarketTrend = "bearish"
	TrendNeutral MarketTrend = "neutral"
)

// FlowDirection describes sector money flow relative to the index.
type FlowDirection string

const (
	FlowInflow  FlowDirection = "inflow"
	FlowOutflow FlowDirection = "outflow"
	FlowNeutral FlowDirection = "neutral"
)

// MacroStatus is the tiered macro verdict.
type MacroStatus string

const (
	MacroClear    MacroStatus = "clear"
	MacroCaution  MacroStatus = "caution"
	MacroHighRisk MacroStatus = "high_risk"
)

// SectorAnalysis compares a symbol's sector ETF against the index.
type SectorAnalysis struct {
	SectorETF        string        `json:"sector_etf"`
	SectorName       string        `json:"sector_name"`
	SectorChangePct  float64       `json:"sector_change_pct"`
	SPYChangePct     float64       `json:"spy_change_pct"`
	RelativeStrength float64       `json:"relative_strength"` // >1 outperforming
	Flow             FlowDirection `json:"flow_direction"`
}

// MacroSnapshot carries the macro inputs a scan composes against. All fields
// are caller-supplied; the composer never fetches anything.
type MacroSnapshot struct {
	VIXLevel     float64
	VIXRegime    vol.Regime
	MarketTrend  MarketTrend
	Sector       *SectorAnalysis
	EarningsRisk bool
}

// ClassifyMarketTrend buckets the SPY percent change.
func ClassifyMarketTrend(spyChangePct float64, cfg Config) MarketTrend {
	switch {
	case spyChangePct > cfg.MarketTrendCut:
		return TrendBullish
	case spyChangePct < -cfg.MarketTrendCut:
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// AnalyzeSector computes relative strength of a sector ETF against SPY.
// A flat SPY tape yields relative strength 1.0 rather than a division blowup.
func AnalyzeSector(sectorETF string, sectorChangePct, spyChangePct float64, cfg Config) SectorAnalysis {
	rs := 1.0
	if spyChangePct != 0 {
		rs = sectorChangePct / spyChangePct
	}

	flow := FlowNeutral
	if rs > cfg.SectorInflowRatio {
		flow = FlowInflow
	} else if rs < cfg.SectorOutflowRatio {
		flow = FlowOutflow
	}

	return SectorAnalysis{
		SectorETF:        sectorETF,
		SectorName:       sectorName(sectorETF),
		SectorChangePct:  sectorChangePct,
		SPYChangePct:     spyChangePct,
		RelativeStrength: rs,
		Flow:             flow,
	}
}

// macroAdjust accumulates the VIX / sector / earnings penalties shared by
// both scan families. Event penalties are handled separately by the caller.
func macroAdjust(macro MacroSnapshot, cfg Config) (adjustment int, warnings []string) {
	switch macro.VIXRegime {
	case vol.RegimeExtreme:
		adjustment += cfg.VIXExtremePenalty
		warnings = append(warnings, "VIX EXTREME - unpredictable price action")
	case vol.RegimeHigh:
		adjustment += cfg.VIXHighPenalty
		warnings = append(warnings, "VIX HIGH - elevated volatility")
	}

	if macro.Sector != nil && macro.Sector.Flow == FlowOutflow {
		adjustment += cfg.SectorOutflowPenalty
		warnings = append(warnings,
			fmt.Sprintf("Sector (%s) underperforming - fighting the tide", macro.Sector.SectorETF))
	}

	if macro.EarningsRisk {
		adjustment += cfg.EarningsRiskPenalty
		warnings = append(warnings, "Earnings inside position window")
	}

	return adjustment, warnings
}

// SectorETFFor maps a symbol to its sector ETF, defaulting to SPY.
func SectorETFFor(symbol string) string {
	if etf, ok := sectorETFMap[strings.ToUpper(symbol)]; ok {
		return etf
	}
	return "SPY"
}

var sectorETFMap = map[string]string{
	// Technology
	"AAPL": "XLK", "NVDA": "XLK", "MSFT": "XLK", "AVGO": "XLK", "AMD": "XLK",
	"INTC": "XLK", "CRM": "XLK", "ORCL": "XLK", "ADBE": "XLK", "CSCO": "XLK",
	// Consumer discretionary
	"AMZN": "XLY", "TSLA": "XLY", "HD": "XLY", "MCD": "XLY", "NKE": "XLY",
	"SBUX": "XLY", "TGT": "XLY", "LOW": "XLY",
	// Communication services
	"GOOGL": "XLC", "GOOG": "XLC", "META": "XLC", "NFLX": "XLC", "DIS": "XLC",
	"CMCSA": "XLC", "VZ": "XLC", "T": "XLC",
	// Healthcare
	"UNH": "XLV", "JNJ": "XLV", "LLY": "XLV", "PFE": "XLV", "ABBV": "XLV",
	"MRK": "XLV", "TMO": "XLV",
	// Financials
	"JPM": "XLF", "BAC": "XLF", "WFC": "XLF", "GS": "XLF", "MS": "XLF",
	"V": "XLF", "MA": "XLF", "AXP": "XLF",
	// Energy
	"XOM": "XLE", "CVX": "XLE", "COP": "XLE", "SLB": "XLE", "EOG": "XLE",
	// Industrials
	"CAT": "XLI", "BA": "XLI", "HON": "XLI", "UPS": "XLI", "RTX": "XLI",
	"GE": "XLI", "DE": "XLI",
	// Consumer staples
	"PG": "XLP", "KO": "XLP", "PEP": "XLP", "COST": "XLP", "WMT": "XLP",
	// Utilities
	"NEE": "XLU", "DUK": "XLU", "SO": "XLU",
	// Real estate
	"AMT": "XLRE", "PLD": "XLRE", "SPG": "XLRE",
	// Materials
	"LIN": "XLB", "APD": "XLB", "ECL": "XLB",
}

func sectorName(etf string) string {
	names := map[string]string{
		"XLK": "Technology", "XLF": "Financials", "XLY": "Consumer Disc.",
		"XLV": "Healthcare", "XLE": "Energy", "XLC": "Communication",
		"XLI": "Industrials", "XLP": "Consumer Staples", "XLU": "Utilities",
		"XLRE": "Real Estate", "XLB": "Materials", "SPY": "S&P 500",
	}
	if name, ok := names[etf]; ok {
		return name
	}
	return "Unknown"
}
