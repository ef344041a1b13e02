package decision

// Config holds every cut point and adjustment used by the composer. The
// defaults are the desk playbook values; all of them are overridable from
// the config file.
type Config struct {
	// Desk confidence build-up.
	BaseConfidence     int `mapstructure:"base_confidence"`
	FlowAgreementBonus int `mapstructure:"flow_agreement_bonus"`
	LowFakeoutBonus    int `mapstructure:"low_fakeout_bonus"`
	HighFakeoutPenalty int `mapstructure:"high_fakeout_penalty"`

	// Desk status cuts on final confidence.
	NoTradeBelow   int `mapstructure:"no_trade_below"`
	DowngradeBelow int `mapstructure:"downgrade_below"`

	// Strategy signal cuts on final confidence.
	StrongAvoidBelow int `mapstructure:"strong_avoid_below"`
	AvoidBelow       int `mapstructure:"avoid_below"`
	NeutralBelow     int `mapstructure:"neutral_below"`

	// Macro adjustments.
	VIXExtremePenalty    int `mapstructure:"vix_extreme_penalty"`
	VIXHighPenalty       int `mapstructure:"vix_high_penalty"`
	SectorOutflowPenalty int `mapstructure:"sector_outflow_penalty"`
	EarningsRiskPenalty  int `mapstructure:"earnings_risk_penalty"`

	// Desk regime detection thresholds.
	TrendGEXBelow      float64 `mapstructure:"trend_gex_below"`
	TrendFlowAbove     float64 `mapstructure:"trend_flow_above"`
	PinGEXAbove        float64 `mapstructure:"pin_gex_above"`
	VIXBreakoutChange  float64 `mapstructure:"vix_breakout_change"`
	MarketTrendCut     float64 `mapstructure:"market_trend_cut"`
	SectorInflowRatio  float64 `mapstructure:"sector_inflow_ratio"`
	SectorOutflowRatio float64 `mapstructure:"sector_outflow_ratio"`
}

// DefaultConfig returns the playbook defaults.
func DefaultConfig() Config {
	return Config{
		BaseConfidence:     50,
		FlowAgreementBonus: 15,
		LowFakeoutBonus:    10,
		HighFakeoutPenalty: 15,

		NoTradeBelow:   30,
		DowngradeBelow: 50,

		StrongAvoidBelow: 30,
		AvoidBelow:       35,
		NeutralBelow:     45,

		VIXExtremePenalty:    -15,
		VIXHighPenalty:       -5,
		SectorOutflowPenalty: -10,
		EarningsRiskPenalty:  -20,

		TrendGEXBelow:      -3,
		TrendFlowAbove:     1.5,
		PinGEXAbove:        4,
		VIXBreakoutChange:  8,
		MarketTrendCut:     0.5,
		SectorInflowRatio:  1.1,
		SectorOutflowRatio: 0.9,
	}
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
