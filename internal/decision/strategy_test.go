package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

func TestComposeStrategyIPMCCHighIV(t *testing.T) {
	input := StrategyInput{
		Symbol:   "NVDA",
		Strategy: StrategyIPMCC,
		Price:    120,
		IVRank:   60,
		DTE:      30,
	}
	result := ComposeStrategy(input, quietMacro(), DefaultConfig())

	// IV rank 60 scores 80; overall 0.5*80 + 0.3*80 + 20 = 84.
	assert.Equal(t, SignalStrongBuy, result.Signal)
	assert.Equal(t, 80, result.IVRankScore)
	// Confidence 0.4*80 + 0.3*80 + 0.3*50 = 71, no macro cuts.
	assert.Equal(t, 71, result.FinalConfidence)
	assert.False(t, result.MacroOverride)
	assert.Contains(t, result.Strikes, "125")
	assert.Contains(t, result.Recommendation, "30DTE")
}

func TestComposeStrategyIPMCCLowIV(t *testing.T) {
	input := StrategyInput{
		Symbol:   "KO",
		Strategy: StrategyIPMCC,
		Price:    60,
		IVRank:   20,
		DTE:      30,
	}
	result := ComposeStrategy(input, quietMacro(), DefaultConfig())

	// Rank 20 scores 29 overall, under the strong-avoid cut.
	assert.Equal(t, SignalStrongAvoid, result.Signal)
	assert.True(t, result.MacroOverride)
	assert.Contains(t, result.Warnings[0], "premium insufficient")
}

func TestComposeStrategyStrangleLadder(t *testing.T) {
	tests := []struct {
		ivRank int
		want   Signal
	}{
		{30, SignalAvoid},
		{42, SignalNeutral},
		{50, SignalBuy},
		{70, SignalStrongBuy},
	}
	for _, tt := range tests {
		input := StrategyInput{
			Symbol: "TSLA", Strategy: StrategyStrangle, Price: 250, IVRank: tt.ivRank, DTE: 45,
		}
		result := ComposeStrategy(input, quietMacro(), DefaultConfig())
		assert.Equal(t, tt.want, result.Signal, "iv_rank=%d", tt.ivRank)
	}
}

func TestComposeStrategyStrangleStrikes(t *testing.T) {
	input := StrategyInput{
		Symbol: "SPY", Strategy: StrategyStrangle, Price: 500, IVRank: 65, DTE: 45,
	}
	result := ComposeStrategy(input, quietMacro(), DefaultConfig())
	assert.Equal(t, "Sell 450P / Sell 550C", result.Strikes)
}

func TestComposeStrategyMacroDowngrade(t *testing.T) {
	input := StrategyInput{
		Symbol: "AMD", Strategy: Strategy112, Price: 150, IVRank: 50, DTE: 40,
	}
	macro := MacroSnapshot{
		VIXRegime:    vol.RegimeExtreme,
		Sector:       &SectorAnalysis{SectorETF: "XLK", Flow: FlowOutflow},
		EarningsRisk: true,
	}
	result := ComposeStrategy(input, macro, DefaultConfig())

	// IV rank 50 scores 70; confidence 0.4*70 + 0.3*70 + 15 = 64.
	// Macro stack cuts 45: final 19 < 30 forces strong_avoid.
	assert.Equal(t, 19, result.FinalConfidence)
	assert.Equal(t, SignalStrongAvoid, result.Signal)
	assert.True(t, result.MacroOverride)
	assert.Equal(t, MacroHighRisk, result.MacroStatus)
}

func TestComposeStrategyPartialDowngrade(t *testing.T) {
	input := StrategyInput{
		Symbol: "AMD", Strategy: Strategy112, Price: 150, IVRank: 50, DTE: 40,
	}
	macro := MacroSnapshot{
		VIXRegime: vol.RegimeExtreme,
		Sector:    &SectorAnalysis{SectorETF: "XLK", Flow: FlowOutflow},
	}
	result := ComposeStrategy(input, macro, DefaultConfig())

	// Confidence 64 - 25 = 39: buy-tier signal drops to neutral/avoid.
	assert.Equal(t, 39, result.FinalConfidence)
	assert.Equal(t, SignalNeutral, result.Signal)
	assert.True(t, result.MacroOverride)
}

func TestClassifyMarketTrend(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, TrendBullish, ClassifyMarketTrend(0.8, cfg))
	assert.Equal(t, TrendBearish, ClassifyMarketTrend(-0.8, cfg))
	assert.Equal(t, TrendNeutral, ClassifyMarketTrend(0.3, cfg))
	assert.Equal(t, TrendNeutral, ClassifyMarketTrend(0.5, cfg))
}

func TestAnalyzeSector(t *testing.T) {
	cfg := DefaultConfig()

	out := AnalyzeSector("XLK", -0.2, 1.0, cfg)
	assert.Equal(t, FlowOutflow, out.Flow)
	assert.Equal(t, "Technology", out.SectorName)
	assert.InDelta(t, -0.2, out.RelativeStrength, 1e-9)

	in := AnalyzeSector("XLE", 1.5, 1.0, cfg)
	assert.Equal(t, FlowInflow, in.Flow)

	flat := AnalyzeSector("XLF", 0.4, 0, cfg)
	assert.Equal(t, FlowNeutral, flat.Flow)
	assert.Equal(t, 1.0, flat.RelativeStrength)
}

func TestSectorETFFor(t *testing.T) {
	assert.Equal(t, "XLK", SectorETFFor("nvda"))
	assert.Equal(t, "XLY", SectorETFFor("TSLA"))
	assert.Equal(t, "SPY", SectorETFFor("UNKNOWN"))
}
