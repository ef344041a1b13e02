package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDiagonal() DiagonalInput {
	return DiagonalInput{
		Spot:        100,
		LongStrike:  80,
		LongDTE:     365,
		LongIVPct:   30,
		ShortStrike: 105,
		ShortDTE:    7,
		ShortIVPct:  35,
		RatePct:     5,
		Quantity:    1,
	}
}

func TestAnalyzeDiagonal_Metrics(t *testing.T) {
	analysis, err := AnalyzeDiagonal(validDiagonal())
	require.NoError(t, err)

	// Deep ITM LEAP against a near-dated OTM call: net long delta,
	// collecting theta.
	assert.Greater(t, analysis.NetDelta, 0.0)
	assert.Greater(t, analysis.NetTheta, 0.0)

	assert.InDelta(t, analysis.LongLeg.Price*100, analysis.CapitalRequired, 1e-9)
	assert.InDelta(t, analysis.ShortLeg.Extrinsic*100, analysis.PeriodicExtrinsicYield, 1e-9)

	require.Greater(t, analysis.PeriodicExtrinsicYield, 0.0)
	assert.InDelta(t,
		analysis.CapitalRequired/analysis.PeriodicExtrinsicYield,
		analysis.WeeksToBreakeven, 1e-9)
	assert.InDelta(t,
		analysis.PeriodicExtrinsicYield*52/analysis.CapitalRequired*100,
		analysis.AnnualizedYield, 1e-9)

	// The LEAP should tie up less capital than 100 shares.
	assert.Greater(t, analysis.CapitalSavingsPct, 0.0)
	assert.Less(t, analysis.CapitalSavingsPct, 100.0)
}

func TestAnalyzeDiagonal_QuantityScales(t *testing.T) {
	one, err := AnalyzeDiagonal(validDiagonal())
	require.NoError(t, err)

	in := validDiagonal()
	in.Quantity = 3
	three, err := AnalyzeDiagonal(in)
	require.NoError(t, err)

	assert.InDelta(t, one.NetDelta*3, three.NetDelta, 1e-9)
	assert.InDelta(t, one.CapitalRequired*3, three.CapitalRequired, 1e-9)
	// Ratios are quantity-invariant.
	assert.InDelta(t, one.WeeksToBreakeven, three.WeeksToBreakeven, 1e-9)
	assert.InDelta(t, one.AnnualizedYield, three.AnnualizedYield, 1e-9)
}

func TestAnalyzeDiagonal_StructuralErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DiagonalInput)
	}{
		{"equal_strikes", func(in *DiagonalInput) { in.LongStrike = in.ShortStrike }},
		{"inverted_strikes", func(in *DiagonalInput) { in.LongStrike = 110 }},
		{"equal_dte", func(in *DiagonalInput) { in.LongDTE = in.ShortDTE }},
		{"inverted_dte", func(in *DiagonalInput) { in.LongDTE = 5 }},
		{"zero_quantity", func(in *DiagonalInput) { in.Quantity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validDiagonal()
			tc.mutate(&in)
			_, err := AnalyzeDiagonal(in)
			require.ErrorIs(t, err, ErrInvalidDiagonal)
		})
	}
}

func TestAnalyzeDiagonal_LegErrorsPropagate(t *testing.T) {
	in := validDiagonal()
	in.LongIVPct = 0
	_, err := AnalyzeDiagonal(in)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "long leg")
}
