package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// ErrInvalidDiagonal marks a structural violation of the diagonal
// prerequisites: the long leg must sit below the short strike and expire
// strictly after it. These are validation errors, never warnings.
var ErrInvalidDiagonal = errors.New("invalid diagonal structure")

// DiagonalInput describes a two-leg diagonal (long LEAP call, short call).
type DiagonalInput struct {
	Spot        float64
	LongStrike  float64
	LongDTE     int
	LongIVPct   float64
	ShortStrike float64
	ShortDTE    int
	ShortIVPct  float64
	RatePct     float64
	Quantity    int
}

// CombinedPositionAnalysis is the net view of a diagonal position plus the
// simple yield heuristics inherited from the source methodology (weekly
// extrinsic times 52, no compounding).
type CombinedPositionAnalysis struct {
	LongLeg  GreeksResult `json:"long_leg"`
	ShortLeg GreeksResult `json:"short_leg"`

	NetDelta float64 `json:"net_delta"`
	NetGamma float64 `json:"net_gamma"`
	NetTheta float64 `json:"net_theta"` // positive = collecting decay
	NetVega  float64 `json:"net_vega"`

	CapitalRequired        float64 `json:"capital_required"`
	PeriodicExtrinsicYield float64 `json:"periodic_extrinsic_yield"`
	WeeksToBreakeven       float64 `json:"weeks_to_breakeven"` // +Inf when yield <= 0
	AnnualizedYield        float64 `json:"annualized_yield"`   // percent
	BreakevenPrice         float64 `json:"breakeven_price"`
	CapitalSavingsPct      float64 `json:"capital_savings_pct"` // vs owning 100 shares
	ExtrinsicYieldPct      float64 `json:"extrinsic_yield_pct"` // short extrinsic / long price
}

// AnalyzeDiagonal prices both legs and combines them into net sensitivities
// and yield metrics. Both legs are calls.
func AnalyzeDiagonal(in DiagonalInput) (CombinedPositionAnalysis, error) {
	if in.Quantity < 1 {
		return CombinedPositionAnalysis{}, fmt.Errorf("%w: quantity must be >= 1, got %d", ErrInvalidDiagonal, in.Quantity)
	}
	if in.LongStrike >= in.ShortStrike {
		return CombinedPositionAnalysis{}, fmt.Errorf("%w: long strike %v must be below short strike %v",
			ErrInvalidDiagonal, in.LongStrike, in.ShortStrike)
	}
	if in.LongDTE <= in.ShortDTE {
		return CombinedPositionAnalysis{}, fmt.Errorf("%w: long expiry (%dd) must be after short expiry (%dd)",
			ErrInvalidDiagonal, in.LongDTE, in.ShortDTE)
	}

	long, err := PriceOption(in.Spot, in.LongStrike, in.LongDTE, in.LongIVPct, in.RatePct, chain.TypeCall)
	if err != nil {
		return CombinedPositionAnalysis{}, fmt.Errorf("long leg: %w", err)
	}
	short, err := PriceOption(in.Spot, in.ShortStrike, in.ShortDTE, in.ShortIVPct, in.RatePct, chain.TypeCall)
	if err != nil {
		return CombinedPositionAnalysis{}, fmt.Errorf("short leg: %w", err)
	}

	qty := float64(in.Quantity)

	analysis := CombinedPositionAnalysis{
		LongLeg:  long,
		ShortLeg: short,
		NetDelta: (long.Delta - short.Delta) * qty,
		NetGamma: (long.Gamma - short.Gamma) * qty,
		// Theta collected from the short leg net of theta paid on the long.
		NetTheta: (long.Theta - short.Theta) * qty,
		NetVega:  (long.Vega - short.Vega) * qty,
	}

	analysis.CapitalRequired = long.Price * 100 * qty
	analysis.PeriodicExtrinsicYield = short.Extrinsic * 100 * qty

	if analysis.PeriodicExtrinsicYield > 0 {
		analysis.WeeksToBreakeven = analysis.CapitalRequired / analysis.PeriodicExtrinsicYield
	} else {
		analysis.WeeksToBreakeven = math.Inf(1)
	}

	if analysis.CapitalRequired > 0 {
		analysis.AnnualizedYield = analysis.PeriodicExtrinsicYield * 52 / analysis.CapitalRequired * 100
	}

	// Cost basis recovered by the first short cycle's extrinsic.
	analysis.BreakevenPrice = in.LongStrike + long.Price - short.Extrinsic

	stockCost := in.Spot * 100 * qty
	if stockCost > 0 {
		analysis.CapitalSavingsPct = (1 - analysis.CapitalRequired/stockCost) * 100
	}
	if long.Price > 0 {
		analysis.ExtrinsicYieldPct = short.Extrinsic / long.Price * 100
	}

	return analysis, nil
}
