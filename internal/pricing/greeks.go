package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/chobie/go-gaussian"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// Volatility and rate cross this package's boundary as percentages (25 means
// 25%) and are converted to decimals exactly once, here. Delta is returned as
// a percentage in [-100, 100]; theta is per-day decay; vega is per 1-point
// change in volatility.

var (
	// ErrInvalidInput marks a malformed numeric domain: non-positive
	// spot/strike/volatility or a non-finite argument.
	ErrInvalidInput = errors.New("invalid pricing input")

	// ErrNoConvergence marks an implied-volatility solve that found no
	// volatility in the bounded search range reproducing the observed price.
	ErrNoConvergence = errors.New("implied volatility did not converge")
)

const (
	daysPerYear = 365.0
	// Bounded search range for the implied-volatility solver, in percent.
	ivSearchLow  = 0.5
	ivSearchHigh = 500.0
	ivTolerance  = 1e-7
	ivMaxIter    = 200
)

// GreeksResult holds the price and risk sensitivities of one option.
type GreeksResult struct {
	Price             float64 `json:"price"`
	Delta             float64 `json:"delta"` // percentage, [-100, 100]
	Gamma             float64 `json:"gamma"`
	Theta             float64 `json:"theta"` // per day
	Vega              float64 `json:"vega"`  // per 1-point vol change
	Intrinsic         float64 `json:"intrinsic"`
	Extrinsic         float64 `json:"extrinsic"`
	DaysToExpiry      int     `json:"days_to_expiry"`
	ImpliedVolatility float64 `json:"implied_volatility"` // percent
}

var stdNormal = gaussian.NewGaussian(0, 1)

// PriceOption prices a single option with the closed-form lognormal model.
// Expired options (daysToExpiry <= 0) collapse to intrinsic value with zero
// gamma/theta/vega; that is a defined edge case, not an error.
func PriceOption(spot, strike float64, daysToExpiry int, volatilityPct, ratePct float64, optType chain.OptionType) (GreeksResult, error) {
	if !optType.Valid() {
		return GreeksResult{}, fmt.Errorf("%w: unknown option type %q", ErrInvalidInput, optType)
	}
	if err := checkFinite(spot, strike, volatilityPct, ratePct); err != nil {
		return GreeksResult{}, err
	}
	if spot <= 0 || strike <= 0 {
		return GreeksResult{}, fmt.Errorf("%w: spot and strike must be positive (spot=%v strike=%v)", ErrInvalidInput, spot, strike)
	}

	if daysToExpiry <= 0 {
		return expiredResult(spot, strike, volatilityPct, optType), nil
	}

	if volatilityPct <= 0 {
		return GreeksResult{}, fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidInput, volatilityPct)
	}

	tau := float64(daysToExpiry) / daysPerYear
	sigma := volatilityPct / 100.0
	r := ratePct / 100.0

	sqrtTau := math.Sqrt(tau)
	d1 := (math.Log(spot/strike) + (r+sigma*sigma/2)*tau) / (sigma * sqrtTau)
	d2 := d1 - sigma*sqrtTau

	discount := math.Exp(-r * tau)
	pdfD1 := stdNormal.Pdf(d1)

	var price, delta, theta float64
	switch optType {
	case chain.TypeCall:
		price = spot*stdNormal.Cdf(d1) - strike*discount*stdNormal.Cdf(d2)
		delta = stdNormal.Cdf(d1) * 100
		theta = (-spot*pdfD1*sigma/(2*sqrtTau) - r*strike*discount*stdNormal.Cdf(d2)) / daysPerYear
	case chain.TypePut:
		price = strike*discount*stdNormal.Cdf(-d2) - spot*stdNormal.Cdf(-d1)
		delta = (stdNormal.Cdf(d1) - 1) * 100
		theta = (-spot*pdfD1*sigma/(2*sqrtTau) + r*strike*discount*stdNormal.Cdf(-d2)) / daysPerYear
	}

	gamma := pdfD1 / (spot * sigma * sqrtTau)
	vega := spot * pdfD1 * sqrtTau / 100.0

	intrinsic := intrinsicValue(spot, strike, optType)
	extrinsic := math.Max(0, price-intrinsic)

	return GreeksResult{
		Price:             price,
		Delta:             delta,
		Gamma:             gamma,
		Theta:             theta,
		Vega:              vega,
		Intrinsic:         intrinsic,
		Extrinsic:         extrinsic,
		DaysToExpiry:      daysToExpiry,
		ImpliedVolatility: volatilityPct,
	}, nil
}

func expiredResult(spot, strike, volatilityPct float64, optType chain.OptionType) GreeksResult {
	intrinsic := intrinsicValue(spot, strike, optType)

	var delta float64
	switch optType {
	case chain.TypeCall:
		if spot > strike {
			delta = 100
		}
	case chain.TypePut:
		if spot < strike {
			delta = -100
		}
	}

	return GreeksResult{
		Price:             intrinsic,
		Delta:             delta,
		Intrinsic:         intrinsic,
		ImpliedVolatility: volatilityPct,
	}
}

func intrinsicValue(spot, strike float64, optType chain.OptionType) float64 {
	switch optType {
	case chain.TypePut:
		return math.Max(0, strike-spot)
	default:
		return math.Max(0, spot-strike)
	}
}

func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite argument %v", ErrInvalidInput, v)
		}
	}
	return nil
}
