package pricing

import (
	"fmt"
	"math"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// ImpliedVolatility solves for the volatility (in percent) that reproduces an
// observed option price, by bisection over the forward pricing model. The
// model price is monotonic in volatility, so a sign change over the search
// bracket guarantees a root; without one the solve fails with
// ErrNoConvergence, distinguishable from a data-unavailable condition.
func ImpliedVolatility(spot, strike float64, daysToExpiry int, ratePct, observedPrice float64, optType chain.OptionType) (float64, error) {
	if err := checkFinite(spot, strike, ratePct, observedPrice); err != nil {
		return 0, err
	}
	if spot <= 0 || strike <= 0 {
		return 0, fmt.Errorf("%w: spot and strike must be positive (spot=%v strike=%v)", ErrInvalidInput, spot, strike)
	}
	if daysToExpiry <= 0 {
		return 0, fmt.Errorf("%w: cannot imply volatility for an expired option (dte=%d)", ErrInvalidInput, daysToExpiry)
	}
	if observedPrice <= 0 {
		return 0, fmt.Errorf("%w: observed price must be positive, got %v", ErrInvalidInput, observedPrice)
	}

	priceAt := func(volPct float64) (float64, error) {
		res, err := PriceOption(spot, strike, daysToExpiry, volPct, ratePct, optType)
		if err != nil {
			return 0, err
		}
		return res.Price, nil
	}

	lo, hi := ivSearchLow, ivSearchHigh
	pLo, err := priceAt(lo)
	if err != nil {
		return 0, err
	}
	pHi, err := priceAt(hi)
	if err != nil {
		return 0, err
	}

	if observedPrice < pLo || observedPrice > pHi {
		return 0, fmt.Errorf("%w: price %v outside achievable range [%v, %v] for vol in [%v%%, %v%%]",
			ErrNoConvergence, observedPrice, pLo, pHi, lo, hi)
	}

	for i := 0; i < ivMaxIter; i++ {
		mid := (lo + hi) / 2
		pMid, err := priceAt(mid)
		if err != nil {
			return 0, err
		}

		diff := pMid - observedPrice
		if math.Abs(diff) < ivTolerance || (hi-lo)/2 < ivTolerance {
			return mid, nil
		}
		if diff < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0, fmt.Errorf("%w: no solution within %d iterations for price %v", ErrNoConvergence, ivMaxIter, observedPrice)
}
