package vol

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// IVSource tags where the IV metrics came from.
type IVSource string

const (
	IVSourceChain       IVSource = "chain"
	IVSourceUnavailable IVSource = "unavailable"
)

// atmWindow is the fraction of spot a strike may sit from the money and
// still count as at-the-money.
const atmWindow = 0.03

// IVProfile is a symbol's 52-week implied-volatility range, in percent.
type IVProfile struct {
	Low  float64 `mapstructure:"low"`
	High float64 `mapstructure:"high"`
}

// IVMetrics summarizes a chain's at-the-money implied volatility against the
// symbol's historical range.
type IVMetrics struct {
	Symbol       string   `json:"symbol"`
	CurrentIV    float64  `json:"current_iv"` // mean ATM IV, percent
	MedianIV     float64  `json:"median_iv"`
	IVRank       int      `json:"iv_rank"`       // 0-100 within the 52-week range
	IVPercentile int      `json:"iv_percentile"` // 0-100
	Source       IVSource `json:"source"`
}

// ComputeIVMetrics extracts ATM implied volatilities from the snapshot and
// ranks the current level against the symbol's profile. Profiles may be nil;
// unknown symbols get a range derived from the observed level. A chain with
// no usable IVs yields an unavailable-tagged result, not an error.
func ComputeIVMetrics(snap *chain.Snapshot, profiles map[string]IVProfile) IVMetrics {
	metrics := IVMetrics{Symbol: snap.Underlying, Source: IVSourceUnavailable}

	ivs := atmIVs(snap)
	if len(ivs) == 0 {
		return metrics
	}

	current, err := stats.Mean(ivs)
	if err != nil {
		return metrics
	}
	median, err := stats.Median(ivs)
	if err != nil {
		return metrics
	}

	metrics.CurrentIV = current
	metrics.MedianIV = median
	metrics.IVRank, metrics.IVPercentile = rankAgainstProfile(snap.Underlying, current, profiles)
	metrics.Source = IVSourceChain
	return metrics
}

func atmIVs(snap *chain.Snapshot) []float64 {
	if snap.Spot <= 0 {
		return nil
	}
	var ivs []float64
	for _, strikes := range snap.Expirations {
		for strike, pair := range strikes {
			if math.Abs(float64(strike)-snap.Spot)/snap.Spot >= atmWindow {
				continue
			}
			if pair.Call != nil && pair.Call.ImpliedVolatility > 0 {
				ivs = append(ivs, pair.Call.ImpliedVolatility)
			}
			if pair.Put != nil && pair.Put.ImpliedVolatility > 0 {
				ivs = append(ivs, pair.Put.ImpliedVolatility)
			}
		}
	}
	return ivs
}

func rankAgainstProfile(symbol string, currentIV float64, profiles map[string]IVProfile) (rank, percentile int) {
	profile, ok := profiles[strings.ToUpper(symbol)]
	if !ok {
		profile = IVProfile{
			Low:  math.Max(15, currentIV*0.5),
			High: math.Min(100, currentIV*2),
		}
	}

	if profile.High == profile.Low {
		rank = 50
	} else {
		rank = int(math.Round((currentIV - profile.Low) / (profile.High - profile.Low) * 100))
	}
	if rank < 0 {
		rank = 0
	}
	if rank > 100 {
		rank = 100
	}
	percentile = int(math.Round(float64(rank) * 0.95))
	return rank, percentile
}

// DefaultIVProfiles returns the built-in 52-week IV ranges.
func DefaultIVProfiles() map[string]IVProfile {
	return map[string]IVProfile{
		// High volatility
		"TSLA": {35, 90}, "NVDA": {30, 80}, "AMD": {30, 75}, "COIN": {50, 120},
		"PLTR": {35, 85}, "SNOW": {35, 80}, "SHOP": {35, 85}, "ROKU": {40, 90},
		"RBLX": {40, 85}, "HOOD": {45, 100}, "SOFI": {40, 90}, "CRWD": {30, 70},
		"PANW": {28, 65}, "DDOG": {35, 75}, "NET": {40, 85},

		// Medium volatility
		"AAPL": {18, 45}, "MSFT": {16, 40}, "GOOGL": {18, 45}, "AMZN": {22, 50},
		"META": {25, 55}, "NFLX": {28, 60}, "AVGO": {22, 50}, "CRM": {25, 55},
		"ORCL": {20, 45}, "ADBE": {22, 50}, "UBER": {30, 65}, "ABNB": {32, 70},

		// Lower volatility
		"JPM": {15, 35}, "BAC": {18, 40}, "GS": {18, 40}, "V": {14, 32},
		"MA": {14, 32}, "UNH": {16, 35}, "JNJ": {12, 28}, "PG": {12, 28},
		"KO": {12, 26}, "WMT": {14, 30}, "COST": {14, 32}, "HD": {16, 35},
		"XOM": {18, 40}, "CVX": {18, 40},

		// ETFs and indexes
		"SPY": {10, 35}, "QQQ": {14, 40}, "IWM": {16, 45}, "DIA": {10, 32},
	}
}
