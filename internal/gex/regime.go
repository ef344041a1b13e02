package gex

// RegimeType names the dealer-positioning regime implied by total exposure.
type RegimeType string

const (
	RegimePositiveGamma RegimeType = "positive_gamma"
	RegimeNegativeGamma RegimeType = "negative_gamma"
	RegimeNeutral       RegimeType = "neutral"
)

// Strength grades how far total exposure sits beyond the regime threshold.
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Bias is the intraday price behavior the regime implies.
type Bias string

const (
	BiasPin   Bias = "pin"
	BiasTrend Bias = "trend"
	BiasChop  Bias = "chop"
)

// MarketRegime is a derived value, recomputed per query and never persisted.
type MarketRegime struct {
	Type          RegimeType `json:"type"`
	Strength      Strength   `json:"strength"`
	Bias          Bias       `json:"bias"`
	TotalExposure float64    `json:"total_exposure"`
	Description   string     `json:"description"`
}

// RegimeConfig holds the classification cut points.
type RegimeConfig struct {
	Threshold       float64 `mapstructure:"threshold"`        // |total| beyond => directional regime
	StrongThreshold float64 `mapstructure:"strong_threshold"` // |total| beyond => strong
}

// DefaultRegimeConfig returns the source methodology's cut points.
func DefaultRegimeConfig() RegimeConfig {
	return RegimeConfig{Threshold: 3.0, StrongThreshold: 6.0}
}

// ClassifyRegime maps total gamma exposure to a market regime.
func ClassifyRegime(totalExposure float64, cfg RegimeConfig) MarketRegime {
	switch {
	case totalExposure > cfg.Threshold:
		strength := StrengthModerate
		if totalExposure > cfg.StrongThreshold {
			strength = StrengthStrong
		}
		return MarketRegime{
			Type:          RegimePositiveGamma,
			Strength:      strength,
			Bias:          BiasPin,
			TotalExposure: totalExposure,
			Description:   "Dealers LONG gamma - will sell rallies/buy dips. Expect mean reversion and pinning.",
		}
	case totalExposure < -cfg.Threshold:
		strength := StrengthModerate
		if totalExposure < -cfg.StrongThreshold {
			strength = StrengthStrong
		}
		return MarketRegime{
			Type:          RegimeNegativeGamma,
			Strength:      strength,
			Bias:          BiasTrend,
			TotalExposure: totalExposure,
			Description:   "Dealers SHORT gamma - must chase price. Expect amplified moves and trending.",
		}
	default:
		return MarketRegime{
			Type:          RegimeNeutral,
			Strength:      StrengthWeak,
			Bias:          BiasChop,
			TotalExposure: totalExposure,
			Description:   "Neutral GEX - no strong dealer positioning. Expect choppy action.",
		}
	}
}
