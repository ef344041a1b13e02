package vol

// Regime buckets the absolute VIX level.
type Regime string

const (
	RegimeLow      Regime = "low"
	RegimeElevated Regime = "elevated"
	RegimeHigh     Regime = "high"
	RegimeExtreme  Regime = "extreme"
)

// TermStructure describes the VIX1D / VIX relationship.
type TermStructure string

const (
	TermContango      TermStructure = "contango"
	TermBackwardation TermStructure = "backwardation"
	TermFlat          TermStructure = "flat"
	TermUnknown       TermStructure = "unknown"
)

// VIXConfig holds the regime cut points and term-structure bands.
type VIXConfig struct {
	LowMax      float64 `mapstructure:"low_max"`
	ElevatedMax float64 `mapstructure:"elevated_max"`
	HighMax     float64 `mapstructure:"high_max"`

	ContangoRatio      float64 `mapstructure:"contango_ratio"`
	BackwardationRatio float64 `mapstructure:"backwardation_ratio"`
}

// DefaultVIXConfig returns the standard 15/20/30 cut points.
func DefaultVIXConfig() VIXConfig {
	return VIXConfig{
		LowMax:             15,
		ElevatedMax:        20,
		HighMax:            30,
		ContangoRatio:      0.95,
		BackwardationRatio: 1.05,
	}
}

// ClassifyVIX buckets an absolute VIX level into a regime.
func ClassifyVIX(vix float64, cfg VIXConfig) Regime {
	switch {
	case vix < cfg.LowMax:
		return RegimeLow
	case vix < cfg.ElevatedMax:
		return RegimeElevated
	case vix < cfg.HighMax:
		return RegimeHigh
	default:
		return RegimeExtreme
	}
}

// ClassifyTermStructure compares the 1-day index against the 30-day index.
// Either leg missing or non-positive yields TermUnknown rather than a guess.
func ClassifyTermStructure(vix1d, vix float64, cfg VIXConfig) TermStructure {
	if vix1d <= 0 || vix <= 0 {
		return TermUnknown
	}
	switch {
	case vix1d < vix*cfg.ContangoRatio:
		return TermContango
	case vix1d > vix*cfg.BackwardationRatio:
		return TermBackwardation
	default:
		return TermFlat
	}
}
