package gex

import (
	"fmt"
	"sort"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// LevelType tags the structural role of a strike in the exposure profile.
type LevelType string

const (
	LevelCallWall  LevelType = "call_wall"
	LevelPutWall   LevelType = "put_wall"
	LevelGammaFlip LevelType = "gamma_flip"
	LevelNeutral   LevelType = "neutral"
)

// DataSource distinguishes profiles derived from live chain greeks from the
// deterministic synthetic ladder. The two are never mixed in one profile.
type DataSource string

const (
	SourceLive      DataSource = "live"
	SourceEstimated DataSource = "estimated"
)

// Level is the dealer gamma exposure aggregated at one strike, in billions of
// dollars per 1% underlying move. Put exposure is signed negative.
type Level struct {
	Strike       float64   `json:"strike"`
	CallExposure float64   `json:"call_exposure"`
	PutExposure  float64   `json:"put_exposure"`
	NetExposure  float64   `json:"net_exposure"`
	CallOI       int       `json:"call_oi"`
	PutOI        int       `json:"put_oi"`
	CallVolume   int       `json:"call_volume"`
	PutVolume    int       `json:"put_volume"`
	Type         LevelType `json:"type"`
}

// Profile is the full per-strike exposure picture for one underlying.
type Profile struct {
	Underlying    string     `json:"underlying"`
	Spot          float64    `json:"spot"`
	Source        DataSource `json:"source"`
	Levels        []Level    `json:"levels"` // ascending strike order
	TotalExposure float64    `json:"total_exposure"`
	TotalCallOI   int        `json:"total_call_oi"`
	TotalPutOI    int        `json:"total_put_oi"`
	PutCallRatio  float64    `json:"put_call_ratio"`
}

// ProfileConfig holds the significance thresholds for level classification.
type ProfileConfig struct {
	CallWallThreshold float64 `mapstructure:"call_wall_threshold"` // call exposure above => call_wall
	PutWallThreshold  float64 `mapstructure:"put_wall_threshold"`  // put exposure below => put_wall
	FlipThreshold     float64 `mapstructure:"flip_threshold"`      // |net| below => gamma_flip
	DefaultGamma      float64 `mapstructure:"default_gamma"`       // per-contract gamma when the feed omits it
	Expirations       int     `mapstructure:"expirations"`         // nearest expirations to aggregate
}

// DefaultProfileConfig mirrors the significance constants of the source
// methodology.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		CallWallThreshold: 0.3,
		PutWallThreshold:  -0.3,
		FlipThreshold:     0.1,
		DefaultGamma:      0.01,
		Expirations:       1,
	}
}

type strikeAccumulator struct {
	callOI, putOI               int
	callVolume, putVolume       int
	callGamma, putGamma         float64
	callGammaReal, putGammaReal bool
}

// usedDefaultGamma reports whether any open interest was priced with the
// configured default gamma because the feed omitted the real one.
func (a *strikeAccumulator) usedDefaultGamma() bool {
	return (a.callOI > 0 && !a.callGammaReal) || (a.putOI > 0 && !a.putGammaReal)
}

// BuildProfile aggregates per-strike dealer exposure from a chain snapshot.
// When the chain carries no contracts near the front expirations, the
// deterministic synthetic ladder is returned instead, flagged as estimated.
// A chain whose open interest had to be priced with the default gamma is
// flagged estimated too; live means every figure came from feed gammas.
func BuildProfile(snap *chain.Snapshot, cfg ProfileConfig) (*Profile, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("building gex profile: %w", err)
	}
	if cfg.Expirations < 1 {
		cfg.Expirations = 1
	}

	acc := make(map[float64]*strikeAccumulator)

	exps := snap.SortedExpirations()
	if len(exps) > cfg.Expirations {
		exps = exps[:cfg.Expirations]
	}

	for _, exp := range exps {
		for strike, pair := range snap.Expirations[exp] {
			a := acc[float64(strike)]
			if a == nil {
				a = &strikeAccumulator{
					callGamma: cfg.DefaultGamma,
					putGamma:  cfg.DefaultGamma,
				}
				acc[float64(strike)] = a
			}
			if pair.Call != nil {
				a.callOI += pair.Call.OpenInterest
				a.callVolume += pair.Call.Volume
				if pair.Call.Gamma != nil {
					a.callGamma = abs(*pair.Call.Gamma)
					a.callGammaReal = true
				}
			}
			if pair.Put != nil {
				a.putOI += pair.Put.OpenInterest
				a.putVolume += pair.Put.Volume
				if pair.Put.Gamma != nil {
					a.putGamma = abs(*pair.Put.Gamma)
					a.putGammaReal = true
				}
			}
		}
	}

	if len(acc) == 0 {
		return syntheticProfile(snap.Underlying, snap.Spot, cfg), nil
	}

	strikes := make([]float64, 0, len(acc))
	for strike := range acc {
		strikes = append(strikes, strike)
	}
	sort.Float64s(strikes)

	profile := &Profile{
		Underlying: snap.Underlying,
		Spot:       snap.Spot,
		Source:     SourceLive,
		Levels:     make([]Level, 0, len(strikes)),
	}

	const multiplier = 100
	for _, strike := range strikes {
		a := acc[strike]
		if a.usedDefaultGamma() {
			profile.Source = SourceEstimated
		}
		// $ gamma exposure per 1% move, in billions.
		callExp := a.callGamma * float64(a.callOI) * multiplier * snap.Spot * snap.Spot / 1e9
		putExp := -a.putGamma * float64(a.putOI) * multiplier * snap.Spot * snap.Spot / 1e9

		profile.Levels = append(profile.Levels, Level{
			Strike:       strike,
			CallExposure: callExp,
			PutExposure:  putExp,
			NetExposure:  callExp + putExp,
			CallOI:       a.callOI,
			PutOI:        a.putOI,
			CallVolume:   a.callVolume,
			PutVolume:    a.putVolume,
			Type:         classifyLevel(callExp, putExp, callExp+putExp, cfg),
		})
	}

	finalizeTotals(profile)
	return profile, nil
}

func classifyLevel(callExp, putExp, netExp float64, cfg ProfileConfig) LevelType {
	switch {
	case callExp > cfg.CallWallThreshold:
		return LevelCallWall
	case putExp < cfg.PutWallThreshold:
		return LevelPutWall
	case abs(netExp) < cfg.FlipThreshold:
		return LevelGammaFlip
	default:
		return LevelNeutral
	}
}

func finalizeTotals(p *Profile) {
	for _, lvl := range p.Levels {
		p.TotalExposure += lvl.NetExposure
		p.TotalCallOI += lvl.CallOI
		p.TotalPutOI += lvl.PutOI
	}
	if p.TotalCallOI > 0 {
		p.PutCallRatio = float64(p.TotalPutOI) / float64(p.TotalCallOI)
	} else {
		p.PutCallRatio = 1.0
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
