package gex

import "math"

// Synthetic ladder shape constants. The ladder is fully deterministic so two
// builds over the same spot are identical.
const (
	syntheticRungs     = 10  // rungs each side of the anchor strike
	syntheticBase      = 2.0 // exposure magnitude at the anchor
	syntheticDecay     = 30  // magnitude lost per unit of distance ratio
	syntheticFloor     = 0.1
	syntheticMajorSkew = 1.5 // dominant side multiplier
	syntheticMinorSkew = 0.3 // opposing side multiplier
	syntheticFlipBand  = 0.6 // rungs within this many increments of spot flip
	indexSpotCutoff    = 1000.0
)

// syntheticProfile builds the estimated exposure ladder used when a chain has
// no usable contracts. Strikes above spot skew call-heavy, strikes below
// put-heavy, with magnitude decaying away from spot.
func syntheticProfile(underlying string, spot float64, cfg ProfileConfig) *Profile {
	increment := 5.0
	if spot >= indexSpotCutoff {
		increment = 50.0
	}
	anchor := math.Round(spot/increment) * increment

	profile := &Profile{
		Underlying: underlying,
		Spot:       spot,
		Source:     SourceEstimated,
		Levels:     make([]Level, 0, 2*syntheticRungs+1),
	}

	for i := -syntheticRungs; i <= syntheticRungs; i++ {
		strike := anchor + float64(i)*increment
		if strike <= 0 {
			continue
		}
		distance := math.Abs(strike-spot) / spot
		magnitude := math.Max(syntheticFloor, syntheticBase-distance*syntheticDecay)

		var callExp, putExp float64
		var levelType LevelType
		if strike > spot {
			callExp = magnitude * syntheticMajorSkew
			putExp = -magnitude * syntheticMinorSkew
			levelType = LevelNeutral
			if callExp > syntheticMajorSkew {
				levelType = LevelCallWall
			}
		} else {
			callExp = magnitude * syntheticMinorSkew
			putExp = -magnitude * syntheticMajorSkew
			levelType = LevelNeutral
			if putExp < -syntheticMajorSkew {
				levelType = LevelPutWall
			}
		}
		if math.Abs(strike-spot) < increment*syntheticFlipBand {
			levelType = LevelGammaFlip
		}

		profile.Levels = append(profile.Levels, Level{
			Strike:       strike,
			CallExposure: callExp,
			PutExposure:  putExp,
			NetExposure:  callExp + putExp,
			CallOI:       int(magnitude * 8000),
			PutOI:        int(math.Abs(putExp) * 6000),
			CallVolume:   int(magnitude * 4000),
			PutVolume:    int(math.Abs(putExp) * 3000),
			Type:         levelType,
		})
	}

	finalizeTotals(profile)
	return profile
}
