package gex

import "math"

// KeyLevels are the structural strikes derived from a profile. They are owned
// by, and recomputed from, the current level set.
type KeyLevels struct {
	CallWall  float64 `json:"call_wall"`
	PutWall   float64 `json:"put_wall"`
	GammaFlip float64 `json:"gamma_flip"`
	MaxPain   float64 `json:"max_pain"`
}

// defaultWallOffset places the walls when no strike exists on that side of
// spot.
const defaultWallOffset = 50.0

// FindKeyLevels extracts the call wall, put wall, gamma flip and max pain
// strikes. Ties break toward the strike nearest spot, then the lower strike.
func FindKeyLevels(levels []Level, spot float64) KeyLevels {
	if len(levels) == 0 {
		return KeyLevels{
			CallWall:  spot + defaultWallOffset,
			PutWall:   spot - defaultWallOffset,
			GammaFlip: spot,
			MaxPain:   spot,
		}
	}

	keys := KeyLevels{
		CallWall:  spot + defaultWallOffset,
		PutWall:   spot - defaultWallOffset,
		GammaFlip: spot,
	}

	var (
		haveCall, havePut, haveFlip bool
		bestCall, bestPut, bestFlip Level
		bestPain                    Level
		havePain                    bool
	)

	for _, lvl := range levels {
		if lvl.Strike > spot {
			if !haveCall || betterBy(lvl, bestCall, lvl.CallExposure > bestCall.CallExposure, lvl.CallExposure == bestCall.CallExposure, spot) {
				bestCall = lvl
				haveCall = true
			}
		}
		if lvl.Strike < spot {
			if !havePut || betterBy(lvl, bestPut, lvl.PutExposure < bestPut.PutExposure, lvl.PutExposure == bestPut.PutExposure, spot) {
				bestPut = lvl
				havePut = true
			}
		}
		if lvl.Type == LevelGammaFlip {
			if !haveFlip || closerOrLower(lvl, bestFlip, spot) {
				bestFlip = lvl
				haveFlip = true
			}
		}
		oi := lvl.CallOI + lvl.PutOI
		if !havePain || betterBy(lvl, bestPain, oi > bestPain.CallOI+bestPain.PutOI, oi == bestPain.CallOI+bestPain.PutOI, spot) {
			bestPain = lvl
			havePain = true
		}
	}

	if haveCall {
		keys.CallWall = bestCall.Strike
	}
	if havePut {
		keys.PutWall = bestPut.Strike
	}
	if haveFlip {
		keys.GammaFlip = bestFlip.Strike
	}
	if havePain {
		keys.MaxPain = bestPain.Strike
	} else {
		keys.MaxPain = spot
	}

	return keys
}

// betterBy prefers candidate over incumbent when strictly better, and on an
// exact tie falls back to proximity then lower strike.
func betterBy(candidate, incumbent Level, strictlyBetter, tied bool, spot float64) bool {
	if strictlyBetter {
		return true
	}
	if tied {
		return closerOrLower(candidate, incumbent, spot)
	}
	return false
}

func closerOrLower(candidate, incumbent Level, spot float64) bool {
	dc := math.Abs(candidate.Strike - spot)
	di := math.Abs(incumbent.Strike - spot)
	if dc != di {
		return dc < di
	}
	return candidate.Strike < incumbent.Strike
}
