package gex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

func fptr(v float64) *float64 { return &v }

func testSnapshot() *chain.Snapshot {
	quote := func(strike float64, typ chain.OptionType, gamma float64, oi, vol int) *chain.OptionQuote {
		return &chain.OptionQuote{
			Strike:       strike,
			Expiration:   "2026-09-04",
			Type:         typ,
			Gamma:        fptr(gamma),
			OpenInterest: oi,
			Volume:       vol,
		}
	}
	return &chain.Snapshot{
		Underlying: "SPY",
		Spot:       580,
		Timestamp:  time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		Expirations: map[string]map[chain.Strike]chain.StrikePair{
			"2026-09-04": {
				570: {Call: quote(570, chain.TypeCall, 0.010, 300, 100), Put: quote(570, chain.TypePut, 0.015, 30000, 8000)},
				575: {Call: quote(575, chain.TypeCall, 0.015, 5000, 1200), Put: quote(575, chain.TypePut, 0.020, 18000, 4000)},
				580: {Call: quote(580, chain.TypeCall, 0.030, 9000, 4000), Put: quote(580, chain.TypePut, 0.030, 9200, 4100)},
				585: {Call: quote(585, chain.TypeCall, 0.020, 25000, 9000), Put: quote(585, chain.TypePut, 0.012, 4000, 900)},
				590: {Call: quote(590, chain.TypeCall, 0.012, 12000, 3000), Put: quote(590, chain.TypePut, 0.008, 2000, 400)},
			},
		},
	}
}

func TestBuildProfile_LiveChain(t *testing.T) {
	profile, err := BuildProfile(testSnapshot(), DefaultProfileConfig())
	require.NoError(t, err)

	assert.Equal(t, SourceLive, profile.Source)
	require.Len(t, profile.Levels, 5)

	// Levels come back in ascending strike order.
	for i := 1; i < len(profile.Levels); i++ {
		assert.Greater(t, profile.Levels[i].Strike, profile.Levels[i-1].Strike)
	}

	// Exposure formula: gamma * OI * 100 * spot^2 / 1e9, puts negative.
	lvl := profile.Levels[0] // 570
	assert.InDelta(t, 0.010*300*100*580*580/1e9, lvl.CallExposure, 1e-9)
	assert.InDelta(t, -0.015*30000*100*580*580/1e9, lvl.PutExposure, 1e-9)
	assert.InDelta(t, lvl.CallExposure+lvl.PutExposure, lvl.NetExposure, 1e-12)

	// Heavy put OI below spot, heavy call OI above.
	assert.Equal(t, LevelPutWall, profile.Levels[0].Type)
	assert.Equal(t, LevelCallWall, profile.Levels[3].Type)

	assert.Equal(t, 51300, profile.TotalCallOI)
	assert.Equal(t, 63200, profile.TotalPutOI)
	assert.InDelta(t, 63200.0/51300.0, profile.PutCallRatio, 1e-9)
}

func TestBuildProfile_EmptyChainFallsBackToSynthetic(t *testing.T) {
	snap := &chain.Snapshot{
		Underlying:  "SPX",
		Spot:        5800,
		Timestamp:   time.Now(),
		Expirations: map[string]map[chain.Strike]chain.StrikePair{},
	}

	profile, err := BuildProfile(snap, DefaultProfileConfig())
	require.NoError(t, err)
	assert.Equal(t, SourceEstimated, profile.Source)
	assert.Len(t, profile.Levels, 21)

	// Index-scale spot uses the 50-point ladder.
	assert.InDelta(t, 50, profile.Levels[1].Strike-profile.Levels[0].Strike, 1e-9)
}

func TestBuildProfile_SyntheticIsDeterministic(t *testing.T) {
	snap := &chain.Snapshot{Underlying: "QQQ", Spot: 500, Timestamp: time.Now()}

	a, err := BuildProfile(snap, DefaultProfileConfig())
	require.NoError(t, err)
	b, err := BuildProfile(snap, DefaultProfileConfig())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildProfile_SyntheticShape(t *testing.T) {
	snap := &chain.Snapshot{Underlying: "QQQ", Spot: 500, Timestamp: time.Now()}
	profile, err := BuildProfile(snap, DefaultProfileConfig())
	require.NoError(t, err)

	var sawFlip bool
	for _, lvl := range profile.Levels {
		assert.GreaterOrEqual(t, lvl.CallExposure, 0.0)
		assert.LessOrEqual(t, lvl.PutExposure, 0.0)
		if lvl.Type == LevelGammaFlip {
			sawFlip = true
			assert.InDelta(t, snap.Spot, lvl.Strike, 5*syntheticFlipBand)
		}
		// Call-heavy above spot, put-heavy below.
		if lvl.Strike > snap.Spot {
			assert.Greater(t, lvl.CallExposure, -lvl.PutExposure)
		}
		if lvl.Strike < snap.Spot {
			assert.Greater(t, -lvl.PutExposure, lvl.CallExposure)
		}
	}
	assert.True(t, sawFlip, "ladder should tag a gamma flip near spot")
}

func TestBuildProfile_MissingGammaUsesDefault(t *testing.T) {
	snap := testSnapshot()
	snap.Expirations["2026-09-04"][580].Call.Gamma = nil

	cfg := DefaultProfileConfig()
	profile, err := BuildProfile(snap, cfg)
	require.NoError(t, err)

	var atm Level
	for _, lvl := range profile.Levels {
		if lvl.Strike == 580 {
			atm = lvl
		}
	}
	assert.InDelta(t, cfg.DefaultGamma*9000*100*580*580/1e9, atm.CallExposure, 1e-9)

	// A default-gamma fill degrades the whole profile to estimated.
	assert.Equal(t, SourceEstimated, profile.Source)
}

func TestBuildProfile_GammalessChainTagsEstimated(t *testing.T) {
	snap := testSnapshot()
	for _, pair := range snap.Expirations["2026-09-04"] {
		pair.Call.Gamma = nil
		pair.Put.Gamma = nil
	}

	profile, err := BuildProfile(snap, DefaultProfileConfig())
	require.NoError(t, err)
	assert.Equal(t, SourceEstimated, profile.Source)
	assert.NotEmpty(t, profile.Levels)
}

func TestBuildProfile_InvalidSnapshot(t *testing.T) {
	snap := &chain.Snapshot{Underlying: "SPY", Spot: -1, Timestamp: time.Now()}
	_, err := BuildProfile(snap, DefaultProfileConfig())
	require.Error(t, err)
}
