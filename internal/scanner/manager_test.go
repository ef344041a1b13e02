package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
	"github.com/dgnsrekt/optionsdesk/internal/decision"
	"github.com/dgnsrekt/optionsdesk/internal/events"
	"github.com/dgnsrekt/optionsdesk/internal/gex"
	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

func gptr(v float64) *float64 { return &v }

func scanSnapshot(symbol string, spot float64) *chain.Snapshot {
	strikes := make(map[chain.Strike]chain.StrikePair)
	for _, offset := range []float64{-10, -5, 0, 5, 10} {
		strike := spot + offset
		strikes[chain.Strike(strike)] = chain.StrikePair{
			Call: &chain.OptionQuote{
				Strike: strike, Expiration: "2026-09-04", Type: chain.TypeCall,
				ImpliedVolatility: 20, OpenInterest: 5000, Gamma: gptr(0.02),
			},
			Put: &chain.OptionQuote{
				Strike: strike, Expiration: "2026-09-04", Type: chain.TypePut,
				ImpliedVolatility: 22, OpenInterest: 7000, Gamma: gptr(0.02),
			},
		}
	}
	return &chain.Snapshot{
		Underlying:  symbol,
		Spot:        spot,
		Timestamp:   time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		Expirations: map[string]map[chain.Strike]chain.StrikePair{"2026-09-04": strikes},
	}
}

func testPipeline() Pipeline {
	return Pipeline{
		Profile:    gex.DefaultProfileConfig(),
		Regime:     gex.DefaultRegimeConfig(),
		Horizon:    events.DefaultHorizonConfig(),
		Decision:   decision.DefaultConfig(),
		VIX:        vol.DefaultVIXConfig(),
		IVProfiles: vol.DefaultIVProfiles(),
		Calendar:   events.NewCalendar(nil, nil),
		Market:     MarketInputs{VIX: 14, SPYChangePct: 0.2},
		Now:        time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestManagerExecuteBatch(t *testing.T) {
	dir := t.TempDir()
	symbols := []string{"SPY", "QQQ", "IWM"}
	tasks := make([]Task, 0, len(symbols))
	for _, sym := range symbols {
		path := filepath.Join(dir, sym+".json")
		require.NoError(t, chain.WriteSnapshot(path, scanSnapshot(sym, 500)))
		tasks = append(tasks, Task{Symbol: sym, Path: path})
	}

	m := NewManager(testPipeline(), 3, 100, zap.NewNop())
	result, err := m.Execute(context.Background(), tasks)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Success)
	assert.Zero(t, result.Unavailable)
	assert.Zero(t, result.Failed)
	require.Len(t, result.Reports, 3)

	seen := map[string]bool{}
	for _, report := range result.Reports {
		seen[report.Symbol] = true
		assert.Equal(t, gex.SourceLive, report.Profile.Source)
		assert.NotEmpty(t, report.Regime.Description)
	}
	for _, sym := range symbols {
		assert.True(t, seen[sym], "missing report for %s", sym)
	}
}

func TestManagerMissingSnapshotNotFatal(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "SPY.json")
	require.NoError(t, chain.WriteSnapshot(goodPath, scanSnapshot("SPY", 500)))

	tasks := []Task{
		{Symbol: "SPY", Path: goodPath},
		{Symbol: "QQQ", Path: filepath.Join(dir, "QQQ.json")},
	}

	m := NewManager(testPipeline(), 2, 100, zap.NewNop())
	result, err := m.Execute(context.Background(), tasks)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Unavailable)
	assert.Zero(t, result.Failed)
}

func TestManagerCorruptSnapshotFails(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "SPX.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o644))

	m := NewManager(testPipeline(), 1, 100, zap.NewNop())
	result, err := m.Execute(context.Background(), []Task{{Symbol: "SPX", Path: badPath}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "SPX")
}

func TestManagerEmptyBatch(t *testing.T) {
	m := NewManager(testPipeline(), 2, 100, zap.NewNop())
	result, err := m.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.NotEmpty(t, result.RunID)
}

func TestManagerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "SPY.json")
	require.NoError(t, chain.WriteSnapshot(path, scanSnapshot("SPY", 500)))

	m := NewManager(testPipeline(), 2, 1, zap.NewNop())

	type outcome struct {
		result *BatchResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := m.Execute(ctx, []Task{
			{Symbol: "SPY", Path: path},
			{Symbol: "QQQ", Path: path},
			{Symbol: "IWM", Path: path},
		})
		done <- outcome{result, err}
	}()

	// Execute must return even when the context was cancelled before any
	// job was fed; nothing succeeds because the limiter aborts.
	select {
	case out := <-done:
		require.NoError(t, out.err)
		assert.Zero(t, out.result.Success)
	case <-time.After(3 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}

func TestPipelineEmptyChainEstimated(t *testing.T) {
	snap := &chain.Snapshot{
		Underlying: "SPX",
		Spot:       5000,
		Timestamp:  time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
	}
	report, err := testPipeline().Run(snap)
	require.NoError(t, err)

	assert.Equal(t, gex.SourceEstimated, report.Profile.Source)
	assert.Equal(t, vol.IVSourceUnavailable, report.IV.Source)
	assert.NotEmpty(t, report.Profile.Levels)
}
