package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/optionsdesk/internal/scanner"
	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

func scanCmd() *cobra.Command {
	var (
		vix         float64
		vix1d       float64
		vix1dChange float64
		spyChange   float64
		outputJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [SYMBOL...]",
		Short: "Run the full analytics pipeline over a snapshot batch",
		Long: `Run every configured symbol's chain snapshot through the exposure,
volatility, event and decision pipeline and print one verdict per
symbol. Missing snapshots mark the symbol unavailable without failing
the batch.

Examples:
  # Scan the configured symbol list against the latest snapshot date
  desk scan --vix 18.2

  # Scan two symbols with full volatility reads, as JSON
  desk scan SPX SPY --vix 28.5 --vix1d 31.0 --vix1d-change 12.3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := args
			if len(symbols) == 0 {
				symbols = cfg.Symbols
			}

			dir, err := cfg.SnapshotDir()
			if err != nil {
				return err
			}

			market := scanner.MarketInputs{VIX: vix, SPYChangePct: spyChange}
			if cmd.Flags().Changed("vix1d") {
				market.VIX1D = &vix1d
			}
			if cmd.Flags().Changed("vix1d-change") {
				market.VIX1DChangePct = &vix1dChange
			}

			pipeline := scanner.Pipeline{
				Profile:    cfg.GEX,
				Regime:     cfg.Regime,
				Horizon:    cfg.Events,
				Decision:   cfg.Decision,
				VIX:        cfg.VIX,
				IVProfiles: vol.DefaultIVProfiles(),
				Calendar:   cfg.EventCalendar(),
				Market:     market,
				Now:        time.Now(),
			}

			tasks := make([]scanner.Task, 0, len(symbols))
			for _, symbol := range symbols {
				tasks = append(tasks, scanner.Task{
					Symbol: symbol,
					Path:   snapshotPath(dir, symbol),
				})
			}

			manager := scanner.NewManager(pipeline, cfg.Scan.Workers, cfg.Scan.RatePerSecond, logger)
			batch, err := manager.Execute(cmd.Context(), tasks)
			if err != nil {
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(batch)
			}

			for _, report := range batch.Reports {
				desk := report.Desk
				fmt.Printf("%-6s %-12s conf %3d  %s\n",
					report.Symbol, desk.Status, desk.FinalConfidence, desk.StatusReason)
				fmt.Printf("       regime %s  net %+.2fB  walls %.0f/%.0f  flip %.0f\n",
					desk.Regime, report.Profile.TotalExposure,
					report.Levels.PutWall, report.Levels.CallWall, report.Levels.GammaFlip)
				if desk.Structure != "" {
					fmt.Printf("       %s %s  target %.0f  invalidation %.0f\n",
						desk.Direction, desk.Structure, desk.ProfitTarget, desk.InvalidationLevel)
				}
				for _, warning := range desk.Warnings {
					fmt.Printf("       warning: %s\n", warning)
				}
			}

			fmt.Printf("\nscan %s: %d ok, %d unavailable, %d failed of %d\n",
				batch.RunID[:8], batch.Success, batch.Unavailable, batch.Failed, batch.Total)
			for _, msg := range batch.Errors {
				fmt.Println("error:", msg)
			}

			logger.Info("scan complete",
				zap.String("run_id", batch.RunID),
				zap.Int("success", batch.Success),
				zap.Int("unavailable", batch.Unavailable),
				zap.Int("failed", batch.Failed))
			return nil
		},
	}

	cmd.Flags().Float64Var(&vix, "vix", 0, "current VIX level")
	cmd.Flags().Float64Var(&vix1d, "vix1d", 0, "current VIX1D level")
	cmd.Flags().Float64Var(&vix1dChange, "vix1d-change", 0, "VIX1D percent change on the day")
	cmd.Flags().Float64Var(&spyChange, "spy-change", 0, "SPY percent change on the day")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "emit the full batch result as JSON")

	return cmd
}

// snapshotPath prefers the compressed snapshot when both forms exist.
func snapshotPath(dir, symbol string) string {
	compressed := filepath.Join(dir, symbol+".json.zst")
	if _, err := os.Stat(compressed); err == nil {
		return compressed
	}
	return filepath.Join(dir, symbol+".json")
}
