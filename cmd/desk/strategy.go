package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/decision"
	"github.com/dgnsrekt/optionsdesk/internal/vol"
)

func strategyCmd() *cobra.Command {
	var (
		strategyName string
		ivRank       int
		dte          int
		vix          float64
		spyChange    float64
		sectorChange float64
		earningsRisk bool
	)

	cmd := &cobra.Command{
		Use:   "strategy SYMBOL PRICE",
		Short: "Score a premium-selling strategy setup for one symbol",
		Long: `Score an ipmcc, 112 or strangle setup from the symbol's IV rank
and the macro tape, and print the signal with its supporting numbers.

Examples:
  # Strangle on SPY at 52 IV rank
  desk strategy SPY 580 --name strangle --iv-rank 52 --vix 16.5

  # IPMCC into a weak tape
  desk strategy AAPL 225 --name ipmcc --iv-rank 61 --dte 45 \
      --vix 24 --spy-change -1.2 --sector-change -2.0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}

			strat := decision.Strategy(strategyName)
			if !strat.Valid() {
				return fmt.Errorf("invalid strategy %q (use ipmcc, 112 or strangle)", strategyName)
			}

			symbol := args[0]
			sector := decision.AnalyzeSector(
				decision.SectorETFFor(symbol), sectorChange, spyChange, cfg.Decision)
			macro := decision.MacroSnapshot{
				VIXLevel:     vix,
				VIXRegime:    vol.ClassifyVIX(vix, cfg.VIX),
				MarketTrend:  decision.ClassifyMarketTrend(spyChange, cfg.Decision),
				Sector:       &sector,
				EarningsRisk: earningsRisk,
			}

			result := decision.ComposeStrategy(decision.StrategyInput{
				Symbol:   symbol,
				Strategy: strat,
				Price:    price,
				IVRank:   ivRank,
				DTE:      dte,
			}, macro, cfg.Decision)

			fmt.Printf("%s %s: %s (confidence %d)\n",
				result.Symbol, result.Strategy, result.Signal, result.FinalConfidence)
			fmt.Println(result.SignalReason)
			fmt.Printf("scores: iv %d  premium %d  trend %d\n",
				result.IVRankScore, result.PremiumScore, result.TrendScore)
			fmt.Printf("strikes: %s\n", result.Strikes)
			fmt.Printf("target premium: %s  max risk: %s  expected: %s\n",
				result.TargetPremium, result.MaxRisk, result.ExpectedReturn)
			fmt.Println(result.Recommendation)
			for _, warning := range result.Warnings {
				fmt.Println("warning:", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "name", "strangle", "strategy family: ipmcc, 112 or strangle")
	cmd.Flags().IntVar(&ivRank, "iv-rank", 50, "symbol IV rank, 0-100")
	cmd.Flags().IntVar(&dte, "dte", 45, "days to expiration for the short leg")
	cmd.Flags().Float64Var(&vix, "vix", 0, "current VIX level")
	cmd.Flags().Float64Var(&spyChange, "spy-change", 0, "SPY percent change on the day")
	cmd.Flags().Float64Var(&sectorChange, "sector-change", 0, "sector ETF percent change on the day")
	cmd.Flags().BoolVar(&earningsRisk, "earnings-risk", false, "earnings inside the trade window")

	return cmd
}
