package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/pricing"
)

func diagonalCmd() *cobra.Command {
	var (
		ratePct  float64
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "diagonal SPOT LONG_STRIKE LONG_DTE LONG_IV SHORT_STRIKE SHORT_DTE SHORT_IV",
		Short: "Model a long/short diagonal call position",
		Long: `Model a diagonal position built from a long-dated deep call and a
short-dated call sold against it, and print per-leg greeks plus
capital efficiency and yield figures.

Examples:
  # 120 DTE long 80-strike vs weekly 105 call on a 100 underlying
  desk diagonal 100 80 120 30 105 7 25

  # Ten contracts at a higher financing rate
  desk diagonal 100 80 120 30 105 7 25 --quantity 10 --rate 5.5`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, 7)
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid numeric argument %q: %w", arg, err)
				}
				vals[i] = v
			}

			if ratePct == 0 {
				ratePct = cfg.Pricing.RiskFreeRatePct
			}

			analysis, err := pricing.AnalyzeDiagonal(pricing.DiagonalInput{
				Spot:        vals[0],
				LongStrike:  vals[1],
				LongDTE:     int(vals[2]),
				LongIVPct:   vals[3],
				ShortStrike: vals[4],
				ShortDTE:    int(vals[5]),
				ShortIVPct:  vals[6],
				RatePct:     ratePct,
				Quantity:    quantity,
			})
			if err != nil {
				return err
			}

			fmt.Printf("long leg:   %.2f @ %d DTE  delta %.2f  theta %.4f\n",
				analysis.LongLeg.Price, analysis.LongLeg.DaysToExpiry, analysis.LongLeg.Delta, analysis.LongLeg.Theta)
			fmt.Printf("short leg:  %.2f @ %d DTE  delta %.2f  theta %.4f\n",
				analysis.ShortLeg.Price, analysis.ShortLeg.DaysToExpiry, analysis.ShortLeg.Delta, analysis.ShortLeg.Theta)
			fmt.Printf("net delta:  %.2f\n", analysis.NetDelta)
			fmt.Printf("net theta:  %.4f/day\n", analysis.NetTheta)
			fmt.Printf("capital:    %.2f (%.1f%% savings vs stock)\n", analysis.CapitalRequired, analysis.CapitalSavingsPct)
			fmt.Printf("cycle yield: %.2f%%  annualized %.1f%%\n", analysis.PeriodicExtrinsicYield, analysis.AnnualizedYield)
			fmt.Printf("breakeven:  %.2f (%.1f cycles to cover extrinsic)\n", analysis.BreakevenPrice, analysis.WeeksToBreakeven)
			return nil
		},
	}

	cmd.Flags().Float64Var(&ratePct, "rate", 0, "risk-free rate percent (default from config)")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of contracts")

	return cmd
}
