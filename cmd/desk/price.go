package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
	"github.com/dgnsrekt/optionsdesk/internal/pricing"
)

func priceCmd() *cobra.Command {
	var (
		optType string
		ratePct float64
		solveIV bool
	)

	cmd := &cobra.Command{
		Use:   "price SPOT STRIKE DTE VOL_PCT",
		Short: "Price a single option and print its greeks",
		Long: `Price a single option with the closed-form lognormal model.

Examples:
  # Price a 30-day ATM call at 25% vol
  desk price 100 100 30 25

  # Price a put
  desk price 100 95 30 25 --type put

  # Solve implied volatility from an observed price (VOL_PCT is the price)
  desk price 100 100 30 3.06 --solve-iv`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]float64, 4)
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid numeric argument %q: %w", arg, err)
				}
				vals[i] = v
			}
			spot, strike, dte := vals[0], vals[1], int(vals[2])

			ot := chain.OptionType(optType)
			if !ot.Valid() {
				return fmt.Errorf("invalid option type %q (use call or put)", optType)
			}

			if ratePct == 0 {
				ratePct = cfg.Pricing.RiskFreeRatePct
			}

			if solveIV {
				iv, err := pricing.ImpliedVolatility(spot, strike, dte, ratePct, vals[3], ot)
				if err != nil {
					return err
				}
				fmt.Printf("implied volatility: %.2f%%\n", iv)
				return nil
			}

			result, err := pricing.PriceOption(spot, strike, dte, vals[3], ratePct, ot)
			if err != nil {
				return err
			}

			fmt.Printf("price:     %.4f\n", result.Price)
			fmt.Printf("delta:     %.2f\n", result.Delta)
			fmt.Printf("gamma:     %.6f\n", result.Gamma)
			fmt.Printf("theta:     %.4f/day\n", result.Theta)
			fmt.Printf("vega:      %.4f\n", result.Vega)
			fmt.Printf("intrinsic: %.4f\n", result.Intrinsic)
			fmt.Printf("extrinsic: %.4f\n", result.Extrinsic)
			return nil
		},
	}

	cmd.Flags().StringVar(&optType, "type", "call", "option type: call or put")
	cmd.Flags().Float64Var(&ratePct, "rate", 0, "risk-free rate percent (default from config)")
	cmd.Flags().BoolVar(&solveIV, "solve-iv", false, "treat VOL_PCT as an observed price and solve for IV")

	return cmd
}
