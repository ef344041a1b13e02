package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
	"github.com/dgnsrekt/optionsdesk/internal/gex"
)

func gexCmd() *cobra.Command {
	var showLevels bool

	cmd := &cobra.Command{
		Use:   "gex SNAPSHOT_FILE",
		Short: "Build a gamma exposure profile from a chain snapshot",
		Long: `Build a per-strike dealer gamma exposure profile from a chain
snapshot file, then print the key levels and the implied regime.

Examples:
  # Profile the latest SPX snapshot
  desk gex ./data/2026-09-01/SPX.json.zst

  # Include the full per-strike ladder
  desk gex ./data/2026-09-01/SPX.json.zst --levels`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := chain.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			profile, err := gex.BuildProfile(snap, cfg.GEX)
			if err != nil {
				return err
			}
			keys := gex.FindKeyLevels(profile.Levels, profile.Spot)
			regime := gex.ClassifyRegime(profile.TotalExposure, cfg.Regime)

			fmt.Printf("%s @ %.2f (%s data)\n", profile.Underlying, profile.Spot, profile.Source)
			fmt.Printf("net exposure:   %+.2fB per 1%% move\n", profile.TotalExposure)
			fmt.Printf("put/call ratio: %.2f (%d put OI / %d call OI)\n",
				profile.PutCallRatio, profile.TotalPutOI, profile.TotalCallOI)
			fmt.Printf("call wall:  %.0f\n", keys.CallWall)
			fmt.Printf("put wall:   %.0f\n", keys.PutWall)
			fmt.Printf("gamma flip: %.0f\n", keys.GammaFlip)
			fmt.Printf("max pain:   %.0f\n", keys.MaxPain)
			fmt.Printf("regime: %s/%s (%s)\n", regime.Type, regime.Strength, regime.Bias)
			fmt.Println(regime.Description)

			if showLevels {
				fmt.Println()
				fmt.Println("strike      call       put       net  type")
				for _, lvl := range profile.Levels {
					fmt.Printf("%6.0f  %+8.3f  %+8.3f  %+8.3f  %s\n",
						lvl.Strike, lvl.CallExposure, lvl.PutExposure, lvl.NetExposure, lvl.Type)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showLevels, "levels", false, "print the full per-strike ladder")

	return cmd
}
