package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/vol"
	"github.com/dgnsrekt/optionsdesk/internal/window"
)

func windowsCmd() *cobra.Command {
	var (
		vix          float64
		vix1d        float64
		vix1dChange  float64
		haveVIXSpike bool
	)

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Show the current trading window and kill-switch state",
		Long: `Evaluate the current time against the 0DTE session window table
and, when volatility reads are supplied, run the kill-switch checks.

Examples:
  # Window status only
  desk windows

  # Full kill-switch evaluation
  desk windows --vix 28.5 --vix1d 31.0 --vix1d-change 12.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := window.NewClock(nil)
			status := clock.Evaluate(time.Now())

			fmt.Printf("time: %s  market day: %v  market open: %v\n",
				status.CurrentTime, status.MarketDay, status.MarketOpen)
			if status.CurrentWindow != nil {
				fmt.Printf("window: %s (%s)\n", status.CurrentWindow.Name, status.CurrentWindow.Type)
			}
			fmt.Printf("time to exit: %s\n", status.TimeToExit)

			if vix <= 0 {
				return nil
			}

			haveVIXSpike = cmd.Flags().Changed("vix1d-change")
			input := window.KillSwitchInput{
				VIX:           vix,
				VIXRegime:     vol.ClassifyVIX(vix, cfg.VIX),
				TermStructure: vol.ClassifyTermStructure(vix1d, vix, cfg.VIX),
				Window:        status.CurrentWindow,
				TimeToExit:    status.TimeToExit,
			}
			if haveVIXSpike {
				input.VIX1DChangePct = &vix1dChange
			}

			result := window.EvaluateKillSwitch(input, cfg.Kill)
			fmt.Printf("threat level: %s\n", result.ThreatLevel)
			for _, alert := range result.Alerts {
				fmt.Printf("  [%s] %s: %s\n", alert.Severity, alert.Type, alert.Message)
			}
			if result.Recommended {
				fmt.Println("KILL SWITCH RECOMMENDED")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&vix, "vix", 0, "current VIX level (enables kill-switch checks)")
	cmd.Flags().Float64Var(&vix1d, "vix1d", 0, "current VIX1D level")
	cmd.Flags().Float64Var(&vix1dChange, "vix1d-change", 0, "VIX1D percent change on the day")

	return cmd
}
