package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/optionsdesk/internal/events"
)

func eventsCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Scan the event calendar for upcoming binary risk",
		Long: `Scan the configured FOMC and blackout calendar and print the
events inside the lookahead window, the confidence haircut they impose,
and whether new entries are blocked outright.

Examples:
  # Scan from today
  desk events

  # Scan from a specific date
  desk events --as-of 2026-03-16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			if asOf != "" {
				parsed, err := time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of date %q: %w", asOf, err)
				}
				today = parsed
			}

			cal := cfg.EventCalendar()
			result := events.Horizon(today, cal, cfg.Events)

			if len(result.Events) == 0 {
				fmt.Printf("no events inside the next %d days\n", cfg.Events.LookaheadDays)
			}
			for _, ev := range result.Events {
				fmt.Printf("%-8s %s  in %2dd  [%s] %s\n", ev.Type, ev.Date, ev.DaysAway, ev.Impact, ev.Description)
			}

			fmt.Printf("confidence adjustment: %+d\n", result.ConfidenceAdjustment)
			for _, warning := range result.Warnings {
				fmt.Println("warning:", warning)
			}
			if blocked, reason := events.TradingBlocked(result, cfg.Events); blocked {
				fmt.Println("BLOCKED:", reason)
			}

			if next, ok := cal.NextFOMC(today); ok {
				fmt.Printf("next FOMC: %s (%d days away)\n", next.Date, next.DaysAway)
			} else {
				fmt.Println("next FOMC: none on calendar")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "scan from this date (YYYY-MM-DD) instead of today")

	return cmd
}
