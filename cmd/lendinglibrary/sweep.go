package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

func newSweepCommand(a *app) *cobra.Command {
	var (
		checkoutDate string
		today        string
		days         int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Lend the sample items on one day and run the due-date sweep on another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			todayDate, err := parseDateFlag("today", today)
			if err != nil {
				return err
			}

			lentOn := todayDate.AddDate(0, 0, -days)
			if checkoutDate != "" {
				if lentOn, err = parseDateFlag("checkout-date", checkoutDate); err != nil {
					return err
				}
			}

			return a.runSweep(cmd, lentOn, todayDate, days)
		},
	}

	cmd.Flags().StringVar(&checkoutDate, "checkout-date", "", "the day the sample items are lent (YYYY-MM-DD), defaults to --today minus --days")
	cmd.Flags().StringVar(&today, "today", "", "the day of the sweep (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&days, "days", 14, "loan period of the sample loans")

	return cmd
}

// runSweep lends with one Service fixed to lentOn and sweeps with a second one fixed to today.
// Both share the seeded catalog.
func (a *app) runSweep(cmd *cobra.Command, lentOn time.Time, today time.Time, days int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c, lender, err := a.newSampleLibrary(ctx, lending.WithFixedToday(lentOn))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "== %s: lending for %d day(s)\n", lentOn.Format(time.DateOnly), days)

	loans := []struct {
		itemID     string
		borrowerID string
	}{
		{sampledata.ISBNGreatGatsby, sampledata.BorrowerJohn},
		{sampledata.ISBNCleanCode, sampledata.BorrowerJohn},
		{sampledata.SeriesLordOfTheRings, sampledata.BorrowerJane},
	}

	for _, loan := range loans {
		result, err := lender.CheckoutItem(ctx, loan.itemID, loan.borrowerID, days)
		if err == nil || result.LoanID != "" {
			printCheckout(out, result)
		}

		if err := handled(out, err); err != nil {
			return err
		}
	}

	sweeper, err := lending.NewService(c, a.serviceOptions(lending.WithFixedToday(today))...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "== %s: due date sweep\n", today.Format(time.DateOnly))

	report, err := sweeper.CheckAllDueDates(ctx)
	printSweep(out, report)

	return handled(out, err)
}
