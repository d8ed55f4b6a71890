package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

const (
	demoLoanDays    = 14
	demoTooManyDays = 30
)

func newDemoCommand(a *app) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Lend, sweep and return the sample items while the clock moves forward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}

			return a.runDemo(cmd, startDate)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "the day the demo starts (YYYY-MM-DD), defaults to today")

	return cmd
}

// runDemo checks out a book and a series, shows two rejections, sweeps before and after the
// due date and returns both items late.
func (a *app) runDemo(cmd *cobra.Command, start time.Time) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	now := start
	_, service, err := a.newSampleLibrary(ctx, lending.WithClock(func() time.Time { return now }))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "== %s: checkouts\n", start.Format(time.DateOnly))

	steps := []struct {
		itemID     string
		borrowerID string
		days       int
	}{
		{sampledata.ISBNGreatGatsby, sampledata.BorrowerJohn, demoLoanDays},
		{sampledata.SeriesLordOfTheRings, sampledata.BorrowerJane, demoLoanDays},
		{sampledata.ISBNFellowship, sampledata.BorrowerJohn, demoLoanDays},
		{sampledata.ISBNCleanCode, sampledata.BorrowerJohn, demoTooManyDays},
	}

	for _, step := range steps {
		result, err := service.CheckoutItem(ctx, step.itemID, step.borrowerID, step.days)
		if err == nil || result.LoanID != "" {
			printCheckout(out, result)
		}

		if err := handled(out, err); err != nil {
			return err
		}
	}

	for _, daysLater := range []int{demoLoanDays - 2, demoLoanDays + 3} {
		now = start.AddDate(0, 0, daysLater)
		fmt.Fprintf(out, "== %s: due date sweep\n", now.Format(time.DateOnly))

		report, err := service.CheckAllDueDates(ctx)
		printSweep(out, report)

		if err := handled(out, err); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "== %s: returns\n", now.Format(time.DateOnly))

	for _, itemID := range []string{sampledata.ISBNGreatGatsby, sampledata.SeriesLordOfTheRings} {
		receipt, err := service.ReturnItem(ctx, itemID)
		if err == nil || receipt.LoanID != "" {
			printReturn(out, receipt)
		}

		if err := handled(out, err); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "== notifications")

	if err := printNotifications(out, service.Registry(), sampledata.BorrowerJohn, sampledata.BorrowerJane); err != nil {
		return err
	}

	lateReturns, err := service.LateReturns(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "== journal: %d late return(s)\n", len(lateReturns))

	for _, returned := range lateReturns {
		fmt.Fprintf(out, "  %s '%s' by %s: %.2f\n", returned.ItemKind.Label(), returned.Title, returned.BorrowerID, returned.LateFee)
	}

	return nil
}
