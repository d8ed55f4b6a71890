package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// handled prints domain rejections and journaling failures, both let a command go on.
// Any other error is returned.
func handled(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, lending.ErrJournalingFailed) {
		fmt.Fprintf(w, "  warning: %v\n", err)
		return nil
	}

	if kind, ok := core.KindOf(err); ok {
		fmt.Fprintf(w, "  rejected (%s): %v\n", kind, err)
		return nil
	}

	return err
}

func printCheckout(w io.Writer, result lending.CheckoutResult) {
	fmt.Fprintf(w, "  %s checked out %s '%s', due %s (loan %s)\n",
		result.Borrower.Name,
		result.ItemKind.Label(),
		result.Title,
		core.FormatDate(result.DueDate),
		result.LoanID,
	)

	if len(result.Members) > 0 {
		fmt.Fprintf(w, "    with %d member(s)\n", len(result.Members))
	}
}

func printReturn(w io.Writer, receipt lending.ReturnReceipt) {
	if !receipt.IsLate() {
		fmt.Fprintf(w, "  %s '%s' returned by %s on time\n", receipt.ItemKind.Label(), receipt.Title, receipt.BorrowerID)
		return
	}

	fmt.Fprintf(w, "  %s '%s' returned by %s %d day(s) late, late fee %.2f\n",
		receipt.ItemKind.Label(),
		receipt.Title,
		receipt.BorrowerID,
		receipt.DaysLate,
		receipt.LateFee,
	)
}

func printSweep(w io.Writer, report lending.SweepReport) {
	fmt.Fprintf(w, "  sweep of %s: %d checked out, %d reminder(s), %d overdue notice(s), %d duplicate(s) suppressed\n",
		core.FormatDate(report.Today),
		report.CheckedOutItems,
		report.Reminders,
		report.OverdueNotices,
		report.DuplicatesSuppressed,
	)

	for _, notice := range report.Notices {
		fmt.Fprintf(w, "    -> %s: %s\n", notice.NoticeFor(), notice.NoticeMessage())
	}
}

func printNotifications(w io.Writer, registry *lending.Registry, borrowerIDs ...core.BorrowerIDString) error {
	for _, id := range borrowerIDs {
		notifications, err := registry.Notifications(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "  %s (%d):\n", id, len(notifications))

		for _, notification := range notifications {
			fmt.Fprintf(w, "    %s\n", notification)
		}
	}

	return nil
}
