package main

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/lending-library-go/core"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func newHistoryCommand(a *app) *cobra.Command {
	var (
		itemID     string
		borrowerID string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the journaled events of an item or a borrower",
		Long: "Print the journaled events of an item (ISBN or series title) or a borrower.\n" +
			"Only the sqlite and postgres journal engines keep events between runs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (itemID == "") == (borrowerID == "") {
				return errors.New("exactly one of --item and --borrower is required")
			}

			if output != outputText && output != outputJSON {
				return fmt.Errorf("--output must be %s or %s", outputText, outputJSON)
			}

			ctx := cmd.Context()

			_, service, err := a.newSampleLibrary(ctx)
			if err != nil {
				return err
			}

			var events core.DomainEvents
			if itemID != "" {
				events, err = service.History(ctx, itemID)
			} else {
				events, err = service.BorrowerHistory(ctx, borrowerID)
			}

			if err != nil {
				return err
			}

			return printEvents(cmd.OutOrStdout(), events, output)
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "ISBN or series title")
	cmd.Flags().StringVar(&borrowerID, "borrower", "", "borrower ID like B001")
	cmd.Flags().StringVar(&output, "output", outputText, "text or json (one object per line)")

	return cmd
}

type eventLine struct {
	Type  string           `json:"type"`
	Event core.DomainEvent `json:"event"`
}

func printEvents(w io.Writer, events core.DomainEvents, output string) error {
	if output == outputText && len(events) == 0 {
		fmt.Fprintln(w, "no journaled events")
		return nil
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)

	for _, event := range events {
		if output == outputJSON {
			if err := encoder.Encode(eventLine{Type: event.IsEventType(), Event: event}); err != nil {
				return err
			}

			continue
		}

		payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(event)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s %s %s\n", core.FormatDate(event.HasOccurredAt()), event.IsEventType(), payload)
	}

	return nil
}
