package lending

import (
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// CheckoutResult describes a successful checkout.
type CheckoutResult struct {
	ItemKey  core.ItemKey
	ItemKind core.ItemKind
	Title    string
	Borrower core.BorrowerRef
	DueDate  time.Time
	LoanID   core.LoanIDString

	// Members holds the keys of all items checked out along with a series, nested members included.
	Members []core.ItemKey
}

// ReturnReceipt describes a successful return.
// DaysLate and LateFee are informational, the late fee is not kept as a balance.
type ReturnReceipt struct {
	ItemKey    core.ItemKey
	ItemKind   core.ItemKind
	Title      string
	BorrowerID core.BorrowerIDString
	LoanID     core.LoanIDString
	DueDate    time.Time
	ReturnedAt time.Time
	DaysLate   int
	LateFee    float64
}

// IsLate reports whether the item came back after its due date.
func (r ReturnReceipt) IsLate() bool {
	return r.DaysLate > 0
}

// SweepReport summarizes one due-date sweep.
type SweepReport struct {
	Today                time.Time
	CheckedOutItems      int
	Reminders            int
	OverdueNotices       int
	DuplicatesSuppressed int

	// Notices holds the notices that were appended to notification logs, duplicates are not included.
	Notices []core.BorrowerNotice
}
