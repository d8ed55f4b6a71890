package lending

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/journal"
)

// Service orchestrates checkouts, returns and due-date sweeps on the items of a Catalog.
//
// Every operation holds the locks of all involved items (and of the borrower for book checkouts and returns)
// from the first check until the borrower's bookkeeping is updated, so two concurrent checkouts
// of the same item can't both succeed. All methods are safe for concurrent use.
type Service struct {
	catalog     Catalog
	coordinator *SeriesCoordinator
	locks       *lockTable
	structureMu sync.Mutex // serializes series membership changes
	policy      LoanPolicy
	clock       Clock
	newLoanID   LoanIDGenerator

	journal          journal.Journal
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewService creates a Service working on catalog.
func NewService(catalog Catalog, options ...Option) (*Service, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	s := &Service{
		catalog:     catalog,
		coordinator: NewSeriesCoordinator(),
		locks:       newLockTable(),
		policy:      DefaultLoanPolicy(),
		clock:       time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.newLoanID == nil {
		s.newLoanID = NewULIDLoanIDGenerator(s.clock)
	}

	return s, nil
}

// Policy returns the loan policy in effect.
func (s *Service) Policy() LoanPolicy {
	return s.policy
}

// Now returns the current time according to the Service's clock.
func (s *Service) Now() time.Time {
	return s.clock()
}

// CheckoutItem checks out the item identified by itemID to the borrower for days.
//
// itemID is resolved as an ISBN first and as a series title second.
// The loan period is validated against the policy, the item's type and format limits apply on top.
// Only individually checked out books count toward the borrower's book limit, series don't.
//
// A non-nil result comes with an error wrapping ErrJournalingFailed if the checkout was committed
// but could not be journaled.
func (s *Service) CheckoutItem(
	ctx context.Context,
	itemID string,
	borrowerID core.BorrowerIDString,
	days int,
) (CheckoutResult, error) {

	observer, ctx := s.startOperation(ctx, OperationCheckout, SpanNameCheckout, map[string]string{
		SpanAttrItemID:     itemID,
		SpanAttrBorrowerID: borrowerID,
		SpanAttrLoanDays:   strconv.Itoa(days),
	})

	result, err := s.checkoutItem(ctx, itemID, borrowerID, days)
	observer.finish(err, map[string]string{SpanAttrItemKey: string(result.ItemKey)})

	if err != nil {
		s.rejected(ctx, OperationCheckout, itemID, borrowerID, err)
		return result, err
	}

	s.logInfo(ctx, LogMsgCheckoutCompleted,
		LogAttrItemKey, string(result.ItemKey),
		LogAttrBorrowerID, result.Borrower.ID,
		LogAttrLoanID, result.LoanID,
		LogAttrDueDate, core.FormatDate(result.DueDate),
		LogAttrDurationMS, toMilliseconds(observer.elapsed()),
	)

	return result, nil
}

func (s *Service) checkoutItem(
	ctx context.Context,
	itemID string,
	borrowerID core.BorrowerIDString,
	days int,
) (CheckoutResult, error) {

	if err := ctx.Err(); err != nil {
		return CheckoutResult{}, err
	}

	if err := core.ValidateLoanPeriod(days, s.policy.MaxLoanPeriodDays); err != nil {
		return CheckoutResult{}, err
	}

	item, err := s.resolveItem(itemID)
	if err != nil {
		return CheckoutResult{}, err
	}

	borrower, found := s.catalog.FindBorrowerByID(borrowerID)
	if !found {
		return CheckoutResult{}, core.NotFoundError("Borrower not found")
	}

	switch it := item.(type) {
	case *core.Book:
		return s.checkoutBook(ctx, it, borrower, days)

	case *core.Series:
		return s.checkoutSeries(ctx, it, borrower, days)

	default:
		return CheckoutResult{}, core.NotFoundError("Item not found")
	}
}

func (s *Service) checkoutBook(
	ctx context.Context,
	book *core.Book,
	borrower *core.Borrower,
	days int,
) (CheckoutResult, error) {

	unlock := s.lock(ctx, string(book.Key()), borrowerLockKey(borrower.ID()))
	defer unlock()

	if borrower.Holds() >= s.policy.MaxBooksPerBorrower {
		return CheckoutResult{}, core.PolicyViolationError(
			"Borrower has reached maximum number of books (%d)", s.policy.MaxBooksPerBorrower)
	}

	transition, err := core.DecideCheckOut(book, borrower.Ref(), days, s.clock(), s.newLoanID())
	if err != nil {
		return CheckoutResult{}, err
	}

	transition.Apply()
	borrower.RecordBorrowed(book)
	s.notify(ctx, borrower, transition.Event())

	to := transition.To()
	result := CheckoutResult{
		ItemKey:  book.Key(),
		ItemKind: core.KindBook,
		Title:    book.Title(),
		Borrower: to.Borrower(),
		DueDate:  to.DueDate(),
		LoanID:   to.LoanID(),
	}

	return result, s.journalEvents(ctx, transition.Event())
}

func (s *Service) checkoutSeries(
	ctx context.Context,
	series *core.Series,
	borrower *core.Borrower,
	days int,
) (CheckoutResult, error) {

	unlock := s.lockStable(ctx, func() []string { return seriesLockKeys(series) })
	defer unlock()

	plan, err := s.coordinator.PlanCheckOut(series, borrower.Ref(), days, s.clock(), s.newLoanID())
	if err != nil {
		return CheckoutResult{}, err
	}

	s.coordinator.Commit(plan)

	for _, notice := range plan.Notices() {
		s.notify(ctx, borrower, notice)
	}

	state := series.State()
	result := CheckoutResult{
		ItemKey:  series.Key(),
		ItemKind: core.KindSeries,
		Title:    series.Title(),
		Borrower: state.Borrower(),
		DueDate:  state.DueDate(),
		LoanID:   state.LoanID(),
		Members:  memberKeys(series),
	}

	return result, s.journalEvents(ctx, plan.Events()...)
}

// ReturnItem returns the item identified by itemID, resolved like in CheckoutItem.
//
// A book that was checked out as part of a series can only come back with its series.
// Returning after the due date fills DaysLate and LateFee of the receipt.
//
// A non-nil receipt comes with an error wrapping ErrJournalingFailed if the return was committed
// but could not be journaled.
func (s *Service) ReturnItem(ctx context.Context, itemID string) (ReturnReceipt, error) {
	observer, ctx := s.startOperation(ctx, OperationReturn, SpanNameReturn, map[string]string{
		SpanAttrItemID: itemID,
	})

	receipt, err := s.returnItem(ctx, itemID)
	observer.finish(err, map[string]string{SpanAttrItemKey: string(receipt.ItemKey)})

	if err != nil {
		s.rejected(ctx, OperationReturn, itemID, receipt.BorrowerID, err)
		return receipt, err
	}

	if receipt.IsLate() {
		s.recordValue(ctx, MetricLateFees, receipt.LateFee, map[string]string{LabelOperation: OperationReturn})
	}

	s.logInfo(ctx, LogMsgReturnCompleted,
		LogAttrItemKey, string(receipt.ItemKey),
		LogAttrBorrowerID, receipt.BorrowerID,
		LogAttrLoanID, receipt.LoanID,
		LogAttrDaysLate, receipt.DaysLate,
		LogAttrLateFee, receipt.LateFee,
		LogAttrDurationMS, toMilliseconds(observer.elapsed()),
	)

	return receipt, nil
}

func (s *Service) returnItem(ctx context.Context, itemID string) (ReturnReceipt, error) {
	if err := ctx.Err(); err != nil {
		return ReturnReceipt{}, err
	}

	item, err := s.resolveItem(itemID)
	if err != nil {
		return ReturnReceipt{}, err
	}

	switch it := item.(type) {
	case *core.Book:
		return s.returnBook(ctx, it)

	case *core.Series:
		return s.returnSeries(ctx, it)

	default:
		return ReturnReceipt{}, core.NotFoundError("Item not found")
	}
}

func (s *Service) returnBook(ctx context.Context, book *core.Book) (ReturnReceipt, error) {
	unlock := s.lockStable(ctx, func() []string {
		keys := []string{string(book.Key())}
		if holder := book.State().Borrower().ID; holder != "" {
			keys = append(keys, borrowerLockKey(holder))
		}

		return keys
	})
	defer unlock()

	state := book.State()
	if err := s.checkNotHeldThroughSeries(book, state); err != nil {
		return ReturnReceipt{BorrowerID: state.Borrower().ID}, err
	}

	transition, err := core.DecideReturn(book, s.clock())
	if err != nil {
		return ReturnReceipt{}, err
	}

	transition.Apply()

	if borrower, found := s.catalog.FindBorrowerByID(state.Borrower().ID); found {
		borrower.RemoveBorrowed(book.ISBN())
		s.notify(ctx, borrower, transition.Event())
	}

	return receiptFrom(transition), s.journalEvents(ctx, transition.Event())
}

func (s *Service) returnSeries(ctx context.Context, series *core.Series) (ReturnReceipt, error) {
	unlock := s.lockStable(ctx, func() []string { return seriesLockKeys(series) })
	defer unlock()

	state := series.State()
	if err := s.checkNotHeldThroughSeries(series, state); err != nil {
		return ReturnReceipt{BorrowerID: state.Borrower().ID}, err
	}

	plan, err := s.coordinator.PlanReturn(series, s.clock())
	if err != nil {
		return ReturnReceipt{}, err
	}

	holder := series.State().Borrower()
	s.coordinator.Commit(plan)

	if borrower, found := s.catalog.FindBorrowerByID(holder.ID); found {
		for _, notice := range plan.Notices() {
			s.notify(ctx, borrower, notice)
		}
	}

	transitions := plan.Transitions()

	return receiptFrom(transitions[len(transitions)-1]), s.journalEvents(ctx, plan.Events()...)
}

func receiptFrom(transition core.Transition) ReturnReceipt {
	from := transition.From()
	item := transition.Item()
	receipt := ReturnReceipt{
		ItemKey:    item.Key(),
		ItemKind:   item.Kind(),
		Title:      item.Title(),
		BorrowerID: from.Borrower().ID,
		LoanID:     from.LoanID(),
		DueDate:    from.DueDate(),
	}

	if returned, ok := transition.Event().(core.ItemReturned); ok {
		receipt.ReturnedAt = returned.OccurredAt
		receipt.DaysLate = returned.DaysLate
		receipt.LateFee = returned.LateFee
	}

	return receipt
}

// checkNotHeldThroughSeries fails if item was lent as a member of a checked out series,
// such an item can only come back with that series.
// The caller must hold the item's lock, series states only change together with their members' states.
func (s *Service) checkNotHeldThroughSeries(item core.Item, state core.LifecycleState) error {
	if state.IsAvailable() {
		return nil
	}

	for _, series := range s.catalog.AllSeries() {
		if series.Key() == item.Key() {
			continue
		}

		seriesState := series.State()
		if seriesState.IsAvailable() || seriesState.LoanID() != state.LoanID() {
			continue
		}

		if containsItem(series, item.Key()) {
			return core.PolicyViolationError(
				"%s is part of checked out series '%s'", item.Kind().Label(), series.Title())
		}
	}

	return nil
}

// CheckAllDueDates runs the due-date sweep over all checked out books and series of the catalog.
//
// An item due in exactly two days yields a reminder, an item due today or overdue yields an overdue notice.
// Notices are appended to the borrowers' notification logs, which drop duplicates,
// so running the sweep twice on the same day notifies only once.
func (s *Service) CheckAllDueDates(ctx context.Context) (SweepReport, error) {
	observer, ctx := s.startOperation(ctx, OperationSweep, SpanNameSweep, map[string]string{})

	report, err := s.checkAllDueDates(ctx)
	observer.finish(err, map[string]string{
		SpanAttrEventCount: strconv.Itoa(len(report.Notices)),
	})

	if err != nil {
		return report, err
	}

	s.logInfo(ctx, LogMsgSweepCompleted,
		LogAttrReminders, report.Reminders,
		LogAttrOverdueNotices, report.OverdueNotices,
		LogAttrDuplicates, report.DuplicatesSuppressed,
		LogAttrDurationMS, toMilliseconds(observer.elapsed()),
	)

	return report, nil
}

func (s *Service) checkAllDueDates(ctx context.Context) (SweepReport, error) {
	now := s.clock()
	report := SweepReport{Today: core.ToDay(now)}

	items := make([]core.Item, 0)
	for _, book := range s.catalog.AllBooks() {
		items = append(items, book)
	}
	for _, series := range s.catalog.AllSeries() {
		items = append(items, series)
	}

	events := make(core.DomainEvents, 0)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		notice, appended, checkedOut := s.checkDueDate(ctx, item, now)
		if checkedOut {
			report.CheckedOutItems++
		}

		if notice == nil {
			continue
		}

		if !appended {
			report.DuplicatesSuppressed++
			continue
		}

		switch notice.(type) {
		case core.DueDateReminderIssued:
			report.Reminders++
		case core.OverdueNoticeIssued:
			report.OverdueNotices++
		}

		report.Notices = append(report.Notices, notice)
		events = append(events, notice)
	}

	return report, s.journalEvents(ctx, events...)
}

func (s *Service) checkDueDate(
	ctx context.Context,
	item core.Item,
	now time.Time,
) (notice core.BorrowerNotice, appended bool, checkedOut bool) {

	unlock := s.lock(ctx, string(item.Key()))
	defer unlock()

	checkedOut = !item.IsAvailable()

	notice, due := core.DecideDueDateNotice(item, now)
	if !due {
		return nil, false, checkedOut
	}

	borrower, found := s.catalog.FindBorrowerByID(notice.NoticeFor())
	if !found {
		return nil, false, checkedOut
	}

	return notice, s.notify(ctx, borrower, notice), checkedOut
}

// resolveItem looks itemID up as an ISBN first and as a series title second.
func (s *Service) resolveItem(itemID string) (core.Item, error) {
	if book, found := s.catalog.FindBookByISBN(itemID); found {
		return book, nil
	}

	if series, found := s.catalog.FindSeriesByTitle(itemID); found {
		return series, nil
	}

	return nil, core.NotFoundError("Item not found")
}

// notify forwards notice to the borrower's notification log and reports whether it was appended.
func (s *Service) notify(ctx context.Context, borrower *core.Borrower, notice core.BorrowerNotice) bool {
	appended := borrower.Notify(notice)
	if appended {
		s.incrementCounter(ctx, MetricNotifications, map[string]string{LabelNoticeType: notice.IsEventType()})
	}

	return appended
}

func (s *Service) lock(ctx context.Context, keys ...string) func() {
	unlock := s.locks.lock(keys...)
	s.logDebug(ctx, LogMsgLocksAcquired, LogAttrLockCount, len(keys))

	return unlock
}

func (s *Service) lockStable(ctx context.Context, keysFn func() []string) func() {
	unlock := s.locks.lockStable(keysFn)
	s.logDebug(ctx, LogMsgLocksAcquired, LogAttrLockCount, len(keysFn()))

	return unlock
}

// rejected logs a request that failed a business rule and journals it as LendingRequestRejected.
// Infrastructure failures are logged where they happen and not journaled as rejections.
func (s *Service) rejected(
	ctx context.Context,
	operation string,
	itemID string,
	borrowerID core.BorrowerIDString,
	err error,
) {

	kind, isDomainErr := core.KindOf(err)
	if !isDomainErr {
		return
	}

	s.logWarn(ctx, LogMsgRequestRejected,
		LogAttrOperation, operation,
		LogAttrItemID, itemID,
		LogAttrBorrowerID, borrowerID,
		LogAttrErrorKind, string(kind),
		LogAttrError, err.Error(),
	)

	// The rejection stands on its own: a journaling failure is already logged and counted by journalEvents.
	_ = s.journalEvents(ctx, core.BuildLendingRequestRejected(operation, itemID, borrowerID, err, s.clock()))
}
