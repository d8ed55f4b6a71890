// Package journal provides the engine-agnostic API of the lending journal,
// an append-only audit trail of the domain events the lending service commits.
//
// The journal is never read back to restore catalog state. It answers history
// questions like "what happened to this item" or "what did this borrower borrow".
//
// Key types:
//   - StorableEvent: a scalar DTO carrying event type, occurred at, JSON payload and JSON metadata
//   - Filter: criteria for querying events, built with BuildEventFilter
//   - Journal: the port implemented by memoryengine, postgresengine and sqliteengine
//
// Common usage pattern:
//
//	filter := journal.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.ItemCheckedOutEventType,
//			core.ItemReturnedEventType).
//		AndAnyPredicateOf(journal.P("ItemKey", "book:123-1234567890")).
//		Finalize()
//
//	events, maxSeq, err := j.Query(ctx, filter)
package journal
