package lending

import (
	"errors"
)

var (
	// ErrNilCatalog is returned by NewService when no catalog is supplied.
	ErrNilCatalog = errors.New("catalog must not be nil")

	// ErrInvalidLoanPolicy is returned by WithLoanPolicy for limits below 1.
	ErrInvalidLoanPolicy = errors.New("invalid loan policy")

	// ErrNilOption is returned when an option receives a nil dependency.
	ErrNilOption = errors.New("option must not receive nil")

	// ErrJournalingFailed wraps journal failures. The domain transition was committed nevertheless.
	ErrJournalingFailed = errors.New("journaling failed")

	// ErrNoJournalConfigured is returned by history queries of a Service without journal.
	ErrNoJournalConfigured = errors.New("no journal configured")

	// ErrMappingEventFailed is returned when a journaled event can't be turned into a domain event.
	ErrMappingEventFailed = errors.New("mapping storable event to domain event failed")
)
