package lending

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/AntonStoeckl/lending-library-go/core"
)

// NewULIDLoanIDGenerator returns a LoanIDGenerator producing lexicographically sortable ULIDs.
// IDs generated within the same millisecond stay ordered thanks to the monotonic entropy source.
func NewULIDLoanIDGenerator(clock Clock) LoanIDGenerator {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)

	return func() core.LoanIDString {
		mu.Lock()
		defer mu.Unlock()

		return ulid.MustNew(ulid.Timestamp(clockOrNow(clock)), entropy).String()
	}
}

func clockOrNow(clock Clock) time.Time {
	if clock == nil {
		return time.Now()
	}

	return clock()
}
