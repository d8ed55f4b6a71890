package fixtures

import (
	"fmt"
	"sync/atomic"

	"github.com/AntonStoeckl/lending-library-go/core"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// SequentialLoanIDs returns a generator producing "loan-0001", "loan-0002", ...
func SequentialLoanIDs() lending.LoanIDGenerator {
	var counter atomic.Uint64

	return func() core.LoanIDString {
		return fmt.Sprintf("loan-%04d", counter.Add(1))
	}
}
