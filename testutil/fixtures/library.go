package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-library-go/catalog"
	"github.com/AntonStoeckl/lending-library-go/internal/sampledata"
	"github.com/AntonStoeckl/lending-library-go/lending"
)

// Library bundles a Service with the collaborators tests want to look at.
type Library struct {
	Catalog  *catalog.Catalog
	Clock    *Clock
	Service  *lending.Service
	Registry *lending.Registry
}

// GivenLibrary creates a Service on an empty catalog with a Clock at Today and sequential loan IDs.
// Further options are applied after the defaults.
func GivenLibrary(t testing.TB, options ...lending.Option) *Library {
	t.Helper()

	clock := NewClock(Today)
	c := catalog.New()

	allOptions := append([]lending.Option{
		lending.WithClock(clock.Now),
		lending.WithLoanIDGenerator(SequentialLoanIDs()),
	}, options...)

	service, err := lending.NewService(c, allOptions...)
	require.NoError(t, err, "error in arranging test data")

	return &Library{
		Catalog:  c,
		Clock:    clock,
		Service:  service,
		Registry: service.Registry(),
	}
}

// GivenSeededLibrary is GivenLibrary plus the sample data, see package sampledata.
func GivenSeededLibrary(t testing.TB, options ...lending.Option) *Library {
	t.Helper()

	library := GivenLibrary(t, options...)
	require.NoError(t, sampledata.Seed(context.Background(), library.Registry), "error in arranging test data")

	return library
}
