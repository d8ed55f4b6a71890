// Package fixtures provides deterministic collaborators for lending tests:
// a settable clock, sequential loan IDs, and a service wired to a seeded in-memory catalog.
package fixtures
