// Package core contains the lending domain of a small library:
// lendable items (books and series), their lifecycle state, borrowers and domain events.
//
// The package is the functional core. Transition functions like DecideCheckOut and DecideReturn
// are pure with respect to the items they inspect: they read the current LifecycleState,
// apply the business rules and return a Transition holding the next state plus the domain event
// that describes it. Nothing is mutated until the shell applies the Transition.
//
// Business rules:
//   - an item is either Available or CheckedOut, a CheckedOut state carries borrower and due date
//   - a checkout must not exceed the item's maximum loan period, which depends on type and format
//   - only CheckedOut items can be returned, returning late yields a late fee
//   - a due date sweep issues a reminder two days ahead and an overdue notice from the due date on
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
