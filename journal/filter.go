package journal

import (
	"cmp"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

// Filter selects journal events. An empty Filter matches every event.
//
// The items of a Filter are combined with OR. Inside one item the event types are combined with OR,
// and the result is combined with the item's predicates using AND.
type Filter struct {
	items []FilterItem
}

// Items returns the filter items.
func (f Filter) Items() []FilterItem {
	return f.items
}

// IsEmpty reports whether the filter matches every event.
func (f Filter) IsEmpty() bool {
	for _, item := range f.items {
		if !item.isEmpty() {
			return false
		}
	}

	return true
}

// Matches evaluates the filter against a single event in memory.
// Predicates match top level string properties of the JSON payload.
func (f Filter) Matches(event StorableEvent) (bool, error) {
	if f.IsEmpty() {
		return true, nil
	}

	var payload map[string]any

	for _, item := range f.items {
		if item.isEmpty() {
			continue
		}

		if len(item.eventTypes) > 0 && !slices.Contains(item.eventTypes, event.EventType) {
			continue
		}

		if len(item.predicates) == 0 {
			return true, nil
		}

		if payload == nil {
			if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
				return false, err
			}
		}

		if item.matchesPayload(payload) {
			return true, nil
		}
	}

	return false, nil
}

// FilterItem is one OR branch of a Filter.
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) isEmpty() bool {
	return len(fi.eventTypes) == 0 && len(fi.predicates) == 0
}

func (fi FilterItem) matchesPayload(payload map[string]any) bool {
	matches := func(p FilterPredicate) bool {
		val, ok := payload[p.key].(string)
		return ok && val == p.val
	}

	if fi.allPredicatesMustMatch {
		for _, p := range fi.predicates {
			if !matches(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(fi.predicates, matches)
}

// FilterPredicate matches a top level string property of the event payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

// FilterBuilder builds a Filter. The staged interfaces only allow these combinations per item:
//
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - (eventType OR eventType...) AND (predicate OR predicate...)
//   - (eventType OR eventType...) AND (predicate AND predicate...)
//
// Several items are combined with OrMatching.
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent returns the empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching closes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize closes the current FilterItem and returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter starts building a Filter.
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// AnyEventTypeOf adds event types to the current item, dropping empty and duplicate ones.
func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.current.eventTypes = sanitizeEventTypes(append(slices.Clone(fb.current.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...))

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

// AnyPredicateOf adds predicates to the current item, any of them must match.
// Partial predicates (empty key or value) and duplicates are dropped.
func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.current.predicates = sanitizePredicates(append(slices.Clone(fb.current.predicates), append([]FilterPredicate{predicate}, predicates...)...))

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AnyPredicateOf(predicate, predicates...)
}

// AllPredicatesOf adds predicates to the current item, all of them must match.
func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.current.allPredicatesMustMatch = true

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return Filter{items: append(slices.Clone(fb.filter.items), fb.current)}
}

func sanitizeEventTypes(eventTypes []FilterEventTypeString) []FilterEventTypeString {
	eventTypes = slices.DeleteFunc(eventTypes, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(eventTypes)

	return slices.Clip(slices.Compact(eventTypes))
}

func sanitizePredicates(predicates []FilterPredicate) []FilterPredicate {
	predicates = slices.DeleteFunc(predicates, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(predicates, func(a, b FilterPredicate) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
	})

	return slices.Clip(slices.Compact(predicates))
}
