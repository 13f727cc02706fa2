package domain

import (
	"fmt"
	"strings"
)

// StringMatchMode defines how a resolved string property is compared against
// the candidate value of a string rule.
type StringMatchMode uint8

const (
	// StringEquals matches on exact equality after normalization.
	StringEquals StringMatchMode = iota
	// StringContains matches when the property contains the candidate.
	StringContains
	// StringStartsWith matches when the property starts with the candidate.
	StringStartsWith
	// StringEndsWith matches when the property ends with the candidate.
	StringEndsWith
	// StringMatches treats the candidate as a regular expression that must
	// match the whole property value.
	StringMatches
)

// String returns a stable string representation of the mode.
func (m StringMatchMode) String() string {
	switch m {
	case StringEquals:
		return "equals"
	case StringContains:
		return "contains"
	case StringStartsWith:
		return "starts_with"
	case StringEndsWith:
		return "ends_with"
	case StringMatches:
		return "matches"
	default:
		return fmt.Sprintf("StringMatchMode(%d)", m)
	}
}

// ParseStringMatchMode converts a string into a StringMatchMode.
// Accepts: "equals", "contains", "starts_with", "ends_with", "matches"
// (case-insensitive). The empty string parses to StringEquals.
func ParseStringMatchMode(s string) (StringMatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equals":
		return StringEquals, nil
	case "contains":
		return StringContains, nil
	case "starts_with":
		return StringStartsWith, nil
	case "ends_with":
		return StringEndsWith, nil
	case "matches":
		return StringMatches, nil
	default:
		return 0, fmt.Errorf("unsupported StringMatchMode: %q", s)
	}
}

// OrderedMatchMode defines how a resolved numeric property is compared
// against the candidate value of an integer or floating-point rule.
type OrderedMatchMode uint8

const (
	// OrderedEquals matches on equality. Floating-point rules apply their
	// type's absolute tolerance.
	OrderedEquals OrderedMatchMode = iota
	// OrderedGreaterThan matches when the property is strictly greater.
	OrderedGreaterThan
	// OrderedLessThan matches when the property is strictly smaller.
	OrderedLessThan
	// OrderedGreaterThanOrEqual matches when the property is greater or equal.
	OrderedGreaterThanOrEqual
	// OrderedLessThanOrEqual matches when the property is smaller or equal.
	OrderedLessThanOrEqual
)

// String returns a stable string representation of the mode.
func (m OrderedMatchMode) String() string {
	switch m {
	case OrderedEquals:
		return "equals"
	case OrderedGreaterThan:
		return "greater_than"
	case OrderedLessThan:
		return "less_than"
	case OrderedGreaterThanOrEqual:
		return "greater_than_or_equal"
	case OrderedLessThanOrEqual:
		return "less_than_or_equal"
	default:
		return fmt.Sprintf("OrderedMatchMode(%d)", m)
	}
}

// ParseOrderedMatchMode converts a string into an OrderedMatchMode.
// Accepts the String() forms (case-insensitive). The empty string parses to
// OrderedEquals.
func ParseOrderedMatchMode(s string) (OrderedMatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equals":
		return OrderedEquals, nil
	case "greater_than":
		return OrderedGreaterThan, nil
	case "less_than":
		return OrderedLessThan, nil
	case "greater_than_or_equal":
		return OrderedGreaterThanOrEqual, nil
	case "less_than_or_equal":
		return OrderedLessThanOrEqual, nil
	default:
		return 0, fmt.Errorf("unsupported OrderedMatchMode: %q", s)
	}
}
