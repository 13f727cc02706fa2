// Package rules implements the condition engine: parsing raw rule attributes
// into typed rule instances, comparing resolved property values against
// candidates, and aggregating many instances into a single outcome with a
// full diagnostic trail.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule reports a configuration-authoring mistake: a rule that can
// never be evaluated as written. Parse errors wrap it so callers can
// distinguish authoring bugs from runtime evaluation facts.
var ErrInvalidRule = errors.New("invalid rule")

// spec holds the attributes every property rule kind shares: which keys to
// resolve, the candidate to compare against, and the missing-key policy.
// A spec is immutable once built.
type spec[V any] struct {
	kind           string
	prefix         string
	names          []string
	candidate      V
	matchIfMissing bool
}

// newSpec validates the shared attributes and normalizes the prefix.
// Exactly one of value and name must supply the property names.
func newSpec[V any](kind string, value, name []string, prefix string, matchIfMissing bool, candidate V) (spec[V], error) {
	if len(value) == 0 && len(name) == 0 {
		return spec[V]{}, fmt.Errorf("%w: the name or value attribute of %s must be specified", ErrInvalidRule, kind)
	}
	if len(value) > 0 && len(name) > 0 {
		return spec[V]{}, fmt.Errorf("%w: the name and value attributes of %s are exclusive", ErrInvalidRule, kind)
	}

	src := value
	if len(src) == 0 {
		src = name
	}
	names := make([]string, len(src))
	copy(names, src)

	prefix = strings.TrimSpace(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}

	return spec[V]{
		kind:           kind,
		prefix:         prefix,
		names:          names,
		candidate:      candidate,
		matchIfMissing: matchIfMissing,
	}, nil
}

// String renders the spec for diagnostics, e.g. "(app.mode=prod)" or
// "(app.[mode,region]=prod)".
func (s spec[V]) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(s.prefix)
	if len(s.names) == 1 {
		b.WriteString(s.names[0])
	} else {
		b.WriteString("[")
		b.WriteString(strings.Join(s.names, ","))
		b.WriteString("]")
	}
	fmt.Fprintf(&b, "=%v)", s.candidate)
	return b.String()
}

// didNotFind composes the missing-property reason for the given names.
func (s spec[V]) didNotFind(names []string) string {
	noun := "property"
	if len(names) > 1 {
		noun = "properties"
	}
	return fmt.Sprintf("%s %s did not find %s %s", s.kind, s, noun, quoteList(names))
}

// foundDifferent composes the non-matching reason for the given names.
func (s spec[V]) foundDifferent(names []string) string {
	noun := "property"
	if len(names) > 1 {
		noun = "properties"
	}
	return fmt.Sprintf("%s %s found different value in %s %s", s.kind, s, noun, quoteList(names))
}

// matched composes the reason reported when every name satisfied the rule.
func (s spec[V]) matched() string {
	return fmt.Sprintf("%s %s matched", s.kind, s)
}

// quoteList renders names as 'a', 'b', 'c'.
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
