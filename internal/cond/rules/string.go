package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

const kindString = "on-string-property"

// StringAttributes carries the raw attributes of one string property rule
// as authored in a rule document.
type StringAttributes struct {
	Value          []string `koanf:"value" validate:"required_without=Name,excluded_with=Name"`
	Name           []string `koanf:"name"`
	Prefix         string   `koanf:"prefix"`
	HavingValue    string   `koanf:"having_value"`
	MatchIfMissing bool     `koanf:"match_if_missing"`
	IgnoreCase     bool     `koanf:"ignore_case"`
	Trim           bool     `koanf:"trim"`
	Not            bool     `koanf:"not"`
	MatchType      string   `koanf:"match_type" validate:"omitempty,oneof=equals contains starts_with ends_with matches"`
}

// StringRule is a parsed string property rule.
type StringRule struct {
	spec       spec[string]
	mode       domain.StringMatchMode
	pattern    *regexp.Regexp
	ignoreCase bool
	trim       bool
	not        bool
}

// ParseString validates the raw attributes and builds an immutable
// StringRule. For the matches mode the candidate is compiled as a full-match
// regular expression here; an invalid pattern is an authoring error, never a
// silent no-match.
func ParseString(attrs StringAttributes) (*StringRule, error) {
	base, err := newSpec(kindString, attrs.Value, attrs.Name, attrs.Prefix, attrs.MatchIfMissing, attrs.HavingValue)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseStringMatchMode(attrs.MatchType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, err)
	}

	var pattern *regexp.Regexp
	if mode == domain.StringMatches {
		// The pattern goes through the same normalization as the resolved
		// value so a lower-cased input still sees a lower-cased pattern.
		candidate := attrs.HavingValue
		if attrs.IgnoreCase {
			candidate = strings.ToLower(candidate)
		}
		if attrs.Trim {
			candidate = strings.TrimSpace(candidate)
		}
		pattern, err = regexp.Compile("^(?:" + candidate + ")$")
		if err != nil {
			return nil, fmt.Errorf("%w: invalid match pattern %q: %s", ErrInvalidRule, attrs.HavingValue, err)
		}
	}

	return &StringRule{
		spec:       base,
		mode:       mode,
		pattern:    pattern,
		ignoreCase: attrs.IgnoreCase,
		trim:       attrs.Trim,
		not:        attrs.Not,
	}, nil
}

// Evaluate resolves each configured name and compares it under the rule's
// match mode and normalization flags.
func (r *StringRule) Evaluate(res resolve.Resolver) domain.Outcome {
	return evaluate(r.spec, res, resolve.AsString, func(resolved, candidate string) bool {
		return compareString(r.mode, r.pattern, r.ignoreCase, r.trim, resolved, candidate)
	}, r.not)
}
