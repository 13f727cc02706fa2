package rules

import (
	"fmt"
	"strings"

	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

const kindEnum = "on-enum-property"

// EnumAttributes carries the raw attributes of one enumerated-value property
// rule. Symbols is the finite symbol set both the resolved value and the
// candidate must convert into.
type EnumAttributes struct {
	Value          []string `koanf:"value" validate:"required_without=Name,excluded_with=Name"`
	Name           []string `koanf:"name"`
	Prefix         string   `koanf:"prefix"`
	HavingValue    string   `koanf:"having_value"`
	MatchIfMissing bool     `koanf:"match_if_missing"`
	Symbols        []string `koanf:"symbols" validate:"required,min=1"`
}

// EnumRule is a parsed enumerated-value property rule.
type EnumRule struct {
	spec    spec[string]
	symbols map[string]struct{}
}

// ParseEnum validates the raw attributes and builds an EnumRule. An empty
// symbol set is an authoring error: no value could ever convert.
func ParseEnum(attrs EnumAttributes) (*EnumRule, error) {
	base, err := newSpec(kindEnum, attrs.Value, attrs.Name, attrs.Prefix, attrs.MatchIfMissing, attrs.HavingValue)
	if err != nil {
		return nil, err
	}
	if len(attrs.Symbols) == 0 {
		return nil, fmt.Errorf("%w: the symbols attribute of %s must not be empty", ErrInvalidRule, kindEnum)
	}

	symbols := make(map[string]struct{}, len(attrs.Symbols))
	for _, s := range attrs.Symbols {
		symbols[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}

	return &EnumRule{spec: base, symbols: symbols}, nil
}

// Evaluate resolves each configured name, upper-cases both operands, and
// compares them by symbol identity. Either operand failing symbol lookup is
// an evaluation fact and reads as non-matching, never as an error.
func (r *EnumRule) Evaluate(res resolve.Resolver) domain.Outcome {
	return evaluate(r.spec, res, resolve.AsString, func(resolved, candidate string) bool {
		rs := strings.ToUpper(resolved)
		cs := strings.ToUpper(candidate)
		if _, ok := r.symbols[rs]; !ok {
			return false
		}
		if _, ok := r.symbols[cs]; !ok {
			return false
		}
		return rs == cs
	}, false)
}
