package rules

import (
	"fmt"
	"math"

	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

const (
	kindInteger = "on-integer-property"
	kindFloat32 = "on-float32-property"
	kindFloat64 = "on-float64-property"
)

// IntegerAttributes carries the raw attributes of one integer property rule.
type IntegerAttributes struct {
	Value          []string `koanf:"value" validate:"required_without=Name,excluded_with=Name"`
	Name           []string `koanf:"name"`
	Prefix         string   `koanf:"prefix"`
	HavingValue    int64    `koanf:"having_value"`
	MatchIfMissing bool     `koanf:"match_if_missing"`
	Not            bool     `koanf:"not"`
	MatchType      string   `koanf:"match_type" validate:"omitempty,oneof=equals greater_than less_than greater_than_or_equal less_than_or_equal"`
}

// Float32Attributes carries the raw attributes of one 32-bit floating-point
// property rule.
type Float32Attributes struct {
	Value          []string `koanf:"value" validate:"required_without=Name,excluded_with=Name"`
	Name           []string `koanf:"name"`
	Prefix         string   `koanf:"prefix"`
	HavingValue    float32  `koanf:"having_value"`
	MatchIfMissing bool     `koanf:"match_if_missing"`
	Not            bool     `koanf:"not"`
	MatchType      string   `koanf:"match_type" validate:"omitempty,oneof=equals greater_than less_than greater_than_or_equal less_than_or_equal"`
}

// Float64Attributes carries the raw attributes of one 64-bit floating-point
// property rule.
type Float64Attributes struct {
	Value          []string `koanf:"value" validate:"required_without=Name,excluded_with=Name"`
	Name           []string `koanf:"name"`
	Prefix         string   `koanf:"prefix"`
	HavingValue    float64  `koanf:"having_value"`
	MatchIfMissing bool     `koanf:"match_if_missing"`
	Not            bool     `koanf:"not"`
	MatchType      string   `koanf:"match_type" validate:"omitempty,oneof=equals greater_than less_than greater_than_or_equal less_than_or_equal"`
}

// IntegerRule is a parsed integer property rule.
type IntegerRule struct {
	spec spec[int64]
	mode domain.OrderedMatchMode
	not  bool
}

// ParseInteger validates the raw attributes and builds an IntegerRule.
func ParseInteger(attrs IntegerAttributes) (*IntegerRule, error) {
	base, err := newSpec(kindInteger, attrs.Value, attrs.Name, attrs.Prefix, attrs.MatchIfMissing, attrs.HavingValue)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseOrderedMatchMode(attrs.MatchType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, err)
	}
	return &IntegerRule{spec: base, mode: mode, not: attrs.Not}, nil
}

// Evaluate resolves each configured name and compares it with
// signed-integer ordering.
func (r *IntegerRule) Evaluate(res resolve.Resolver) domain.Outcome {
	return evaluate(r.spec, res, resolve.AsInt64, func(resolved, candidate int64) bool {
		return compareInt64(r.mode, resolved, candidate)
	}, r.not)
}

// Float32Rule is a parsed 32-bit floating-point property rule.
type Float32Rule struct {
	spec spec[float32]
	mode domain.OrderedMatchMode
	not  bool
}

// ParseFloat32 validates the raw attributes and builds a Float32Rule.
func ParseFloat32(attrs Float32Attributes) (*Float32Rule, error) {
	base, err := newSpec(kindFloat32, attrs.Value, attrs.Name, attrs.Prefix, attrs.MatchIfMissing, attrs.HavingValue)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseOrderedMatchMode(attrs.MatchType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, err)
	}
	return &Float32Rule{spec: base, mode: mode, not: attrs.Not}, nil
}

// Evaluate resolves each configured name and compares it in float32
// arithmetic with the 32-bit equality tolerance. A NaN operand is
// unconditionally non-matching, even under negation.
func (r *Float32Rule) Evaluate(res resolve.Resolver) domain.Outcome {
	return evaluate(r.spec, res, resolve.AsFloat32, func(resolved, candidate float32) bool {
		if math.IsNaN(float64(resolved)) || math.IsNaN(float64(candidate)) {
			return false
		}
		return compareFloat(r.mode, float32Epsilon, resolved, candidate) != r.not
	}, false)
}

// Float64Rule is a parsed 64-bit floating-point property rule.
type Float64Rule struct {
	spec spec[float64]
	mode domain.OrderedMatchMode
	not  bool
}

// ParseFloat64 validates the raw attributes and builds a Float64Rule.
func ParseFloat64(attrs Float64Attributes) (*Float64Rule, error) {
	base, err := newSpec(kindFloat64, attrs.Value, attrs.Name, attrs.Prefix, attrs.MatchIfMissing, attrs.HavingValue)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseOrderedMatchMode(attrs.MatchType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, err)
	}
	return &Float64Rule{spec: base, mode: mode, not: attrs.Not}, nil
}

// Evaluate resolves each configured name and compares it with the 64-bit
// equality tolerance. A NaN operand is unconditionally non-matching, even
// under negation.
func (r *Float64Rule) Evaluate(res resolve.Resolver) domain.Outcome {
	return evaluate(r.spec, res, resolve.AsFloat64, func(resolved, candidate float64) bool {
		if math.IsNaN(resolved) || math.IsNaN(candidate) {
			return false
		}
		return compareFloat(r.mode, float64Epsilon, resolved, candidate) != r.not
	}, false)
}
