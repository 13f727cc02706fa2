package rules

import (
	"math"
	"regexp"
	"strings"

	"github.com/condeval/condeval/internal/cond/domain"
)

// Absolute tolerances applied by OrderedEquals comparisons. The two
// precisions carry independent constants on purpose; they are not derived
// from one another.
const (
	float32Epsilon float32 = 1e-5
	float64Epsilon float64 = 1e-9
)

// compareString applies a string match mode after normalization. Case
// folding happens before trimming, on both operands. For StringMatches the
// caller supplies the pattern precompiled from the normalized candidate.
func compareString(mode domain.StringMatchMode, pattern *regexp.Regexp, ignoreCase, trim bool, resolved, candidate string) bool {
	if ignoreCase {
		resolved = strings.ToLower(resolved)
		candidate = strings.ToLower(candidate)
	}
	if trim {
		resolved = strings.TrimSpace(resolved)
		candidate = strings.TrimSpace(candidate)
	}
	switch mode {
	case domain.StringEquals:
		return resolved == candidate
	case domain.StringContains:
		return strings.Contains(resolved, candidate)
	case domain.StringStartsWith:
		return strings.HasPrefix(resolved, candidate)
	case domain.StringEndsWith:
		return strings.HasSuffix(resolved, candidate)
	case domain.StringMatches:
		return pattern.MatchString(resolved)
	default:
		return false
	}
}

// compareInt64 applies an ordered match mode with signed-integer ordering.
func compareInt64(mode domain.OrderedMatchMode, resolved, candidate int64) bool {
	switch mode {
	case domain.OrderedEquals:
		return resolved == candidate
	case domain.OrderedGreaterThan:
		return resolved > candidate
	case domain.OrderedLessThan:
		return resolved < candidate
	case domain.OrderedGreaterThanOrEqual:
		return resolved >= candidate
	case domain.OrderedLessThanOrEqual:
		return resolved <= candidate
	default:
		return false
	}
}

type floating interface {
	~float32 | ~float64
}

// compareFloat applies an ordered match mode to floating-point operands.
// Equality uses the absolute tolerance eps. A NaN on either side is false
// for every mode.
func compareFloat[F floating](mode domain.OrderedMatchMode, eps, resolved, candidate F) bool {
	if math.IsNaN(float64(resolved)) || math.IsNaN(float64(candidate)) {
		return false
	}
	switch mode {
	case domain.OrderedEquals:
		diff := resolved - candidate
		if diff < 0 {
			diff = -diff
		}
		return diff < eps
	case domain.OrderedGreaterThan:
		return resolved > candidate
	case domain.OrderedLessThan:
		return resolved < candidate
	case domain.OrderedGreaterThanOrEqual:
		return resolved >= candidate
	case domain.OrderedLessThanOrEqual:
		return resolved <= candidate
	default:
		return false
	}
}
