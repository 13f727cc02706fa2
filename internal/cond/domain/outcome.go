// Package domain defines the value types shared across the condition engine:
// evaluation outcomes and the match-mode enumerations used by rule specs.
package domain

// Outcome is the result of evaluating one rule instance or an aggregate of
// rule instances. Reasons preserves encounter order of the contributing
// instances so diagnostics are reproducible across runs.
type Outcome struct {
	Matched bool
	Reasons []string
}

// Match constructs a matched Outcome carrying the given reasons.
func Match(reasons ...string) Outcome {
	return Outcome{Matched: true, Reasons: reasons}
}

// NoMatch constructs a non-matched Outcome carrying the given reasons.
func NoMatch(reasons ...string) Outcome {
	return Outcome{Matched: false, Reasons: reasons}
}
