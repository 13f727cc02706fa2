package rules

import (
	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

// Instance is one parsed rule ready for evaluation. Evaluation is a pure
// function of the rule and the resolver snapshot: no state is retained
// across calls, and concurrent evaluation is safe whenever the resolver is
// safe for concurrent reads.
type Instance interface {
	Evaluate(res resolve.Resolver) domain.Outcome
}

// evaluate walks the spec's configured names in order and classifies each as
// matching, non-matching, or missing.
//
// A present key whose value cannot be coerced counts as non-matching, not
// missing. A present key matches when the comparator result XOR negate is
// true. An absent key counts as missing unless matchIfMissing is set.
// Missing names win diagnostic precedence over non-matching ones when both
// lists are non-empty. Duplicate names classify independently and may
// produce duplicate entries.
func evaluate[V any](s spec[V], res resolve.Resolver, coerce func(any) (V, error), match func(resolved, candidate V) bool, negate bool) domain.Outcome {
	var missing, nonMatching []string

	for _, name := range s.names {
		key := s.prefix + name
		if res.ContainsKey(key) {
			raw, _ := res.Lookup(key)
			v, err := coerce(raw)
			if err != nil {
				nonMatching = append(nonMatching, name)
				continue
			}
			// match XOR negate is false exactly when match == negate.
			if match(v, s.candidate) == negate {
				nonMatching = append(nonMatching, name)
			}
		} else if !s.matchIfMissing {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return domain.NoMatch(s.didNotFind(missing))
	}
	if len(nonMatching) > 0 {
		return domain.NoMatch(s.foundDifferent(nonMatching))
	}
	return domain.Match(s.matched())
}
