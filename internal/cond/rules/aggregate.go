package rules

import (
	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

const noAttributesReason = "no attributes found"

// Merged builds the evaluation sequence for one condition set: the direct
// instance first when present, then the container instances in declared
// order.
func Merged(direct Instance, container ...Instance) []Instance {
	out := make([]Instance, 0, len(container)+1)
	if direct != nil {
		out = append(out, direct)
	}
	return append(out, container...)
}

// Aggregate evaluates every instance in encounter order and combines the
// outcomes with AND semantics. An empty sequence is a no-match: the absence
// of any rule is never vacuously true. A nil entry is itself a no-match
// without evaluation.
//
// Matching and non-matching reasons collect in separate buffers; the result
// surfaces only the non-matching buffer when any instance failed, otherwise
// only the matching buffer. Each instance evaluates independently, so one
// instance's failure never suppresses evaluation of its siblings.
func Aggregate(res resolve.Resolver, instances []Instance) domain.Outcome {
	if len(instances) == 0 {
		return domain.NoMatch(noAttributesReason)
	}

	// The verdict tracks outcomes, not collected text: an instance may
	// report no-match without reasons and must still fail the aggregate.
	matched := true
	var match, noMatch []string
	for _, inst := range instances {
		out := domain.NoMatch(noAttributesReason)
		if inst != nil {
			out = inst.Evaluate(res)
		}
		if out.Matched {
			match = append(match, out.Reasons...)
		} else {
			matched = false
			noMatch = append(noMatch, out.Reasons...)
		}
	}

	if !matched {
		return domain.NoMatch(noMatch...)
	}
	return domain.Match(match...)
}
