package rules

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/condeval/condeval/internal/cond/resolve"
)

func TestEvaluate_StringIgnoreCase(t *testing.T) {
	// key app.mode holds "PROD", rule compares against "prod" case-insensitively.
	rule, err := ParseString(StringAttributes{
		Name:        []string{"mode"},
		Prefix:      "app",
		HavingValue: "prod",
		IgnoreCase:  true,
	})
	if err != nil {
		t.Fatalf("ParseString unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{"app.mode": "PROD"})
	if !out.Matched {
		t.Fatalf("Matched = false, want true; reasons: %v", out.Reasons)
	}
	if len(out.Reasons) != 1 || out.Reasons[0] != "on-string-property (app.mode=prod) matched" {
		t.Errorf("reasons = %v", out.Reasons)
	}
}

func TestEvaluate_MissingKey(t *testing.T) {
	rule, err := ParseFloat64(Float64Attributes{
		Name:        []string{"ratio"},
		Prefix:      "app",
		HavingValue: 0.3,
	})
	if err != nil {
		t.Fatalf("ParseFloat64 unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{})
	if out.Matched {
		t.Fatalf("Matched = true, want false for missing key")
	}
	if len(out.Reasons) != 1 || !strings.Contains(out.Reasons[0], "did not find property 'ratio'") {
		t.Errorf("reasons = %v, want missing-property reason naming ratio", out.Reasons)
	}
}

func TestEvaluate_MatchIfMissing(t *testing.T) {
	rule, err := ParseString(StringAttributes{
		Name:           []string{"mode"},
		HavingValue:    "prod",
		MatchIfMissing: true,
	})
	if err != nil {
		t.Fatalf("ParseString unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{})
	if !out.Matched {
		t.Fatalf("Matched = false, want true when matchIfMissing covers the absent key; reasons: %v", out.Reasons)
	}
}

func TestEvaluate_Float32Tolerance(t *testing.T) {
	rule, err := ParseFloat32(Float32Attributes{
		Name:        []string{"ratio"},
		HavingValue: 0.3,
	})
	if err != nil {
		t.Fatalf("ParseFloat32 unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{"ratio": "0.300001"})
	if !out.Matched {
		t.Errorf("0.300001 vs 0.3 should match at 1e-5 tolerance; reasons: %v", out.Reasons)
	}

	out = rule.Evaluate(resolve.Static{"ratio": "0.31"})
	if out.Matched {
		t.Errorf("0.31 vs 0.3 should not match at 1e-5 tolerance")
	}
}

func TestEvaluate_ConversionFailureIsNonMatching(t *testing.T) {
	rule, err := ParseInteger(IntegerAttributes{
		Name:        []string{"workers"},
		HavingValue: 4,
	})
	if err != nil {
		t.Fatalf("ParseInteger unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{"workers": "not-a-number"})
	if out.Matched {
		t.Fatalf("Matched = true, want false for unconvertible value")
	}
	if len(out.Reasons) != 1 || !strings.Contains(out.Reasons[0], "found different value in property 'workers'") {
		t.Errorf("reasons = %v, want non-matching classification, not missing", out.Reasons)
	}
}

func TestEvaluate_MissingTakesPrecedenceOverNonMatching(t *testing.T) {
	rule, err := ParseString(StringAttributes{
		Name:        []string{"present", "absent"},
		HavingValue: "yes",
	})
	if err != nil {
		t.Fatalf("ParseString unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{"present": "no"})
	if out.Matched {
		t.Fatalf("Matched = true, want false")
	}
	// Both lists are non-empty; only the missing reason surfaces.
	if len(out.Reasons) != 1 {
		t.Fatalf("reasons = %v, want exactly one", out.Reasons)
	}
	if !strings.Contains(out.Reasons[0], "did not find property 'absent'") {
		t.Errorf("reason = %q, want the missing diagnostic", out.Reasons[0])
	}
	if strings.Contains(out.Reasons[0], "different value") {
		t.Errorf("reason = %q, non-matching detail must not surface when keys are missing", out.Reasons[0])
	}
}

func TestEvaluate_DuplicateNamesKept(t *testing.T) {
	rule, err := ParseString(StringAttributes{
		Name:        []string{"mode", "mode"},
		HavingValue: "prod",
	})
	if err != nil {
		t.Fatalf("ParseString unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{"mode": "dev"})
	if out.Matched {
		t.Fatalf("Matched = true, want false")
	}
	if len(out.Reasons) != 1 || !strings.Contains(out.Reasons[0], "'mode', 'mode'") {
		t.Errorf("reasons = %v, want duplicate entries preserved", out.Reasons)
	}
}

func TestEvaluate_Enum(t *testing.T) {
	rule, err := ParseEnum(EnumAttributes{
		Name:        []string{"level"},
		HavingValue: "high",
		Symbols:     []string{"LOW", "MEDIUM", "HIGH"},
	})
	if err != nil {
		t.Fatalf("ParseEnum unexpected error: %v", err)
	}

	if out := rule.Evaluate(resolve.Static{"level": "High"}); !out.Matched {
		t.Errorf("High should convert to HIGH and match; reasons: %v", out.Reasons)
	}
	if out := rule.Evaluate(resolve.Static{"level": "low"}); out.Matched {
		t.Errorf("low must not match candidate high")
	}
	// A value outside the symbol set is an evaluation fact, not an error.
	if out := rule.Evaluate(resolve.Static{"level": "extreme"}); out.Matched {
		t.Errorf("unknown symbol must read as non-matching")
	}
}

func TestEvaluate_OSToken(t *testing.T) {
	rule, err := ParseOS(OSAttributes{Value: []string{"win"}})
	if err != nil {
		t.Fatalf("ParseOS unexpected error: %v", err)
	}

	out := rule.Evaluate(resolve.Static{OSNameKey: "Windows 11"})
	if !out.Matched {
		t.Fatalf("token win should match Windows 11; reasons: %v", out.Reasons)
	}
	if len(out.Reasons) != 1 || out.Reasons[0] != "on-os found OS 'windows 11'" {
		t.Errorf("reasons = %v", out.Reasons)
	}

	out = rule.Evaluate(resolve.Static{OSNameKey: "Darwin"})
	if out.Matched {
		t.Fatalf("token win must not match Darwin")
	}
	if !strings.Contains(out.Reasons[0], "did not match any of [win]") {
		t.Errorf("reasons = %v", out.Reasons)
	}
}

func TestEvaluate_OSFallsBackToRuntime(t *testing.T) {
	rule, err := ParseOS(OSAttributes{Value: []string{"windows", "linux", "darwin"}})
	if err != nil {
		t.Fatalf("ParseOS unexpected error: %v", err)
	}
	// With no os.name property the host OS identifier is used; every test
	// host is one of the configured tokens.
	if out := rule.Evaluate(resolve.Static{}); !out.Matched {
		t.Errorf("runtime fallback should match the host OS; reasons: %v", out.Reasons)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	rule, err := ParseString(StringAttributes{
		Name:        []string{"a", "b"},
		HavingValue: "x",
	})
	if err != nil {
		t.Fatalf("ParseString unexpected error: %v", err)
	}
	res := resolve.Static{"a": "x"}

	first := rule.Evaluate(res)
	second := rule.Evaluate(res)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs: %v vs %v", first, second)
	}
}

func TestEvaluate_NegationLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("not=true inverts the comparison for present keys", prop.ForAll(
		func(resolved, candidate int64, modeIdx int) bool {
			mode := []string{"equals", "greater_than", "less_than", "greater_than_or_equal", "less_than_or_equal"}[modeIdx]
			res := resolve.Static{"n": resolved}

			plain, err := ParseInteger(IntegerAttributes{Name: []string{"n"}, HavingValue: candidate, MatchType: mode})
			if err != nil {
				return false
			}
			negated, err := ParseInteger(IntegerAttributes{Name: []string{"n"}, HavingValue: candidate, MatchType: mode, Not: true})
			if err != nil {
				return false
			}
			return plain.Evaluate(res).Matched != negated.Evaluate(res).Matched
		},
		gen.Int64(),
		gen.Int64(),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}

func TestEvaluate_NaNLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a NaN operand never matches under any mode", prop.ForAll(
		func(candidate float64, modeIdx int, not bool) bool {
			mode := []string{"equals", "greater_than", "less_than", "greater_than_or_equal", "less_than_or_equal"}[modeIdx]
			rule, err := ParseFloat64(Float64Attributes{Name: []string{"x"}, HavingValue: candidate, MatchType: mode, Not: not})
			if err != nil {
				return false
			}
			return !rule.Evaluate(resolve.Static{"x": math.NaN()}).Matched
		},
		gen.Float64(),
		gen.IntRange(0, 4),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestEvaluate_NaNUnderNegation(t *testing.T) {
	// A not-a-number operand short-circuits to non-matching before the
	// rule's negation applies, so not:true cannot turn it into a match.
	f64, err := ParseFloat64(Float64Attributes{Name: []string{"x"}, HavingValue: 0.3, Not: true})
	if err != nil {
		t.Fatalf("ParseFloat64 unexpected error: %v", err)
	}
	out := f64.Evaluate(resolve.Static{"x": "NaN"})
	if out.Matched {
		t.Fatalf("Matched = true, want false for a negated rule with a NaN operand")
	}

	f32, err := ParseFloat32(Float32Attributes{Name: []string{"x"}, HavingValue: 0.3, Not: true})
	if err != nil {
		t.Fatalf("ParseFloat32 unexpected error: %v", err)
	}
	if f32.Evaluate(resolve.Static{"x": "NaN"}).Matched {
		t.Fatalf("Matched = true, want false for a negated 32-bit rule with a NaN operand")
	}
}

func TestEvaluate_ToleranceLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("equals matches exactly when |diff| < 1e-9", prop.ForAll(
		func(base, diff float64) bool {
			rule, err := ParseFloat64(Float64Attributes{Name: []string{"x"}, HavingValue: base})
			if err != nil {
				return false
			}
			resolved := base + diff
			want := math.Abs(resolved-base) < 1e-9
			return rule.Evaluate(resolve.Static{"x": resolved}).Matched == want
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1e-8, 1e-8),
	))

	properties.TestingRun(t)
}
