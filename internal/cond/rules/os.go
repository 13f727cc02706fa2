package rules

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/condeval/condeval/internal/cond/domain"
	"github.com/condeval/condeval/internal/cond/resolve"
)

const kindOS = "on-os"

// OSNameKey is the property key consulted for the operating system
// identifier. When the resolver does not carry it, runtime.GOOS is used.
const OSNameKey = "os.name"

// OSAttributes carries the raw attributes of one OS rule: the name tokens
// to look for in the OS identifier.
type OSAttributes struct {
	Value []string `koanf:"value" validate:"required,min=1"`
}

// OSRule is a parsed OS rule.
type OSRule struct {
	raw    []string // as authored, for diagnostics
	tokens []string // lower-cased for matching
}

// ParseOS validates the raw attributes and builds an OSRule.
func ParseOS(attrs OSAttributes) (*OSRule, error) {
	if len(attrs.Value) == 0 {
		return nil, fmt.Errorf("%w: the value attribute of %s must be specified", ErrInvalidRule, kindOS)
	}
	raw := make([]string, len(attrs.Value))
	copy(raw, attrs.Value)
	tokens := make([]string, len(attrs.Value))
	for i, v := range attrs.Value {
		tokens[i] = strings.ToLower(v)
	}
	return &OSRule{raw: raw, tokens: tokens}, nil
}

// Evaluate lower-cases the OS identifier and matches when any configured
// token is a substring of it.
func (r *OSRule) Evaluate(res resolve.Resolver) domain.Outcome {
	name := runtime.GOOS
	if res != nil && res.ContainsKey(OSNameKey) {
		if raw, ok := res.Lookup(OSNameKey); ok {
			if s, err := resolve.AsString(raw); err == nil {
				name = s
			}
		}
	}
	name = strings.ToLower(name)

	for _, tok := range r.tokens {
		if strings.Contains(name, tok) {
			return domain.Match(fmt.Sprintf("%s found OS '%s'", kindOS, name))
		}
	}
	return domain.NoMatch(fmt.Sprintf("%s OS '%s' did not match any of [%s]", kindOS, name, strings.Join(r.raw, ", ")))
}
