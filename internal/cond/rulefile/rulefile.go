// Package rulefile loads declarative rule documents and turns them into
// ordered rule-instance sequences for aggregation. It supports YAML, JSON,
// and TOML documents, selected by file extension.
package rulefile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/condeval/condeval/internal/cond/rules"
)

// Document is one parsed rule document: a list of named condition sets.
type Document struct {
	Conditions []ConditionSet `koanf:"conditions" validate:"required,min=1,dive"`
}

// ConditionSet is one named composite condition. The singular fields hold
// the direct rule instance of each kind; the plural fields hold repeated
// instances evaluated after it, in declared order.
type ConditionSet struct {
	Name string `koanf:"name" validate:"required"`

	String  *rules.StringAttributes  `koanf:"string"`
	Strings []rules.StringAttributes `koanf:"strings" validate:"dive"`

	Integer  *rules.IntegerAttributes  `koanf:"integer"`
	Integers []rules.IntegerAttributes `koanf:"integers" validate:"dive"`

	Float32  *rules.Float32Attributes  `koanf:"float32"`
	Float32s []rules.Float32Attributes `koanf:"float32s" validate:"dive"`

	Float64  *rules.Float64Attributes  `koanf:"float64"`
	Float64s []rules.Float64Attributes `koanf:"float64s" validate:"dive"`

	Enum  *rules.EnumAttributes  `koanf:"enum"`
	Enums []rules.EnumAttributes `koanf:"enums" validate:"dive"`

	OS *rules.OSAttributes `koanf:"os"`
}

// Load reads and validates a rule document at the given path, using the
// parser matching its extension.
func Load(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported rule document type: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load rule document %s: %w", path, err)
	}

	var doc Document
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("failed to decode rule document %s: %w", path, err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid rule document %s: %w", path, err)
	}

	return &doc, nil
}

// Instances parses the set's raw attributes into the ordered evaluation
// sequence: for each kind the direct instance first, then its repeated
// instances in declared order. Parse failures are authoring errors and
// propagate; they are never folded into a no-match.
func (s *ConditionSet) Instances() ([]rules.Instance, error) {
	var out []rules.Instance

	appendRule := func(inst rules.Instance, err error) error {
		if err != nil {
			return fmt.Errorf("condition set %q: %w", s.Name, err)
		}
		out = append(out, inst)
		return nil
	}

	if s.String != nil {
		if err := appendRule(rules.ParseString(*s.String)); err != nil {
			return nil, err
		}
	}
	for _, attrs := range s.Strings {
		if err := appendRule(rules.ParseString(attrs)); err != nil {
			return nil, err
		}
	}

	if s.Integer != nil {
		if err := appendRule(rules.ParseInteger(*s.Integer)); err != nil {
			return nil, err
		}
	}
	for _, attrs := range s.Integers {
		if err := appendRule(rules.ParseInteger(attrs)); err != nil {
			return nil, err
		}
	}

	if s.Float32 != nil {
		if err := appendRule(rules.ParseFloat32(*s.Float32)); err != nil {
			return nil, err
		}
	}
	for _, attrs := range s.Float32s {
		if err := appendRule(rules.ParseFloat32(attrs)); err != nil {
			return nil, err
		}
	}

	if s.Float64 != nil {
		if err := appendRule(rules.ParseFloat64(*s.Float64)); err != nil {
			return nil, err
		}
	}
	for _, attrs := range s.Float64s {
		if err := appendRule(rules.ParseFloat64(attrs)); err != nil {
			return nil, err
		}
	}

	if s.Enum != nil {
		if err := appendRule(rules.ParseEnum(*s.Enum)); err != nil {
			return nil, err
		}
	}
	for _, attrs := range s.Enums {
		if err := appendRule(rules.ParseEnum(attrs)); err != nil {
			return nil, err
		}
	}

	if s.OS != nil {
		if err := appendRule(rules.ParseOS(*s.OS)); err != nil {
			return nil, err
		}
	}

	return out, nil
}
