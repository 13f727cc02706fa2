package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values for the condeval binary, parsed from
// environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// RuleFile is the rule document to evaluate (YAML, JSON, or TOML).
	RuleFile string `koanf:"rule_file" validate:"required,doc_path"`

	// PropertyFiles are optional property files that seed the resolver,
	// loaded in order with later files overriding earlier ones.
	PropertyFiles []string `koanf:"property_files" validate:"omitempty,dive,doc_path"`

	// PropertyPrefix is the environment variable prefix for resolver
	// properties, e.g. "PROP_" maps PROP_APP_MODE to app.mode. Empty
	// disables environment-sourced properties.
	PropertyPrefix string `koanf:"property_prefix"`
}

// DEFAULT_APP_CONFIG defines the default settings for the condeval binary.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:      "prod",
	LogLevel: "info",
	RuleFile: "/etc/condeval/rules.yaml",
}

// validDocPath validates that a path carries one of the supported document
// extensions: .yaml, .yml, .json, or .toml.
func validDocPath(fl validator.FieldLevel) bool {
	switch strings.ToLower(filepath.Ext(fl.Field().String())) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	default:
		return false
	}
}

// envLoader loads environment variables with the prefix "CONDEVAL_",
// lower-casing keys and stripping the prefix. Space or comma separated
// values become lists. It can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "CONDEVAL_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "CONDEVAL_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads default configuration values using the structs
// provider. It can be replaced in tests.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "doc_path" validation. It can be
// replaced in tests.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("doc_path", validDocPath)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = registerValidation(validate)
	if err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
