package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Koanf adapts a koanf configuration tree to the Resolver interface.
type Koanf struct {
	k *koanf.Koanf
}

// NewKoanf wraps an already-loaded koanf instance.
func NewKoanf(k *koanf.Koanf) *Koanf {
	return &Koanf{k: k}
}

// ContainsKey reports whether the configuration tree holds the given path.
func (r *Koanf) ContainsKey(key string) bool {
	return r.k.Exists(key)
}

// Lookup returns the raw value at the given path and whether it was present.
func (r *Koanf) Lookup(key string) (any, bool) {
	if !r.k.Exists(key) {
		return nil, false
	}
	return r.k.Get(key), true
}

// LoadFiles builds a Koanf resolver from zero or more property files plus
// environment variables carrying the given prefix. Files load in argument
// order, later files overriding earlier ones; environment variables override
// all files. Supported file formats are YAML, JSON, and TOML, selected by
// extension. An empty envPrefix skips environment loading.
func LoadFiles(envPrefix string, paths ...string) (*Koanf, error) {
	k := koanf.New(".")

	for _, path := range paths {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load property file %s: %w", path, err)
		}
	}

	if envPrefix != "" {
		err := k.Load(env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(key, value string) (string, any) {
				// FOO_APP_MODE -> app.mode for prefix "FOO_".
				key = strings.TrimPrefix(key, envPrefix)
				key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
				return key, strings.TrimSpace(value)
			},
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load environment properties: %w", err)
		}
	}

	return NewKoanf(k), nil
}

// parserFor selects a koanf parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported property file type: %s", path)
	}
}
