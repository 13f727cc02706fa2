package main

import (
	"fmt"
	"os"

	"github.com/condeval/condeval/internal/cond/common/log"
	"github.com/condeval/condeval/internal/cond/config"
	"github.com/condeval/condeval/internal/cond/resolve"
	"github.com/condeval/condeval/internal/cond/rulefile"
	"github.com/condeval/condeval/internal/cond/rules"
)

const (
	version = "0.1.0-dev"
	appName = "condeval"
)

// Application holds the wired components of one evaluation run.
type Application struct {
	config   *config.AppConfig
	resolver resolve.Resolver
	document *rulefile.Document
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(2)
	}

	log.Info(map[string]any{
		"version":         version,
		"env":             cfg.Env,
		"log_level":       cfg.LogLevel,
		"rule_file":       cfg.RuleFile,
		"property_files":  cfg.PropertyFiles,
		"property_prefix": cfg.PropertyPrefix,
	}, "Starting condeval")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Error(map[string]any{"error": err}, "Failed to build application")
		os.Exit(2)
	}

	os.Exit(app.Run())
}

// buildApplication constructs the resolver and loads the rule document.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	resolver, err := resolve.LoadFiles(cfg.PropertyPrefix, cfg.PropertyFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to build property resolver: %w", err)
	}

	log.Info(map[string]any{
		"files":      cfg.PropertyFiles,
		"env_prefix": cfg.PropertyPrefix,
	}, "Property resolver configured")

	doc, err := rulefile.Load(cfg.RuleFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule document: %w", err)
	}

	log.Info(map[string]any{
		"rule_file":  cfg.RuleFile,
		"conditions": len(doc.Conditions),
	}, "Rule document loaded")

	return &Application{
		config:   cfg,
		resolver: resolver,
		document: doc,
	}, nil
}

// Run evaluates every condition set against the resolver. The exit code is
// 0 when all sets matched, 1 when any did not, 2 on an invalid rule.
func (app *Application) Run() int {
	allMatched := true

	for _, set := range app.document.Conditions {
		instances, err := set.Instances()
		if err != nil {
			// Authoring errors are fatal, never downgraded to a no-match.
			log.Error(map[string]any{"condition": set.Name, "error": err}, "Invalid rule")
			return 2
		}

		outcome := rules.Aggregate(app.resolver, instances)
		fields := map[string]any{
			"condition": set.Name,
			"matched":   outcome.Matched,
			"reasons":   outcome.Reasons,
		}
		if outcome.Matched {
			log.Info(fields, "Condition matched")
		} else {
			log.Warn(fields, "Condition did not match")
			allMatched = false
		}
	}

	if allMatched {
		log.Info(map[string]any{"conditions": len(app.document.Conditions)}, "All conditions matched")
		return 0
	}
	return 1
}
