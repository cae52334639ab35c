package app

import (
	"errors"
	"fmt"
)

// Actions the application can perform on a script.
const (
	ActionCheck   = "check"
	ActionFmt     = "fmt"
	ActionCompile = "compile"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath  string // block script file
	CatalogPath string // optional directory of extra descriptor manifests

	Action     string
	OutputPath string // empty means standard output

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	switch cfg.Action {
	case ActionCheck, ActionFmt, ActionCompile:
	default:
		return nil, fmt.Errorf("unknown action %q: must be %q, %q, or %q",
			cfg.Action, ActionCheck, ActionFmt, ActionCompile)
	}
	return &cfg, nil
}
