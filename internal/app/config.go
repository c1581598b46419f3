package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/typecollect/internal/config"
)

// Config holds the settings given on the command line. Zero values mean
// "not set": the project file, then the defaults, fill them in.
type Config struct {
	ConfigPath string   // project file, typecollect.hcl in the working directory when empty
	Inputs     []string // hcl files or directories

	Root            string
	OutputPath      string
	Format          string
	Compact         bool
	NamespacePrefix string
	MetricsFile     string

	Watch           bool
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, errors.New("the health check server only runs in watch mode")
	}
	return &cfg, nil
}

const (
	defaultFormat    = "json"
	defaultExtension = ".hcl"
)

// settings are the effective values of a run after merging.
type settings struct {
	Inputs          []string
	Root            string
	OutputPath      string
	Format          string
	Compact         bool
	NamespacePrefix string
	MetricsFile     string
	Watch           bool
	HealthcheckPort int
}

// merge applies flags over the project file over the defaults.
func merge(cfg *Config, model *config.Model) settings {
	s := settings{
		Inputs:          cfg.Inputs,
		Root:            first(cfg.Root, model.Project.Root),
		OutputPath:      first(cfg.OutputPath, model.Output.Path),
		Format:          first(cfg.Format, model.Output.Format, defaultFormat),
		Compact:         cfg.Compact || model.Output.Compact,
		NamespacePrefix: first(cfg.NamespacePrefix, model.Project.NamespacePrefix),
		MetricsFile:     first(cfg.MetricsFile, model.Metrics.File),
		Watch:           cfg.Watch,
		HealthcheckPort: cfg.HealthcheckPort,
	}
	if len(s.Inputs) == 0 {
		s.Inputs = model.Project.Inputs
	}
	if s.Root == "" {
		s.Root = "."
		if model.Path != "" {
			s.Root = filepath.Dir(model.Path)
		}
	}
	return s
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
