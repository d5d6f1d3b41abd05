// Package config loads the optional modelgen.yaml project file (search
// paths, default vertex layout, pre-bound base-module globals): new
// surface not named by spec.md §6, added per SPEC_FULL.md's ambient-stack
// section because the CLI is specified as driveable but project-level
// configuration is left unspecified. Grounded on gopkg.in/yaml.v3, the
// same config-loading dependency grafana-k6 and viant-linager both carry.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mikenno/modelgen/internal/value"
)

// VertexLayout mirrors value.VertexLayout in YAML-friendly field names.
type VertexLayout struct {
	Position int `yaml:"position"`
	UV       int `yaml:"uv"`
	Normal   int `yaml:"normal"`
	Color    int `yaml:"color"`
}

// Config is the shape of modelgen.yaml.
type Config struct {
	SearchPaths  []string          `yaml:"search_paths"`
	VertexLayout *VertexLayout     `yaml:"vertex_layout"`
	Globals      map[string]string `yaml:"globals"`
}

// Load reads and parses path. A missing file is not an error: callers
// treat a nil *Config as "no project file", falling back to defaults and
// whatever the CLI supplies directly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &cfg, nil
}

// ApplyVertexLayout overrides inst's vertex layout when cfg specifies one;
// cfg or cfg.VertexLayout may be nil, in which case inst keeps its default.
func (cfg *Config) ApplyVertexLayout(inst *value.Instance) {
	if cfg == nil || cfg.VertexLayout == nil {
		return
	}
	inst.VertexLayout = value.VertexLayout{
		Position: cfg.VertexLayout.Position,
		UV:       cfg.VertexLayout.UV,
		Normal:   cfg.VertexLayout.Normal,
		Color:    cfg.VertexLayout.Color,
	}
}

// ApplySearchPaths appends cfg's search paths to inst's, CLI-specified
// paths taking precedence by virtue of being added first.
func (cfg *Config) ApplySearchPaths(inst *value.Instance) {
	if cfg == nil {
		return
	}
	inst.SearchPaths = append(inst.SearchPaths, cfg.SearchPaths...)
}

// ApplyGlobals binds cfg's pre-bound globals into the base module before
// CLI `--set` flags (which are applied afterward, so they win on conflict).
func (cfg *Config) ApplyGlobals(inst *value.Instance) {
	if cfg == nil || inst.BaseModule == nil {
		return
	}
	for name, raw := range cfg.Globals {
		inst.BaseModule.Globals.Set(name, ParseScalar(raw))
	}
}

// ParseScalar turns a raw string (a YAML global's value, or a CLI
// `--set name=value` right-hand side) into the best-fit scalar Value: an
// Integer or Float when it parses as one, otherwise a plain String.
func ParseScalar(raw string) value.Value {
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return value.NewInteger(int32(n))
	}
	if f, err := strconv.ParseFloat(raw, 32); err == nil {
		return value.NewFloat(float32(f))
	}
	return value.NewString(raw)
}
