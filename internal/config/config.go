// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads the runner's configuration by layering, in
// increasing priority: documented defaults, an optional YAML file, and
// command-line flags — the same composition order koanf is built around,
// even though the teacher repo that introduced the koanf dependency never
// wired it into running code.
package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Run holds one simulation run's fully resolved configuration.
type Run struct {
	CharacterA string `koanf:"character_a"`
	CharacterB string `koanf:"character_b"`
	Days       int    `koanf:"days"`
	Seed       uint64 `koanf:"seed"`
	World      string `koanf:"world"`
	Catalog    string `koanf:"catalog"`
	LogFormat  string `koanf:"log_format"`
	ConfigFile string `koanf:"config"`
}

// Defaults are applied before any file or flag layer.
var Defaults = map[string]any{
	"days":       30,
	"seed":       uint64(0),
	"log_format": "text",
}

// Load composes defaults, an optional YAML config file, and CLI flags
// into a Run, in that priority order (flags win).
func Load(flags *pflag.FlagSet) (*Run, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults, "."), nil); err != nil {
		return nil, oops.Code("config_error").Wrapf(err, "loading defaults")
	}

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("config_error").With("file", path).Wrapf(err, "loading config file")
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("config_error").Wrapf(err, "loading flags")
	}

	var run Run
	if err := k.Unmarshal("", &run); err != nil {
		return nil, oops.Code("config_error").Wrapf(err, "unmarshalling configuration")
	}
	return &run, nil
}

// Validate checks the resolved configuration shape, returning a usage
// error (exit code 2 per spec §6) when it is malformed.
func (r *Run) Validate() error {
	if r.CharacterA == "" || r.CharacterB == "" {
		return oops.Code("usage_error").Errorf("two character script paths are required")
	}
	if r.Days <= 0 {
		return oops.Code("usage_error").Errorf("--days must be positive, got %d", r.Days)
	}
	switch r.LogFormat {
	case "text", "json":
	default:
		return oops.Code("usage_error").Errorf("--log-format must be text or json, got %q", r.LogFormat)
	}
	return nil
}
