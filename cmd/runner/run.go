// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shelterdsl/runner/internal/config"
	"github.com/shelterdsl/runner/internal/logging"
	"github.com/shelterdsl/runner/internal/simulation"
)

var tracer = otel.Tracer("shelterdsl/runner")

// addRunFlags registers the flags shared by the root command (bare
// invocation) and the explicit `run` subcommand.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("days", config.Defaults["days"].(int), "number of days to simulate")
	cmd.Flags().Uint64("seed", config.Defaults["seed"].(uint64), "PRNG seed (0 = derive from wall clock)")
	cmd.Flags().String("world", "", "world script path (default: ./world.lbw if present, else built-in defaults)")
	cmd.Flags().String("catalog", "", "task catalog script path (default: ./catalog.lbc if present, else built-in defaults)")
	cmd.Flags().String("log-format", config.Defaults["log_format"].(string), "log format: text or json")
	cmd.Flags().String("config", "", "optional YAML config file overriding defaults (flags still win)")
}

// requireTwoCharacterPaths validates positional args as a usage error
// (exit code 2), rather than letting cobra's default message surface as
// an unclassified fatal error.
func requireTwoCharacterPaths(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return oops.Code("usage_error").
			Errorf("expected two character script paths, got %d", len(args))
	}
	return nil
}

// NewRunCmd creates the `run` subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <character-a.lbp> <character-b.lbp>",
		Short: "Run the two-character shelter simulation",
		Args:  requireTwoCharacterPaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addRunFlags(cmd)
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	cfg.CharacterA = args[0]
	cfg.CharacterB = args[1]
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Setup("shelterdsl-runner", "dev", cfg.LogFormat, nil)

	runID := ulid.Make()
	ctx, span := tracer.Start(context.Background(), "runner.run",
		trace.WithAttributes(
			attribute.String("run.id", runID.String()),
			attribute.Int("run.days", cfg.Days),
		),
	)
	defer span.End()
	logger = logger.With("run_id", runID.String())

	worldPath := simulation.AutoDiscoverPath(cfg.World, "world.lbw")
	catalogPath := simulation.AutoDiscoverPath(cfg.Catalog, "catalog.lbc")

	world, err := simulation.LoadWorldFile(worldPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	catalog, err := simulation.LoadCatalogFile(catalogPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	charA, err := simulation.LoadCharacterFile(cfg.CharacterA)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	charB, err := simulation.LoadCharacterFile(cfg.CharacterB)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if charA.Name == charB.Name {
		return oops.Code("usage_error").With("name", charA.Name).
			Errorf("the two characters must have distinct names")
	}

	rng := simulation.NewLCG(cfg.Seed)
	effects := simulation.DefaultEffectEngine{}

	logger.InfoContext(ctx, "simulation starting",
		"character_a", charA.Name, "character_b", charB.Name,
		"days", cfg.Days, "world", worldPath, "catalog", catalogPath)

	simulation.RunSim(world, catalog, charA, charB, cfg.Days, rng, effects, logger)

	logger.InfoContext(ctx, "simulation complete")
	return nil
}
