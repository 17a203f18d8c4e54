package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-combat/internal/config"
	"github.com/KirkDiggler/rpg-combat/internal/element"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-combat/internal/redis"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/combatant"
)

// app is everything a command needs, built from the environment.
type app struct {
	settings *config.Settings
	tuning   *config.Tuning
	roller   *rng.Seeded
	battle   battle.Service
	closer   func()
}

func (a *app) Close() {
	if a.closer != nil {
		a.closer()
	}
}

// loadConfig reads settings and tuning and installs the default logger.
// The --seed and --tuning flags win over the environment.
func loadConfig() (*config.Settings, *config.Tuning, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	if rootCmd.PersistentFlags().Changed("seed") {
		settings.Seed = seedFlag
	}
	if rootCmd.PersistentFlags().Changed("tuning") {
		settings.TuningFile = tuningFlag
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	})))

	tuning, err := config.LoadTuning(settings.TuningFile)
	if err != nil {
		return nil, nil, err
	}
	return settings, tuning, nil
}

// newApp wires storage, the seeded roller and the battle orchestrator.
func newApp(ctx context.Context, forceMemory bool) (*app, error) {
	settings, tuning, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{settings: settings, tuning: tuning, roller: rng.NewSeeded(settings.Seed)}

	var repo combatant.Repository
	var ids idgen.Generator
	if settings.RedisEndpoint == "" || forceMemory {
		slog.DebugContext(ctx, "using in-memory combatant storage")
		repo = combatant.NewInMemory(clock.New())
		ids = idgen.NewSequential("cbt")
	} else {
		client, err := redis.NewClient(settings.RedisEndpoint, &redis.Options{
			PoolSize:    4,
			MaxRetries:  2,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		a.closer = func() {
			if err := client.Close(); err != nil {
				slog.WarnContext(ctx, "failed to close redis client", "error", err)
			}
		}
		if err := redis.Ping(ctx, client); err != nil {
			a.Close()
			return nil, err
		}
		slog.DebugContext(ctx, "using redis combatant storage", "endpoint", settings.RedisEndpoint)

		repo, err = combatant.NewRedis(&combatant.RedisConfig{Client: client, Clock: clock.New()})
		if err != nil {
			a.Close()
			return nil, err
		}
		ids = idgen.NewUUID("cbt")
	}

	a.battle, err = battle.NewOrchestrator(&battle.Config{
		CombatantRepo: repo,
		IDGenerator:   ids,
		Roller:        a.roller,
		Tuning:        tuning,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// parseElement is the strict form of element.Parse: unknown names fail.
// Names are matched case-insensitively.
func parseElement(text string) (element.Element, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	e := element.Parse(name)
	if e == element.Normal && name != element.Normal.String() {
		return e, errors.UnsupportedElementf("unknown element %q", text)
	}
	return e, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
