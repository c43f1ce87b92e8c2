package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// config holds the stress run settings. Every flag defaults to the value of
// its environment variable, so a .env file can carry a standard profile.
type config struct {
	Duration       time.Duration
	Entities       int
	SpawnRate      int
	GrowthFactor   float64
	Seed           int64
	GCPauseMetrics bool
	LogLevel       string
	LogFormat      string
	Profile        string
	FeedAddr       string
	FeedInterval   int
}

func envString(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envFloat(getenv func(string) string, key string, fallback float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// loadConfig reads settings from getenv and args. Usage and flag errors are
// written to output; -h returns flag.ErrHelp.
func loadConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	var cfg config

	duration, err := envDuration(getenv, "ECS_STRESS_DURATION", 10*time.Second)
	if err != nil {
		return cfg, err
	}
	entities, err := envInt(getenv, "ECS_STRESS_ENTITIES", 10000)
	if err != nil {
		return cfg, err
	}
	spawnRate, err := envInt(getenv, "ECS_STRESS_SPAWN_RATE", 100)
	if err != nil {
		return cfg, err
	}
	growth, err := envFloat(getenv, "ECS_STRESS_GROWTH_FACTOR", 1.5)
	if err != nil {
		return cfg, err
	}
	feedInterval, err := envInt(getenv, "ECS_STRESS_FEED_INTERVAL", 60)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.DurationVar(&cfg.Duration, "duration", duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", entities, "The initial number of entities to create.")
	fs.IntVar(&cfg.SpawnRate, "spawn-rate", spawnRate, "Entities spawned per tick.")
	fs.Float64Var(&cfg.GrowthFactor, "growth-factor", growth, "Over-allocation factor applied when the entity bound grows.")
	fs.Int64Var(&cfg.Seed, "seed", time.Now().UnixNano(), "Random seed.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	fs.StringVar(&cfg.LogLevel, "log-level", envString(getenv, "ECS_STRESS_LOG_LEVEL", "info"), "Log level.")
	fs.StringVar(&cfg.LogFormat, "log-format", envString(getenv, "ECS_STRESS_LOG_FORMAT", "text"), "Log format: text or json.")
	fs.StringVar(&cfg.Profile, "profile", envString(getenv, "ECS_STRESS_PROFILE", ""), "Write a cpu or mem profile to the working directory.")
	fs.StringVar(&cfg.FeedAddr, "feed-addr", envString(getenv, "ECS_STRESS_FEED_ADDR", ""), "Serve live database stats over websocket on this address.")
	fs.IntVar(&cfg.FeedInterval, "feed-interval", feedInterval, "Ticks between published stats snapshots.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.Entities < 0:
		return cfg, fmt.Errorf("entities must not be negative: %d", cfg.Entities)
	case cfg.SpawnRate < 0:
		return cfg, fmt.Errorf("spawn-rate must not be negative: %d", cfg.SpawnRate)
	case cfg.FeedInterval <= 0:
		return cfg, fmt.Errorf("feed-interval must be positive: %d", cfg.FeedInterval)
	}
	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return cfg, fmt.Errorf("unknown profile %q (want cpu or mem)", cfg.Profile)
	}
	return cfg, nil
}

func newLogger(cfg config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return log, nil
}
