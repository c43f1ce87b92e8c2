package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/plus3/compdb/ecs"
	"github.com/plus3/compdb/internal/statsfeed"
	"github.com/sirupsen/logrus"
)

// feedSnapshot is what the stats feed publishes every FeedInterval ticks.
type feedSnapshot struct {
	Tick     uint64            `json:"tick"`
	Live     int               `json:"live"`
	Database ecs.DatabaseStats `json:"database"`
}

func main() {
	envErr := godotenv.Load()

	cfg, err := loadConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(2)
	}
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(2)
	}
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.WithError(envErr).Warn("could not load .env")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("stress test failed")
	}
}

func run(cfg config, log *logrus.Logger) error {
	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.WithFields(logrus.Fields{
		"duration":  cfg.Duration,
		"entities":  cfg.Entities,
		"spawnRate": cfg.SpawnRate,
		"growth":    cfg.GrowthFactor,
		"seed":      cfg.Seed,
		"profile":   cfg.Profile,
		"feed":      cfg.FeedAddr,
	}).Info("starting component database stress test")

	// 1. Setup registry, database and scheduler
	registry := ecs.NewComponentRegistry()
	idx := registerComponents(registry)
	db, err := ecs.NewDatabase(registry, 0,
		ecs.WithLogger(log.WithField("component", "database")),
		ecs.WithGrowthFactor(cfg.GrowthFactor),
	)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	alloc := newAllocator(db)

	damage, err := newDamageSystem(db, idx)
	if err != nil {
		return err
	}
	spawner := &SpawnSystem{idx: idx, alloc: alloc, rng: rng, Rate: cfg.SpawnRate}
	aging := &AgingSystem{idx: idx, alloc: alloc}
	census := &CensusSystem{rng: rng, Samples: 64}

	scheduler := ecs.NewScheduler(db)
	scheduler.Register(spawner)
	scheduler.Register(&MovementSystem{idx: idx})
	scheduler.Register(damage)
	scheduler.Register(aging)
	scheduler.Register(census)

	// 2. Populate the database with initial entities
	log.WithField("entities", cfg.Entities).Info("populating database")
	if err := populate(db, alloc, idx, rng, cfg.Entities); err != nil {
		return err
	}
	if err := db.Validate(); err != nil {
		return err
	}

	var hub *statsfeed.Hub
	if cfg.FeedAddr != "" {
		hub = statsfeed.NewHub(log.WithField("component", "statsfeed"))
		server := &http.Server{Addr: cfg.FeedAddr, Handler: hub}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("stats feed server stopped")
			}
		}()
		defer func() {
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		log.WithField("addr", cfg.FeedAddr).Info("serving stats feed")
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:       cfg.Duration,
		Entities:       cfg.Entities,
		Components:     registry.Len(),
		Systems:        scheduler.GetStats().SystemCount,
		SpawnRate:      cfg.SpawnRate,
		GrowthFactor:   cfg.GrowthFactor,
		GCPauseMetrics: cfg.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("duration", cfg.Duration).Info("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates, flushErrors int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(deltaTime.Seconds()); err != nil {
				flushErrors++
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			if hub != nil && totalUpdates%int64(cfg.FeedInterval) == 0 {
				snapshot := feedSnapshot{
					Tick:     uint64(totalUpdates),
					Live:     alloc.Live(),
					Database: db.CollectStats(),
				}
				if err := hub.Publish(snapshot); err != nil {
					log.WithError(err).Warn("could not publish stats")
				}
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.FlushErrors = flushErrors
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Spawned = spawner.Spawned
	report.Despawned = aging.Despawned
	report.Downed = damage.Downed
	report.Sampled = census.Sampled
	report.SampledComponents = census.Components
	report.LiveEntities = alloc.Live()
	report.Database = db.CollectStats()
	report.Scheduler = scheduler.GetStats()

	if err := db.Validate(); err != nil {
		return err
	}
	log.Info("simulation finished")

	// 4. Generate report to console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
