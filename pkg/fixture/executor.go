// Package fixture runs several entity jobs at once, each on its own
// generator, and fingerprints the combined output.
package fixture

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmrzaf/makebelieve/internal/config"
	"github.com/mmrzaf/makebelieve/internal/logging"
	"github.com/mmrzaf/makebelieve/pkg/entity"
	"github.com/mmrzaf/makebelieve/pkg/plugins"
	"github.com/mmrzaf/makebelieve/pkg/rng"
)

type Executor struct {
	logger  *logging.Logger
	workers int
}

// NewExecutor returns an Executor logging through logger. A nil logger gets
// one at the configured MAKEBELIEVE_LOG_LEVEL.
func NewExecutor(logger *logging.Logger) *Executor {
	cfg := config.Load()
	if logger == nil {
		logger = logging.NewLogger(cfg.LogLevel)
	}
	return &Executor{
		logger:  logger.WithComponent("fixture"),
		workers: cfg.Workers,
	}
}

// Execute runs every job in plan. Jobs never share a generator, so the
// records of a job depend only on its seed, never on scheduling.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	seed := generateSeed()
	if plan.Seed != nil {
		seed = *plan.Seed
	}

	workers := plan.Workers
	if workers <= 0 {
		workers = max(e.workers, 1)
	}

	e.logger.Info("Starting fixture run: jobs=%d, seed=%d, workers=%d", len(plan.Jobs), seed, workers)
	startTime := time.Now()

	records := make([][]entity.Record, len(plan.Jobs))
	jobStats := make([]JobRunStats, len(plan.Jobs))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, job := range plan.Jobs {
		i, job := i, job
		group.Go(func() error {
			jobStart := time.Now()
			jobSeed := deriveSeed(seed, job)
			recs, err := e.runJob(gctx, job, jobSeed, plan.Arithmetic)
			if err != nil {
				return fmt.Errorf("job '%s': %w", job.Name, err)
			}
			records[i] = recs
			jobStats[i] = JobRunStats{
				JobName:         job.Name,
				Seed:            jobSeed,
				RecordsMade:     int64(len(recs)),
				DurationSeconds: time.Since(jobStart).Seconds(),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		e.logger.Error("Fixture run failed: %v", err)
		return nil, err
	}

	result := &Result{
		Seed:    seed,
		Records: make(map[string][]entity.Record, len(plan.Jobs)),
		Stats:   RunStats{JobStats: jobStats},
	}
	for i, job := range plan.Jobs {
		result.Records[job.Name] = records[i]
		result.Stats.TotalRecords += int64(len(records[i]))
	}
	result.Stats.JobsCompleted = len(plan.Jobs)
	result.Stats.DurationSeconds = time.Since(startTime).Seconds()

	fingerprint, err := Fingerprint(result.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint records: %w", err)
	}
	result.Fingerprint = fingerprint

	e.logger.Infow("fixture.completed", map[string]any{
		"jobs":        result.Stats.JobsCompleted,
		"records":     result.Stats.TotalRecords,
		"seconds":     result.Stats.DurationSeconds,
		"fingerprint": fingerprint,
	})
	return result, nil
}

func (e *Executor) runJob(ctx context.Context, job Job, seed int64, arithmetic rng.Arithmetic) ([]entity.Record, error) {
	gen, err := rng.New(rng.WithSeed(seed), rng.WithArithmetic(arithmetic))
	if err != nil {
		return nil, err
	}
	plugins.Register(gen)

	ent, err := entity.New(
		entity.WithPRNG(gen),
		entity.WithSchema(job.Schema),
		entity.WithVariants(job.VariantFuncs),
	)
	if err != nil {
		return nil, err
	}

	recs := make([]entity.Record, 0, job.Count)
	for x := 0; x < job.Count; x++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := ent.MakeOne(job.Variants...)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	e.logger.Debug("Job %s made %d records (seed=%d)", job.Name, len(recs), seed)
	return recs, nil
}

func validatePlan(plan *Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: nil plan", ErrInvalidPlan)
	}
	seen := make(map[string]bool, len(plan.Jobs))
	for i, job := range plan.Jobs {
		if job.Name == "" {
			return fmt.Errorf("%w: job %d has no name", ErrInvalidPlan, i)
		}
		if seen[job.Name] {
			return fmt.Errorf("%w: duplicate job name: %s", ErrInvalidPlan, job.Name)
		}
		seen[job.Name] = true
		if job.Schema == nil {
			return fmt.Errorf("%w: job '%s' has no schema", ErrInvalidPlan, job.Name)
		}
		if job.Count < 0 {
			return fmt.Errorf("%w: job '%s' has negative count %d", ErrInvalidPlan, job.Name, job.Count)
		}
		for _, v := range job.Variants {
			if _, ok := job.VariantFuncs[v]; !ok {
				return fmt.Errorf("%w: job '%s': %w: %s", ErrInvalidPlan, job.Name, entity.ErrMissingVariant, v)
			}
		}
	}
	return nil
}

// deriveSeed gives each job a stable seed: its own if pinned, otherwise the
// plan seed offset by the FNV-1a hash of the job name.
func deriveSeed(planSeed int64, job Job) int64 {
	if job.Seed != nil {
		return *job.Seed
	}
	h := fnv.New32a()
	h.Write([]byte(job.Name))
	return planSeed + int64(h.Sum32())
}

func generateSeed() int64 {
	var b [8]byte
	rand.Read(b[:])
	return int64(binary.LittleEndian.Uint32(b[:4]))
}
