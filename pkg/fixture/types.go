package fixture

import (
	"errors"

	"github.com/mmrzaf/makebelieve/pkg/entity"
	"github.com/mmrzaf/makebelieve/pkg/rng"
)

var ErrInvalidPlan = errors.New("invalid plan")

// Job makes Count records of one entity shape.
type Job struct {
	Name         string
	Count        int
	Variants     []string
	Schema       entity.SchemaFunc
	VariantFuncs map[string]entity.SchemaFunc
	// Seed pins this job's generator. When nil the seed is derived from the
	// plan seed and the job name.
	Seed *int64
}

type Plan struct {
	Seed       *int64
	Arithmetic rng.Arithmetic
	// Workers bounds how many jobs run at once; zero uses the configured default.
	Workers int
	Jobs    []Job
}

type RunStats struct {
	JobsCompleted   int           `json:"jobs_completed"`
	TotalRecords    int64         `json:"total_records"`
	DurationSeconds float64       `json:"duration_seconds"`
	JobStats        []JobRunStats `json:"job_stats"`
}

type JobRunStats struct {
	JobName         string  `json:"job_name"`
	Seed            int64   `json:"seed"`
	RecordsMade     int64   `json:"records_made"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type Result struct {
	Seed        int64
	Records     map[string][]entity.Record
	Stats       RunStats
	Fingerprint string
}
