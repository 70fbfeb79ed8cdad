package plugins

import (
	"fmt"
	"time"

	"github.com/mmrzaf/makebelieve/internal/timeutil"
	"github.com/mmrzaf/makebelieve/pkg/rng"
)

// TimeSeries returns start + index*step. start is RFC 3339 or relative to
// params["now"] ("-7d", "+90m"); jitter_seconds adds a uniform offset in
// [-jitter, +jitter] at the cost of one draw.
func TimeSeries(g *rng.Generator, opts any) (any, error) {
	params, err := paramsOf("timeSeries", opts)
	if err != nil {
		return nil, err
	}
	if err := requireParams(params, "timeSeries", "start", "step"); err != nil {
		return nil, err
	}

	startStr, ok := params["start"].(string)
	if !ok {
		return nil, invalid("'start' must be a string")
	}
	stepStr, ok := params["step"].(string)
	if !ok {
		return nil, invalid("'step' must be a string")
	}

	now, err := referenceTime(params["now"])
	if err != nil {
		return nil, err
	}

	startTime, err := timeutil.ParseRelativeTime(startStr, now)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %w", ErrInvalidParams, err)
	}
	stepDuration, err := timeutil.ParseDuration(stepStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid step duration: %w", ErrInvalidParams, err)
	}

	var index int64
	if raw, ok := params["index"]; ok {
		index, ok = toInt64(raw)
		if !ok || index < 0 {
			return nil, invalid("'index' must be a non-negative integer")
		}
	}

	timestamp := startTime.Add(time.Duration(index) * stepDuration)

	if jitterRaw, hasJitter := params["jitter_seconds"]; hasJitter {
		jitterSeconds, ok := toInt64(jitterRaw)
		if !ok {
			return nil, invalid("'jitter_seconds' must be an integer")
		}
		if jitterSeconds > 0 {
			j := float64(jitterSeconds)
			jitter := g.RandomInteger(rng.Between(-j, j))
			timestamp = timestamp.Add(time.Duration(jitter) * time.Second)
		}
	}

	return timestamp, nil
}

func referenceTime(v any) (time.Time, error) {
	switch now := v.(type) {
	case nil:
		return time.Now(), nil
	case time.Time:
		return now, nil
	case string:
		t, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid now: %w", ErrInvalidParams, err)
		}
		return t, nil
	default:
		return time.Time{}, invalid("'now' must be a time or RFC 3339 string")
	}
}
