package plugins

import (
	"fmt"
	"math"

	"github.com/mmrzaf/makebelieve/pkg/rng"
)

func bounds(name string, opts any) (float64, float64, error) {
	params, err := paramsOf(name, opts)
	if err != nil {
		return 0, 0, err
	}
	if err := requireParams(params, name, "min", "max"); err != nil {
		return 0, 0, err
	}

	min, ok := toFloat64(params["min"])
	if !ok {
		return 0, 0, invalid("%s 'min' must be a number", name)
	}
	max, ok := toFloat64(params["max"])
	if !ok {
		return 0, 0, invalid("%s 'max' must be a number", name)
	}
	if max < min {
		return 0, 0, invalid("max (%v) must not be less than min (%v)", max, min)
	}
	return min, max, nil
}

// IntRange returns an int64 in [min, max], rounded half up.
func IntRange(g *rng.Generator, opts any) (any, error) {
	min, max, err := bounds("intRange", opts)
	if err != nil {
		return nil, err
	}
	return g.RandomInteger(rng.Between(min, max)), nil
}

// FloatRange returns a float64 between min and max.
func FloatRange(g *rng.Generator, opts any) (any, error) {
	min, max, err := bounds("floatRange", opts)
	if err != nil {
		return nil, err
	}
	return g.Random(rng.Between(min, max)), nil
}

// Normal samples N(mean, std) with the Box-Muller transform, using two draws.
func Normal(g *rng.Generator, opts any) (any, error) {
	params, err := paramsOf("normal", opts)
	if err != nil {
		return nil, err
	}
	if err := requireParams(params, "normal", "mean", "std"); err != nil {
		return nil, err
	}

	mean, ok := toFloat64(params["mean"])
	if !ok {
		return nil, invalid("normal 'mean' must be a number")
	}
	std, ok := toFloat64(params["std"])
	if !ok {
		return nil, invalid("normal 'std' must be a number")
	}
	if std < 0 {
		return nil, invalid("normal 'std' must not be negative")
	}

	u1 := g.Float64()
	u2 := g.Float64()
	if u1 <= 0 || u2 < 0 {
		return nil, fmt.Errorf("normal: %w: draws %v, %v outside (0,1)", rng.ErrIndexOutOfRange, u1, u2)
	}

	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + float64(z*std), nil
}
