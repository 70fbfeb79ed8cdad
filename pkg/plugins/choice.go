package plugins

import (
	"fmt"

	"github.com/mmrzaf/makebelieve/pkg/rng"
)

// Choice picks one of params["values"]. With params["weights"] the pick is
// weighted; either way it costs one draw.
func Choice(g *rng.Generator, opts any) (any, error) {
	params, err := paramsOf("choice", opts)
	if err != nil {
		return nil, err
	}
	if err := requireParams(params, "choice", "values"); err != nil {
		return nil, err
	}

	values, ok := toList(params["values"])
	if !ok {
		return nil, invalid("'values' must be a list")
	}
	if len(values) == 0 {
		return nil, invalid("'values' cannot be empty")
	}

	weightsRaw, hasWeights := params["weights"]
	if !hasWeights {
		return rng.PickOne(g, values)
	}

	weights, ok := toList(weightsRaw)
	if !ok {
		return nil, invalid("'weights' must be a list")
	}
	if len(weights) != len(values) {
		return nil, invalid("'weights' and 'values' must have the same length")
	}

	totalWeight := 0.0
	cumulative := make([]float64, len(weights))
	for i, w := range weights {
		weight, ok := toFloat64(w)
		if !ok {
			return nil, invalid("weight %v is not a number", w)
		}
		if weight < 0 {
			return nil, invalid("negative weight: %v", w)
		}
		totalWeight += weight
		cumulative[i] = totalWeight
	}
	if totalWeight == 0 {
		return nil, invalid("total weight is zero")
	}

	r := g.Random(rng.Max(totalWeight))
	if r < 0 {
		return nil, fmt.Errorf("choice: %w", rng.ErrIndexOutOfRange)
	}
	for i, cum := range cumulative {
		if r < cum {
			return values[i], nil
		}
	}
	return values[len(values)-1], nil
}
