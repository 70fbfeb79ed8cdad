package rng

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrIndexOutOfRange = errors.New("drawn index out of range")
)

// Bounds of RandomInteger when no range is given: the largest integers a
// float64 represents exactly.
const (
	MaxSafeInteger = 1<<53 - 1
	MinSafeInteger = -MaxSafeInteger
)

type bounds struct {
	min, max float64
}

// RangeOption sets one end of the range for Random and RandomInteger. Ends
// that are not set keep their defaults independently.
type RangeOption func(*bounds)

func Min(v float64) RangeOption {
	return func(b *bounds) {
		b.min = v
	}
}

func Max(v float64) RangeOption {
	return func(b *bounds) {
		b.max = v
	}
}

func Between(min, max float64) RangeOption {
	return func(b *bounds) {
		Min(min)(b)
		Max(max)(b)
	}
}

func resolve(defMin, defMax float64, opts []RangeOption) (float64, float64) {
	b := bounds{min: defMin, max: defMax}
	for _, opt := range opts {
		opt(&b)
	}
	return b.min, b.max
}

// scale maps u onto [min, max). The product is converted explicitly so it is
// rounded before the add and never fused into an FMA.
func scale(min, max, u float64) float64 {
	return min + float64((max-min)*u)
}

// Random returns min + (max-min)*Float64(), with min=0 and max=1 unless set.
// It always consumes exactly one draw.
func (g *Generator) Random(opts ...RangeOption) float64 {
	min, max := resolve(0, 1, opts)
	return scale(min, max, g.Float64())
}

// RandomInteger rounds the ranged float to the nearest integer, halves going
// up. The range defaults to [MinSafeInteger, MaxSafeInteger]. It always
// consumes exactly one draw.
func (g *Generator) RandomInteger(opts ...RangeOption) int64 {
	min, max := resolve(MinSafeInteger, MaxSafeInteger, opts)
	return int64(roundHalfUp(scale(min, max, g.Float64())))
}

func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}

// index draws floor(Random()*n) and checks it against [0, n).
func (g *Generator) index(n int) (int, error) {
	i := math.Floor(g.Random() * float64(n))
	if i < 0 || i >= float64(n) {
		return 0, fmt.Errorf("%w: %v not in [0,%d)", ErrIndexOutOfRange, i, n)
	}
	return int(i), nil
}

// Times calls fn count times, in order, and collects the results. Fixed
// arguments are captured by fn. A count of zero or less yields an empty slice.
func Times[T any](count int, fn func() T) []T {
	out := make([]T, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, fn())
	}
	return out
}

// Pick draws count items with replacement, one draw per item.
func Pick[T any](g *Generator, items []T, count int) ([]T, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pick: %w", ErrEmptyInput)
	}

	out := make([]T, 0, max(count, 0))
	for i := 0; i < count; i++ {
		idx, err := g.index(len(items))
		if err != nil {
			return nil, fmt.Errorf("pick: %w", err)
		}
		out = append(out, items[idx])
	}
	return out, nil
}

// PickOne draws a single item.
func PickOne[T any](g *Generator, items []T) (T, error) {
	var zero T
	out, err := Pick(g, items, 1)
	if err != nil {
		return zero, err
	}
	return out[0], nil
}

// PickUnique shuffles a copy of items and returns its first count elements,
// capped at len(items). It consumes len(items)-1 draws whatever count is.
func PickUnique[T any](g *Generator, items []T, count int) ([]T, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pick unique: %w", ErrEmptyInput)
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	if err := Shuffle(g, shuffled); err != nil {
		return nil, fmt.Errorf("pick unique: %w", err)
	}

	n := min(max(count, 0), len(shuffled))
	return shuffled[:n], nil
}

// PickSeries cycles through items in order until count values are produced.
// It never draws from a generator.
func PickSeries[T any](items []T, count int) ([]T, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pick series: %w", ErrEmptyInput)
	}

	out := make([]T, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, items[i%len(items)])
	}
	return out, nil
}

// Shuffle permutes items in place with Fisher-Yates, walking down from the
// last index and drawing once per step (len(items)-1 draws).
func Shuffle[T any](g *Generator, items []T) error {
	for i := len(items) - 1; i > 0; i-- {
		j, err := g.index(i + 1)
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}

// Collapse returns the only element of xs when it has exactly one, and xs
// itself otherwise.
func Collapse[T any](xs []T) any {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs
}

// Unwrap is the typed form of Collapse: it reports whether xs held exactly one
// element and returns it.
func Unwrap[T any](xs []T) (T, bool) {
	if len(xs) == 1 {
		return xs[0], true
	}
	var zero T
	return zero, false
}
