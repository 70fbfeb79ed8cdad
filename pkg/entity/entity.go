// Package entity builds fixture records from a base schema and optional named
// variants, all drawing from one rng.Generator.
package entity

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/mmrzaf/makebelieve/internal/logging"
	"github.com/mmrzaf/makebelieve/pkg/rng"
)

var (
	ErrMissingVariant = errors.New("missing variant")
	ErrNoSchema       = errors.New("entity has no schema")
)

// Record is one generated entity: field name to value.
type Record map[string]any

// SchemaFunc produces a base record or a variant overlay from g.
type SchemaFunc func(g *rng.Generator) Record

type Options struct {
	Schema   SchemaFunc
	Variants map[string]SchemaFunc
	PRNG     *rng.Generator
	Verbose  bool
	Logger   *logging.Logger
}

type Option func(*Options)

func WithSchema(fn SchemaFunc) Option {
	return func(o *Options) { o.Schema = fn }
}

// WithVariants replaces the whole variant set.
func WithVariants(variants map[string]SchemaFunc) Option {
	return func(o *Options) { o.Variants = maps.Clone(variants) }
}

// WithVariant adds or replaces a single variant.
func WithVariant(name string, fn SchemaFunc) Option {
	return func(o *Options) {
		if o.Variants == nil {
			o.Variants = make(map[string]SchemaFunc)
		}
		o.Variants[name] = fn
	}
}

func WithPRNG(g *rng.Generator) Option {
	return func(o *Options) { o.PRNG = g }
}

func WithVerbose(verbose bool) Option {
	return func(o *Options) { o.Verbose = verbose }
}

func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Entity is not safe for concurrent use; it shares its generator with every
// schema and variant call.
type Entity struct {
	opts Options
}

// New builds an Entity. Without WithPRNG it gets a generator seeded the way
// rng.New seeds one by default.
func New(opts ...Option) (*Entity, error) {
	e := &Entity{opts: Options{Variants: make(map[string]SchemaFunc)}}
	e.SetOptions(opts...)

	if e.opts.PRNG == nil {
		g, err := rng.New()
		if err != nil {
			return nil, fmt.Errorf("default generator: %w", err)
		}
		e.opts.PRNG = g
	}
	return e, nil
}

func (e *Entity) Schema() SchemaFunc {
	return e.opts.Schema
}

func (e *Entity) SetSchema(fn SchemaFunc) *Entity {
	e.opts.Schema = fn
	return e
}

// Options returns a copy of the current options.
func (e *Entity) Options() Options {
	o := e.opts
	o.Variants = maps.Clone(e.opts.Variants)
	return o
}

// SetOptions applies opts on top of the current options. Options not passed
// keep their values; a schema or variant set passed here replaces the active one.
func (e *Entity) SetOptions(opts ...Option) *Entity {
	for _, opt := range opts {
		opt(&e.opts)
	}
	if e.opts.Variants == nil {
		e.opts.Variants = make(map[string]SchemaFunc)
	}
	return e
}

// Variants returns a copy of the registered variants.
func (e *Entity) Variants() map[string]SchemaFunc {
	return maps.Clone(e.opts.Variants)
}

// VariantNames lists registered variants in sorted order.
func (e *Entity) VariantNames() []string {
	names := make([]string, 0, len(e.opts.Variants))
	for name := range e.opts.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Entity) AddVariant(name string, fn SchemaFunc) *Entity {
	e.opts.Variants[name] = fn
	return e
}

func (e *Entity) Generator() *rng.Generator {
	return e.opts.PRNG
}

// Make builds count records. For each record the schema runs first, then each
// named variant in the order given, and their fields are merged left to right
// so later variants win. Records are built one after another, so each finishes
// its draws before the next starts. Unknown variant names fail before anything
// is drawn.
func (e *Entity) Make(count int, variants ...string) ([]Record, error) {
	if e.opts.Schema == nil {
		return nil, ErrNoSchema
	}

	overlays := make([]SchemaFunc, len(variants))
	for i, name := range variants {
		fn, ok := e.opts.Variants[name]
		if !ok || fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingVariant, name)
		}
		overlays[i] = fn
	}

	log := e.logger()
	out := make([]Record, 0, max(count, 0))
	for x := 0; x < count; x++ {
		rec := make(Record)
		maps.Copy(rec, e.opts.Schema(e.opts.PRNG))
		for _, overlay := range overlays {
			maps.Copy(rec, overlay(e.opts.PRNG))
		}
		out = append(out, rec)

		log.Debugw("entity.made", map[string]any{
			"index":    x,
			"variants": variants,
			"fields":   len(rec),
			"state":    e.opts.PRNG.State(),
		})
	}
	return out, nil
}

// MakeOne builds a single record.
func (e *Entity) MakeOne(variants ...string) (Record, error) {
	recs, err := e.Make(1, variants...)
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

// Collapse returns the lone record of a one-record result, or the slice.
func Collapse(recs []Record) any {
	return rng.Collapse(recs)
}

func (e *Entity) logger() *logging.Logger {
	if !e.opts.Verbose {
		return nil
	}
	if e.opts.Logger != nil {
		return e.opts.Logger
	}
	e.opts.Logger = logging.NewLogger("debug").WithComponent("entity")
	return e.opts.Logger
}
