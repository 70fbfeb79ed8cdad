package fixture

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrzaf/makebelieve/internal/logging"
	"github.com/mmrzaf/makebelieve/pkg/entity"
	"github.com/mmrzaf/makebelieve/pkg/rng"
)

func userSchema(g *rng.Generator) entity.Record {
	id, err := g.Invoke("uuid4", nil)
	if err != nil {
		panic(err)
	}
	name, err := g.Invoke("firstName", nil)
	if err != nil {
		panic(err)
	}
	return entity.Record{
		"id":   id,
		"name": name,
		"age":  g.RandomInteger(rng.Between(18, 90)),
	}
}

func orderSchema(g *rng.Generator) entity.Record {
	status, err := rng.PickOne(g, []string{"pending", "paid", "shipped"})
	if err != nil {
		panic(err)
	}
	return entity.Record{"status": status, "total": g.Random(rng.Between(5, 500))}
}

func int64Ptr(v int64) *int64 { return &v }

func testPlan(seed int64, workers int) *Plan {
	return &Plan{
		Seed:    int64Ptr(seed),
		Workers: workers,
		Jobs: []Job{
			{Name: "users", Count: 25, Schema: userSchema},
			{
				Name:     "orders",
				Count:    40,
				Schema:   orderSchema,
				Variants: []string{"refunded"},
				VariantFuncs: map[string]entity.SchemaFunc{
					"refunded": func(*rng.Generator) entity.Record { return entity.Record{"status": "refunded"} },
				},
			},
			{Name: "audit", Count: 0, Schema: orderSchema},
		},
	}
}

func newTestExecutor() *Executor {
	return NewExecutor(logging.Discard())
}

func TestExecute_Reproducible(t *testing.T) {
	a, err := newTestExecutor().Execute(context.Background(), testPlan(11, 1))
	require.NoError(t, err)
	b, err := newTestExecutor().Execute(context.Background(), testPlan(11, 8))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint, "worker count must not change output")
	assert.Equal(t, a.Records, b.Records)

	c, err := newTestExecutor().Execute(context.Background(), testPlan(12, 4))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestExecute_ResultShape(t *testing.T) {
	res, err := newTestExecutor().Execute(context.Background(), testPlan(11, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(11), res.Seed)
	assert.Len(t, res.Records["users"], 25)
	assert.Len(t, res.Records["orders"], 40)
	assert.Empty(t, res.Records["audit"])
	for _, rec := range res.Records["orders"] {
		assert.Equal(t, "refunded", rec["status"])
	}

	assert.Equal(t, 3, res.Stats.JobsCompleted)
	assert.Equal(t, int64(65), res.Stats.TotalRecords)
	require.Len(t, res.Stats.JobStats, 3)
	assert.Equal(t, "users", res.Stats.JobStats[0].JobName)
	assert.Equal(t, deriveSeed(11, Job{Name: "users"}), res.Stats.JobStats[0].Seed)
}

func TestExecute_PinnedJobSeedMatchesStandaloneEntity(t *testing.T) {
	plan := &Plan{
		Seed: int64Ptr(1),
		Jobs: []Job{{Name: "orders", Count: 5, Schema: orderSchema, Seed: int64Ptr(123)}},
	}
	res, err := newTestExecutor().Execute(context.Background(), plan)
	require.NoError(t, err)

	e, err := entity.New(entity.WithPRNG(rng.MustNew(rng.WithSeed(123))), entity.WithSchema(orderSchema))
	require.NoError(t, err)
	want, err := e.Make(5)
	require.NoError(t, err)

	assert.Equal(t, want, res.Records["orders"])
}

func TestExecute_InvalidPlans(t *testing.T) {
	ex := newTestExecutor()
	plans := map[string]*Plan{
		"nil":       nil,
		"no name":   {Jobs: []Job{{Schema: orderSchema}}},
		"duplicate": {Jobs: []Job{{Name: "a", Schema: orderSchema}, {Name: "a", Schema: orderSchema}}},
		"no schema": {Jobs: []Job{{Name: "a"}}},
		"negative":  {Jobs: []Job{{Name: "a", Schema: orderSchema, Count: -1}}},
		"variant":   {Jobs: []Job{{Name: "a", Schema: orderSchema, Variants: []string{"ghost"}}}},
	}
	for name, plan := range plans {
		t.Run(name, func(t *testing.T) {
			_, err := ex.Execute(context.Background(), plan)
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}

	_, err := ex.Execute(context.Background(), plans["variant"])
	assert.ErrorIs(t, err, entity.ErrMissingVariant)
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExecutor().Execute(ctx, testPlan(1, 2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_JobErrorsPropagate(t *testing.T) {
	plan := &Plan{
		Seed: int64Ptr(1),
		Jobs: []Job{{
			Name:  "broken",
			Count: 1,
			Schema: func(g *rng.Generator) entity.Record {
				_, err := g.Invoke("missing", nil)
				return entity.Record{"err": fmt.Sprint(err)}
			},
		}},
	}
	res, err := newTestExecutor().Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.Contains(t, res.Records["broken"][0]["err"], "plugin not found")
}

func TestFingerprint_StableAcrossMapOrder(t *testing.T) {
	a := map[string][]entity.Record{
		"x": {{"a": 1, "b": "two"}},
		"y": {{"c": 3.5}},
	}
	b := map[string][]entity.Record{
		"y": {{"c": 3.5}},
		"x": {{"b": "two", "a": 1}},
	}
	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64)

	_, err = Fingerprint(map[string][]entity.Record{"bad": {{"fn": func() {}}}})
	assert.Error(t, err)
}
