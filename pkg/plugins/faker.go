package plugins

import (
	"math/rand"
	"sync"
	"time"

	"github.com/go-faker/faker/v4"

	"github.com/mmrzaf/makebelieve/pkg/rng"
)

// faker keeps its random source in a package variable, so calls are
// serialized and the source is pointed at the invoking generator for the
// duration of one call.
var fakerMu sync.Mutex

func fakerPlugin(fn func() string) rng.PluginFunc {
	return func(g *rng.Generator, _ any) (any, error) {
		fakerMu.Lock()
		defer fakerMu.Unlock()

		faker.SetRandomSource(g.Source())
		defer faker.SetRandomSource(faker.NewSafeSource(rand.NewSource(time.Now().UnixNano())))

		return fn(), nil
	}
}

func firstName() string { return faker.FirstName() }
func lastName() string  { return faker.LastName() }
func fullName() string  { return faker.Name() }
func email() string     { return faker.Email() }
func username() string  { return faker.Username() }
func word() string      { return faker.Word() }
func sentence() string  { return faker.Sentence() }
