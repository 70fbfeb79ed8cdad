// Package plugins holds ready-made rng plugins for common fixture values.
// Every plugin draws only from the generator it is invoked on, so output is
// reproducible per seed.
package plugins

import "github.com/mmrzaf/makebelieve/pkg/rng"

// Defaults returns the built-in plugins in registration order.
func Defaults() []rng.Plugin {
	return []rng.Plugin{
		{Name: "firstName", Func: fakerPlugin(firstName)},
		{Name: "lastName", Func: fakerPlugin(lastName)},
		{Name: "name", Func: fakerPlugin(fullName)},
		{Name: "email", Func: fakerPlugin(email)},
		{Name: "username", Func: fakerPlugin(username)},
		{Name: "word", Func: fakerPlugin(word)},
		{Name: "sentence", Func: fakerPlugin(sentence)},
		{Name: "uuid4", Func: UUID4},
		{Name: "choice", Func: Choice},
		{Name: "intRange", Func: IntRange},
		{Name: "floatRange", Func: FloatRange},
		{Name: "normal", Func: Normal},
		{Name: "timeSeries", Func: TimeSeries},
	}
}

// Register adds every default plugin to g.
func Register(g *rng.Generator) *rng.Generator {
	return g.RegisterAll(Defaults()...)
}
