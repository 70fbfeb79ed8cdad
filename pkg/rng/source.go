package rng

import "math/rand"

type source struct {
	g *Generator
}

// Source adapts g to math/rand. Each Int63 consumes three draws; Seed
// overwrites the state register.
func (g *Generator) Source() rand.Source {
	return &source{g: g}
}

func (s *source) Int63() int64 {
	hi := s.g.unsignedNext()
	mid := s.g.unsignedNext()
	lo := s.g.unsignedNext()
	return int64(hi)<<32 | int64(mid)<<1 | int64(lo&1)
}

func (s *source) Seed(seed int64) {
	s.g.state = seed
}

// Read fills p with one draw per byte, keeping the low eight bits. It never
// fails.
func (g *Generator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(g.unsignedNext())
	}
	return len(p), nil
}

// unsignedNext returns the magnitude of the next state, which is below 2^31.
func (g *Generator) unsignedNext() uint32 {
	v := g.Next()
	if v < 0 {
		v = -v
	}
	return uint32(v)
}
