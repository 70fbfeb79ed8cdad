package plugins

import (
	"github.com/google/uuid"

	"github.com/mmrzaf/makebelieve/pkg/rng"
)

// UUID4 builds a version 4 UUID from sixteen generator draws.
func UUID4(g *rng.Generator, _ any) (any, error) {
	uuidBytes := make([]byte, 16)
	if _, err := g.Read(uuidBytes); err != nil {
		return nil, err
	}
	uuidBytes[6] = (uuidBytes[6] & 0x0f) | 0x40
	uuidBytes[8] = (uuidBytes[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(uuidBytes)
	if err != nil {
		return nil, err
	}
	return u.String(), nil
}
