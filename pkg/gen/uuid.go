package gen

import (
	"github.com/google/uuid"
)

type UUIDGenerator func() uuid.UUID

// UUID returns a random (v4) generator. Scratch file names must not be
// predictable across concurrent requests.
func UUID() UUIDGenerator {
	return func() uuid.UUID {
		return uuid.New()
	}
}

// Fixed always returns id. Used by tests that assert on generated names.
func Fixed(id uuid.UUID) UUIDGenerator {
	return func() uuid.UUID {
		return id
	}
}

func (g UUIDGenerator) Next() uuid.UUID {
	if g == nil {
		return uuid.Nil
	}

	return g()
}
