package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// idByteLength yields 32 hex characters, enough to hand out as opaque
// external references.
const idByteLength = 16

// Generator creates IDs for newly persisted entities.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, idByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
