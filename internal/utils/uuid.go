package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for threat-event
// correlation IDs. V7 keeps event IDs roughly sortable by creation time;
// the random fallback only fires if the system clock is unusable.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
