package idgen

import "github.com/google/uuid"

// UUIDGenerator - боевой генератор идентификаторов
// В тестах вместо него подставляется детерминированная последовательность
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}
