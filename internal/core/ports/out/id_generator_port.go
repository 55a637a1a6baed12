package out

import "github.com/google/uuid"

// IDGeneratorPort внедряется везде, где нужны новые идентификаторы,
// чтобы тесты могли подставить детерминированную последовательность
type IDGeneratorPort interface {
	NewID() uuid.UUID
}
