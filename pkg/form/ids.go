package form

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers for clothing items and saved sub-services.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID calls fn.
func (fn IDGeneratorFunc) NewID() string {
	return fn()
}

// UUIDGenerator issues random UUIDs.
var UUIDGenerator IDGenerator = IDGeneratorFunc(uuid.NewString)

// SequenceGenerator returns a generator that issues prefix1, prefix2, ...
// It is deterministic and intended for tests and fixtures.
func SequenceGenerator(prefix string) IDGenerator {
	var n atomic.Int64
	return IDGeneratorFunc(func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	})
}
