package render

import (
	"github.com/goliatone/go-serviceform/pkg/form"
)

// Encoder converts a composed service into a byte representation.
type Encoder interface {
	Name() string
	ContentType() string
	Encode(service form.Service) ([]byte, error)
}
