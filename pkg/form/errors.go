package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-serviceform/pkg/catalog"
)

var (
	// ErrNotEditing is returned by draft operations while the sub-service
	// form is closed.
	ErrNotEditing = errors.New("form: sub-service form is not open")
	// ErrAlreadyEditing is returned when opening a form that is already open.
	ErrAlreadyEditing = errors.New("form: sub-service form is already open")
	// ErrNoService is returned when opening a sub-service before a service
	// name is selected.
	ErrNoService = errors.New("form: service name is not selected")
	// ErrSubServiceLimit is returned when the configured variant accepts no
	// further sub-services.
	ErrSubServiceLimit = errors.New("form: sub-service limit reached")
	// ErrUnknownOption is returned for values outside the catalog.
	ErrUnknownOption = errors.New("form: unknown option")
)

// Field names a draft field that can carry a validation flag.
type Field string

const (
	FieldSubServiceName     Field = "subServiceName"
	FieldWashTypes          Field = "washTypes"
	FieldStandardPricePerKg Field = "standardPricePerKg"
	FieldExpressPricePerKg  Field = "expressPricePerKg"
	FieldClothingItems      Field = "clothingItems"
)

var fieldOrder = []Field{
	FieldSubServiceName,
	FieldWashTypes,
	FieldStandardPricePerKg,
	FieldExpressPricePerKg,
	FieldClothingItems,
}

// PricePerKgField returns the per-kilogram price field for w.
func PricePerKgField(w catalog.WashType) Field {
	return Field(string(w) + "PricePerKg")
}

func (f Field) rank() int {
	for i, candidate := range fieldOrder {
		if candidate == f {
			return i
		}
	}
	return len(fieldOrder)
}

// ErrorKey identifies one validation flag. It is either a FieldError or an
// ItemPriceError; both are comparable and usable as map keys.
type ErrorKey interface {
	// String returns the flat key form: the field name, or
	// "{itemID}_{washType}" for item prices.
	String() string
	errorKey()
}

// FieldError flags a draft-level field.
type FieldError struct {
	Field Field
}

func (e FieldError) String() string { return string(e.Field) }
func (FieldError) errorKey()        {}

// ItemPriceError flags a missing clothing item price for one wash type.
type ItemPriceError struct {
	ItemID   string
	WashType catalog.WashType
}

func (e ItemPriceError) String() string { return e.ItemID + "_" + string(e.WashType) }
func (ItemPriceError) errorKey()        {}

// FieldKey is shorthand for FieldError{Field: f}.
func FieldKey(f Field) ErrorKey {
	return FieldError{Field: f}
}

// ItemPriceKey is shorthand for ItemPriceError{ItemID: id, WashType: w}.
func ItemPriceKey(id string, w catalog.WashType) ErrorKey {
	return ItemPriceError{ItemID: id, WashType: w}
}

// ErrorSet maps validation flags to whether they are raised.
type ErrorSet map[ErrorKey]bool

// Has reports whether key is raised.
func (s ErrorSet) Has(key ErrorKey) bool {
	return s[key]
}

// HasField reports whether the field flag is raised.
func (s ErrorSet) HasField(f Field) bool {
	return s[FieldKey(f)]
}

// HasItemPrice reports whether the item price flag is raised.
func (s ErrorSet) HasItemPrice(id string, w catalog.WashType) bool {
	return s[ItemPriceKey(id, w)]
}

// Len returns the number of raised flags.
func (s ErrorSet) Len() int {
	n := 0
	for _, raised := range s {
		if raised {
			n++
		}
	}
	return n
}

// Empty reports whether no flag is raised.
func (s ErrorSet) Empty() bool {
	return s.Len() == 0
}

// Keys returns the raised flags. Field flags come first in form order,
// followed by item prices ordered by item id and wash type.
func (s ErrorSet) Keys() []ErrorKey {
	keys := make([]ErrorKey, 0, len(s))
	for key, raised := range s {
		if raised {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})
	return keys
}

// Strings returns the flat keys of the raised flags in Keys order.
func (s ErrorSet) Strings() []string {
	keys := s.Keys()
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = key.String()
	}
	return out
}

// Clone returns a copy holding only raised flags.
func (s ErrorSet) Clone() ErrorSet {
	if s.Empty() {
		return nil
	}
	out := make(ErrorSet, len(s))
	for key, raised := range s {
		if raised {
			out[key] = true
		}
	}
	return out
}

func lessKey(a, b ErrorKey) bool {
	fa, aIsField := a.(FieldError)
	fb, bIsField := b.(FieldError)
	switch {
	case aIsField && bIsField:
		return fa.Field.rank() < fb.Field.rank()
	case aIsField:
		return true
	case bIsField:
		return false
	}
	ia, _ := a.(ItemPriceError)
	ib, _ := b.(ItemPriceError)
	if ia.ItemID != ib.ItemID {
		return ia.ItemID < ib.ItemID
	}
	return ia.WashType.Rank() < ib.WashType.Rank()
}

// ValidationError is returned by a submission that failed validation.
type ValidationError struct {
	Errors ErrorSet
}

func (e *ValidationError) Error() string {
	if e == nil || e.Errors.Empty() {
		return "form: validation failed"
	}
	return fmt.Sprintf("form: validation failed: %s", strings.Join(e.Errors.Strings(), ", "))
}
