package form

import (
	"strings"

	"github.com/goliatone/go-serviceform/pkg/catalog"
)

// The transitions below are pure: each returns a new value and leaves the
// receiver and every untouched slice of state as they were.

// SetSubServiceName returns d with the sub-service name replaced.
func (d Draft) SetSubServiceName(name string) Draft {
	out := d.Clone()
	out.SubServiceName = name
	return out
}

// ToggleWashType returns d with w added when absent or removed when present.
func (d Draft) ToggleWashType(w catalog.WashType) Draft {
	out := d.Clone()
	out.WashTypes = d.WashTypes.Toggle(w)
	return out
}

// SetPricingType returns d with the pricing type replaced. Prices entered
// for the other pricing type are kept.
func (d Draft) SetPricingType(p catalog.PricingType) Draft {
	out := d.Clone()
	out.PricingType = p
	return out
}

// SetPrice returns d with the per-kilogram price for w replaced.
func (d Draft) SetPrice(w catalog.WashType, value string) Draft {
	out := d.Clone()
	switch w {
	case catalog.WashStandard:
		out.StandardPricePerKg = value
	case catalog.WashExpress:
		out.ExpressPricePerKg = value
	}
	return out
}

// AddClothingItem appends an item of the given type with empty prices. The
// type is trimmed first. It is a no-op when the type is empty or already
// listed, or when id is empty or already in use.
func (d Draft) AddClothingItem(clothingType, id string) Draft {
	clothingType = strings.TrimSpace(clothingType)
	if clothingType == "" || strings.TrimSpace(id) == "" {
		return d.Clone()
	}
	if d.HasClothingType(clothingType) {
		return d.Clone()
	}
	if _, exists := d.Item(id); exists {
		return d.Clone()
	}
	out := d.Clone()
	out.ClothingItems = append(out.ClothingItems, ClothingItem{
		ID:   id,
		Type: clothingType,
	})
	return out
}

// RemoveClothingItem returns d without the item identified by id.
func (d Draft) RemoveClothingItem(id string) Draft {
	out := d.Clone()
	if _, exists := d.Item(id); !exists {
		return out
	}
	kept := make([]ClothingItem, 0, len(d.ClothingItems))
	for _, item := range d.ClothingItems {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	out.ClothingItems = cloneItems(kept)
	return out
}

// UpdateClothingItemPrice returns d with the price for w of the item
// identified by id replaced. Unknown ids leave d unchanged.
func (d Draft) UpdateClothingItemPrice(id string, w catalog.WashType, value string) Draft {
	out := d.Clone()
	for i, item := range out.ClothingItems {
		if item.ID == id {
			out.ClothingItems[i] = item.WithPrice(w, value)
			break
		}
	}
	return out
}

// Phase is the state of the sub-service form.
type Phase int

const (
	// PhaseClosed means no sub-service is being edited.
	PhaseClosed Phase = iota
	// PhaseEditing means a draft is open for input.
	PhaseEditing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Form is the complete state of one service entry screen.
type Form struct {
	ServiceName string
	Phase       Phase
	Draft       Draft
	Saved       []SavedSubService
	Errors      ErrorSet
}

// NewForm returns the initial empty form.
func NewForm() Form {
	return Form{Draft: NewDraft()}
}

// Clone returns a deep copy of f.
func (f Form) Clone() Form {
	f.Draft = f.Draft.Clone()
	f.Saved = cloneSaved(f.Saved)
	f.Errors = f.Errors.Clone()
	return f
}

// SetServiceName returns f with the parent service name replaced.
func (f Form) SetServiceName(name string) Form {
	out := f.Clone()
	out.ServiceName = name
	return out
}

// WithDraft returns f with the draft replaced.
func (f Form) WithDraft(d Draft) Form {
	out := f.Clone()
	out.Draft = d.Clone()
	return out
}

// WithErrors returns f with the displayed validation flags replaced.
func (f Form) WithErrors(errs ErrorSet) Form {
	out := f.Clone()
	out.Errors = errs.Clone()
	return out
}

// Open moves f into editing with an empty draft. An open form is returned
// unchanged.
func (f Form) Open() Form {
	out := f.Clone()
	if out.Phase == PhaseEditing {
		return out
	}
	out.Phase = PhaseEditing
	out.Draft = NewDraft()
	out.Errors = nil
	return out
}

// Cancel discards the draft without validating it and closes the form.
func (f Form) Cancel() Form {
	out := f.Clone()
	out.Phase = PhaseClosed
	out.Draft = NewDraft()
	out.Errors = nil
	return out
}

// Commit appends saved to the service, resets the draft and closes the form.
func (f Form) Commit(saved SavedSubService) Form {
	out := f.Clone()
	out.Saved = append(out.Saved, saved.clone())
	out.Phase = PhaseClosed
	out.Draft = NewDraft()
	out.Errors = nil
	return out
}

// Service returns the composed service record.
func (f Form) Service() Service {
	return Service{
		Name:        f.ServiceName,
		SubServices: cloneSaved(f.Saved),
	}
}
