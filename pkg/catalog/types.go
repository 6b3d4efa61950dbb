package catalog

// WashType is a service tier. Each selected tier requires its own price.
type WashType string

const (
	WashStandard WashType = "standard"
	WashExpress  WashType = "express"
)

var washTypeOrder = []WashType{WashStandard, WashExpress}

// WashTypes returns every wash type in canonical order.
func WashTypes() []WashType {
	return append([]WashType(nil), washTypeOrder...)
}

// Valid reports whether w is a known wash type.
func (w WashType) Valid() bool {
	return w.Rank() >= 0
}

// Rank returns the canonical position of w, or -1 when unknown.
func (w WashType) Rank() int {
	for i, candidate := range washTypeOrder {
		if candidate == w {
			return i
		}
	}
	return -1
}

// Label returns the display label used by front-ends.
func (w WashType) Label() string {
	switch w {
	case WashStandard:
		return "Standard Wash"
	case WashExpress:
		return "Express Wash"
	default:
		return string(w)
	}
}

// PricingType selects between a flat per-kilogram rate and itemized pricing.
type PricingType string

const (
	PricingPerKg         PricingType = "perKg"
	PricingClothingItems PricingType = "clothingItems"
)

var pricingTypeOrder = []PricingType{PricingPerKg, PricingClothingItems}

// PricingTypes returns every pricing type in display order.
func PricingTypes() []PricingType {
	return append([]PricingType(nil), pricingTypeOrder...)
}

// Valid reports whether p is a known pricing type.
func (p PricingType) Valid() bool {
	for _, candidate := range pricingTypeOrder {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the display label used by front-ends.
func (p PricingType) Label() string {
	switch p {
	case PricingPerKg:
		return "Per KG"
	case PricingClothingItems:
		return "Clothing Items"
	default:
		return string(p)
	}
}
