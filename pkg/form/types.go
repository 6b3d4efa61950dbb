package form

import (
	"github.com/goliatone/go-serviceform/pkg/catalog"
)

// WashTypes is a set of wash types kept in canonical order (standard before
// express) so toggling is order independent.
type WashTypes []catalog.WashType

// Has reports whether w is selected.
func (ws WashTypes) Has(w catalog.WashType) bool {
	for _, candidate := range ws {
		if candidate == w {
			return true
		}
	}
	return false
}

// Toggle returns a copy with w added when absent or removed when present.
// Unknown wash types leave the set unchanged.
func (ws WashTypes) Toggle(w catalog.WashType) WashTypes {
	if !w.Valid() {
		return ws.Clone()
	}
	out := make(WashTypes, 0, len(ws)+1)
	if ws.Has(w) {
		for _, candidate := range ws {
			if candidate != w {
				out = append(out, candidate)
			}
		}
	} else {
		for _, candidate := range catalog.WashTypes() {
			if candidate == w || ws.Has(candidate) {
				out = append(out, candidate)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns a copy that shares no backing array with ws.
func (ws WashTypes) Clone() WashTypes {
	if len(ws) == 0 {
		return nil
	}
	return append(WashTypes(nil), ws...)
}

// Strings returns the wash type identifiers.
func (ws WashTypes) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}
	return out
}

// ClothingItem is one entry of an itemized price list. ID is assigned on
// creation and never changes.
type ClothingItem struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	StandardPrice string `json:"standardPrice"`
	ExpressPrice  string `json:"expressPrice"`
}

// Price returns the item price for w.
func (i ClothingItem) Price(w catalog.WashType) string {
	switch w {
	case catalog.WashStandard:
		return i.StandardPrice
	case catalog.WashExpress:
		return i.ExpressPrice
	default:
		return ""
	}
}

// WithPrice returns a copy of i with the price for w replaced.
func (i ClothingItem) WithPrice(w catalog.WashType, value string) ClothingItem {
	switch w {
	case catalog.WashStandard:
		i.StandardPrice = value
	case catalog.WashExpress:
		i.ExpressPrice = value
	}
	return i
}

// Draft is the editable state of one sub-service.
type Draft struct {
	SubServiceName     string              `json:"subServiceName"`
	WashTypes          WashTypes           `json:"washTypes"`
	PricingType        catalog.PricingType `json:"pricingType"`
	StandardPricePerKg string              `json:"standardPricePerKg"`
	ExpressPricePerKg  string              `json:"expressPricePerKg"`
	ClothingItems      []ClothingItem      `json:"clothingItems"`
}

// NewDraft returns the empty draft a freshly opened sub-service form starts
// from.
func NewDraft() Draft {
	return Draft{PricingType: catalog.PricingPerKg}
}

// PricePerKg returns the flat rate for w.
func (d Draft) PricePerKg(w catalog.WashType) string {
	switch w {
	case catalog.WashStandard:
		return d.StandardPricePerKg
	case catalog.WashExpress:
		return d.ExpressPricePerKg
	default:
		return ""
	}
}

// Item returns the clothing item with the given id.
func (d Draft) Item(id string) (ClothingItem, bool) {
	for _, item := range d.ClothingItems {
		if item.ID == id {
			return item, true
		}
	}
	return ClothingItem{}, false
}

// HasClothingType reports whether an item of the given type exists.
func (d Draft) HasClothingType(clothingType string) bool {
	for _, item := range d.ClothingItems {
		if item.Type == clothingType {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	d.WashTypes = d.WashTypes.Clone()
	d.ClothingItems = cloneItems(d.ClothingItems)
	return d
}

// SavedSubService is a validated draft frozen into an immutable record.
type SavedSubService struct {
	ID                 string              `json:"id"`
	SubServiceName     string              `json:"subServiceName"`
	WashTypes          WashTypes           `json:"washTypes"`
	PricingType        catalog.PricingType `json:"pricingType"`
	StandardPricePerKg string              `json:"standardPricePerKg"`
	ExpressPricePerKg  string              `json:"expressPricePerKg"`
	ClothingItems      []ClothingItem      `json:"clothingItems"`
}

// Snapshot freezes d into a SavedSubService identified by id. The wash types
// and item list are copied so later edits to d cannot reach the record.
func Snapshot(d Draft, id string) SavedSubService {
	return SavedSubService{
		ID:                 id,
		SubServiceName:     d.SubServiceName,
		WashTypes:          d.WashTypes.Clone(),
		PricingType:        d.PricingType,
		StandardPricePerKg: d.StandardPricePerKg,
		ExpressPricePerKg:  d.ExpressPricePerKg,
		ClothingItems:      cloneItems(d.ClothingItems),
	}
}

// Draft returns the record's field values as a draft.
func (s SavedSubService) Draft() Draft {
	return Draft{
		SubServiceName:     s.SubServiceName,
		WashTypes:          s.WashTypes.Clone(),
		PricingType:        s.PricingType,
		StandardPricePerKg: s.StandardPricePerKg,
		ExpressPricePerKg:  s.ExpressPricePerKg,
		ClothingItems:      cloneItems(s.ClothingItems),
	}
}

func (s SavedSubService) clone() SavedSubService {
	s.WashTypes = s.WashTypes.Clone()
	s.ClothingItems = cloneItems(s.ClothingItems)
	return s
}

// Service is the composed record: a service name and its saved sub-services
// in save order.
type Service struct {
	Name        string            `json:"serviceName"`
	SubServices []SavedSubService `json:"subServices"`
}

func cloneItems(items []ClothingItem) []ClothingItem {
	if len(items) == 0 {
		return nil
	}
	return append([]ClothingItem(nil), items...)
}

func cloneSaved(saved []SavedSubService) []SavedSubService {
	if len(saved) == 0 {
		return nil
	}
	out := make([]SavedSubService, len(saved))
	for i, s := range saved {
		out[i] = s.clone()
	}
	return out
}
