package form

import (
	"strings"

	"github.com/goliatone/go-serviceform/pkg/catalog"
)

// Validate checks d and returns every raised flag. Rules are evaluated
// independently; the draft is valid when the returned set is empty.
//
//   - a missing sub-service name raises subServiceName
//   - an empty wash type set raises washTypes
//   - per-kg pricing raises {washType}PricePerKg for each selected wash type
//     without a price
//   - itemized pricing raises clothingItems when no item exists, and
//     {itemID}_{washType} for each item lacking a selected wash type's price
func Validate(d Draft) ErrorSet {
	errs := make(ErrorSet)

	if missing(d.SubServiceName) {
		errs[FieldKey(FieldSubServiceName)] = true
	}
	if len(d.WashTypes) == 0 {
		errs[FieldKey(FieldWashTypes)] = true
	}

	switch d.PricingType {
	case catalog.PricingPerKg:
		for _, w := range catalog.WashTypes() {
			if d.WashTypes.Has(w) && missing(d.PricePerKg(w)) {
				errs[FieldKey(PricePerKgField(w))] = true
			}
		}
	case catalog.PricingClothingItems:
		if len(d.ClothingItems) == 0 {
			errs[FieldKey(FieldClothingItems)] = true
		}
		for _, item := range d.ClothingItems {
			for _, w := range catalog.WashTypes() {
				if d.WashTypes.Has(w) && missing(item.Price(w)) {
					errs[ItemPriceKey(item.ID, w)] = true
				}
			}
		}
	}

	return errs
}

func missing(value string) bool {
	return strings.TrimSpace(value) == ""
}
