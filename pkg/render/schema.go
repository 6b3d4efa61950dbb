package render

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-serviceform/pkg/catalog"
)

// pricePattern accepts an empty string or a non-negative decimal.
const pricePattern = `^([0-9]+(\.[0-9]+)?)?$`

// PayloadSchema describes the JSON payload emitted by JSONEncoder, with the
// enumerated values taken from c.
func PayloadSchema(c catalog.Catalog) *openapi3.Schema {
	price := func() *openapi3.Schema {
		return openapi3.NewStringSchema().WithPattern(pricePattern)
	}
	id := func() *openapi3.Schema {
		return openapi3.NewStringSchema().WithMinLength(1)
	}

	washTypes := make([]any, 0, len(catalog.WashTypes()))
	for _, w := range catalog.WashTypes() {
		washTypes = append(washTypes, string(w))
	}
	pricingTypes := make([]any, 0, len(catalog.PricingTypes()))
	for _, p := range catalog.PricingTypes() {
		pricingTypes = append(pricingTypes, string(p))
	}

	item := openapi3.NewObjectSchema().
		WithProperty("id", id()).
		WithProperty("type", openapi3.NewStringSchema().WithEnum(toAny(c.ClothingTypes)...)).
		WithProperty("standardPrice", price()).
		WithProperty("expressPrice", price())
	item.Required = []string{"id", "type", "standardPrice", "expressPrice"}

	subService := openapi3.NewObjectSchema().
		WithProperty("id", id()).
		WithProperty("subServiceName", openapi3.NewStringSchema().WithEnum(toAny(c.SubServices)...)).
		WithProperty("washTypes", openapi3.NewArraySchema().
			WithItems(openapi3.NewStringSchema().WithEnum(washTypes...)).
			WithMinItems(1).
			WithUniqueItems(true)).
		WithProperty("pricingType", openapi3.NewStringSchema().WithEnum(pricingTypes...)).
		WithProperty("standardPricePerKg", price()).
		WithProperty("expressPricePerKg", price()).
		WithProperty("clothingItems", openapi3.NewArraySchema().WithItems(item))
	subService.Required = []string{"id", "subServiceName", "washTypes", "pricingType", "clothingItems"}

	root := openapi3.NewObjectSchema().
		WithProperty("serviceName", openapi3.NewStringSchema().WithEnum(toAny(c.Services)...)).
		WithProperty("subServices", openapi3.NewArraySchema().WithItems(subService))
	root.Required = []string{"serviceName", "subServices"}
	root.Title = "Service"
	root.Description = "A laundry service with its priced sub-services."
	return root
}

// ValidatePayload checks an encoded JSON payload against PayloadSchema.
func ValidatePayload(c catalog.Catalog, data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("render: decode payload: %w", err)
	}
	if err := PayloadSchema(c).VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("render: payload does not match schema: %w", err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
