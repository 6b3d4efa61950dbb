package render

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
)

// Payload is the wire shape of a composed service. Lists are never null.
type Payload struct {
	ServiceName string              `json:"serviceName"`
	SubServices []SubServicePayload `json:"subServices"`
}

// SubServicePayload is the wire shape of a saved sub-service.
type SubServicePayload struct {
	ID                 string              `json:"id"`
	SubServiceName     string              `json:"subServiceName"`
	WashTypes          []string            `json:"washTypes"`
	PricingType        string              `json:"pricingType"`
	StandardPricePerKg string              `json:"standardPricePerKg"`
	ExpressPricePerKg  string              `json:"expressPricePerKg"`
	ClothingItems      []form.ClothingItem `json:"clothingItems"`
}

// NewPayload converts a service into its wire shape.
func NewPayload(service form.Service) Payload {
	p := Payload{
		ServiceName: service.Name,
		SubServices: make([]SubServicePayload, 0, len(service.SubServices)),
	}
	for _, sub := range service.SubServices {
		items := make([]form.ClothingItem, 0, len(sub.ClothingItems))
		items = append(items, sub.ClothingItems...)
		p.SubServices = append(p.SubServices, SubServicePayload{
			ID:                 sub.ID,
			SubServiceName:     sub.SubServiceName,
			WashTypes:          sub.WashTypes.Strings(),
			PricingType:        string(sub.PricingType),
			StandardPricePerKg: sub.StandardPricePerKg,
			ExpressPricePerKg:  sub.ExpressPricePerKg,
			ClothingItems:      items,
		})
	}
	return p
}

// JSONEncoder emits application/json payloads.
type JSONEncoder struct {
	Indent bool
}

func (JSONEncoder) Name() string        { return "json" }
func (JSONEncoder) ContentType() string { return "application/json" }

// Encode implements Encoder.
func (e JSONEncoder) Encode(service form.Service) ([]byte, error) {
	payload := NewPayload(service)
	if e.Indent {
		return json.MarshalIndent(payload, "", "  ")
	}
	return json.Marshal(payload)
}

// FormEncoder emits application/x-www-form-urlencoded payloads with dotted
// keys and bracketed indices, e.g. subServices[0].washTypes[1]=express.
type FormEncoder struct{}

func (FormEncoder) Name() string        { return "form" }
func (FormEncoder) ContentType() string { return "application/x-www-form-urlencoded" }

// Encode implements Encoder.
func (FormEncoder) Encode(service form.Service) ([]byte, error) {
	payload := NewPayload(service)
	values := url.Values{}
	values.Set("serviceName", payload.ServiceName)
	for i, sub := range payload.SubServices {
		prefix := fmt.Sprintf("subServices[%d].", i)
		values.Set(prefix+"id", sub.ID)
		values.Set(prefix+"subServiceName", sub.SubServiceName)
		for j, w := range sub.WashTypes {
			values.Set(fmt.Sprintf("%swashTypes[%d]", prefix, j), w)
		}
		values.Set(prefix+"pricingType", sub.PricingType)
		values.Set(prefix+"standardPricePerKg", sub.StandardPricePerKg)
		values.Set(prefix+"expressPricePerKg", sub.ExpressPricePerKg)
		for j, item := range sub.ClothingItems {
			itemPrefix := fmt.Sprintf("%sclothingItems[%d].", prefix, j)
			values.Set(itemPrefix+"id", item.ID)
			values.Set(itemPrefix+"type", item.Type)
			values.Set(itemPrefix+"standardPrice", item.StandardPrice)
			values.Set(itemPrefix+"expressPrice", item.ExpressPrice)
		}
	}
	return []byte(values.Encode()), nil
}

// PrettyEncoder emits a human-friendly text summary with prices shown to two
// decimal places.
type PrettyEncoder struct{}

func (PrettyEncoder) Name() string        { return "pretty" }
func (PrettyEncoder) ContentType() string { return "text/plain" }

// Encode implements Encoder.
func (PrettyEncoder) Encode(service form.Service) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Service: %s\n", service.Name)
	if len(service.SubServices) == 0 {
		b.WriteString("No sub-services\n")
		return []byte(b.String()), nil
	}
	for i, sub := range service.SubServices {
		writeSubService(&b, i+1, sub)
	}
	return []byte(b.String()), nil
}

// SummaryLine is the one-line listing of a saved sub-service, e.g.
// "1. Wash & Fold (standard, express)".
func SummaryLine(index int, sub form.SavedSubService) string {
	return fmt.Sprintf("%d. %s (%s)", index, sub.SubServiceName, strings.Join(sub.WashTypes.Strings(), ", "))
}

func writeSubService(b *strings.Builder, index int, sub form.SavedSubService) {
	b.WriteString(SummaryLine(index, sub))
	b.WriteString("\n")
	fmt.Fprintf(b, "   Pricing: %s\n", sub.PricingType.Label())

	switch sub.PricingType {
	case catalog.PricingPerKg:
		for _, w := range sub.WashTypes {
			fmt.Fprintf(b, "   %s: %s / kg\n", w.Label(), FormatPrice(sub.Draft().PricePerKg(w)))
		}
	case catalog.PricingClothingItems:
		for _, item := range sub.ClothingItems {
			parts := make([]string, 0, len(sub.WashTypes))
			for _, w := range sub.WashTypes {
				parts = append(parts, fmt.Sprintf("%s %s", washLabel(w), FormatPrice(item.Price(w))))
			}
			fmt.Fprintf(b, "   %s: %s\n", item.Type, strings.Join(parts, ", "))
		}
	}
}

// FormatPrice renders a decimal price string with two decimal places. Values
// that do not parse are returned unchanged.
func FormatPrice(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "-"
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return raw
	}
	return d.StringFixed(2)
}
