package render_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/render"
)

func sampleService() form.Service {
	return form.Service{
		Name: "Core Laundry Services",
		SubServices: []form.SavedSubService{
			{
				ID:                 "s1",
				SubServiceName:     "Wash & Fold",
				WashTypes:          form.WashTypes{catalog.WashStandard, catalog.WashExpress},
				PricingType:        catalog.PricingPerKg,
				StandardPricePerKg: "50",
				ExpressPricePerKg:  "80.5",
			},
			{
				ID:             "s2",
				SubServiceName: "Dry Cleaning",
				WashTypes:      form.WashTypes{catalog.WashExpress},
				PricingType:    catalog.PricingClothingItems,
				ClothingItems: []form.ClothingItem{
					{ID: "i1", Type: "Suit", ExpressPrice: "120"},
				},
			},
		},
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := render.NewDefaultRegistry()
	if diff := cmp.Diff([]string{"form", "json", "pretty"}, reg.List()); diff != "" {
		t.Fatalf("encoders mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(render.JSONEncoder{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := reg.Get("xml"); err == nil {
		t.Fatalf("expected missing encoder error")
	}
	enc, err := reg.Get("form")
	if err != nil || enc.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected form encoder %v, %v", enc, err)
	}
}

func TestJSONEncoder_RoundTrip(t *testing.T) {
	out, err := render.JSONEncoder{}.Encode(sampleService())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var got render.Payload
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(render.NewPayload(sampleService()), got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(out), `"clothingItems":[]`) {
		t.Fatalf("empty item lists should encode as [], got %s", out)
	}
}

func TestFormEncoder(t *testing.T) {
	out, err := render.FormEncoder{}.Encode(sampleService())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	values, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	checks := map[string]string{
		"serviceName":                          "Core Laundry Services",
		"subServices[0].washTypes[1]":          "express",
		"subServices[0].expressPricePerKg":     "80.5",
		"subServices[1].clothingItems[0].type": "Suit",
		"subServices[1].pricingType":           "clothingItems",
	}
	for key, want := range checks {
		if got := values.Get(key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestPrettyEncoder(t *testing.T) {
	out, err := render.PrettyEncoder{}.Encode(sampleService())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := strings.Join([]string{
		"Service: Core Laundry Services",
		"1. Wash & Fold (standard, express)",
		"   Pricing: Per KG",
		"   Standard Wash: 50.00 / kg",
		"   Express Wash: 80.50 / kg",
		"2. Dry Cleaning (express)",
		"   Pricing: Clothing Items",
		"   Suit: express 120.00",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}

	empty, err := render.PrettyEncoder{}.Encode(form.Service{Name: "Fabric Care"})
	if err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	if string(empty) != "Service: Fabric Care\nNo sub-services\n" {
		t.Fatalf("unexpected empty output %q", empty)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"":      "-",
		"7":     "7.00",
		"12.5":  "12.50",
		"0.125": "0.13",
		"abc":   "abc",
	}
	for raw, want := range cases {
		if got := render.FormatPrice(raw); got != want {
			t.Fatalf("FormatPrice(%q) = %q, want %q", raw, got, want)
		}
	}
}
