package tui

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/notify"
	"github.com/goliatone/go-serviceform/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) consumed() bool {
	return s.inputPos == len(s.inputs) &&
		s.selectPos == len(s.selectIdx) &&
		s.multiPos == len(s.multiIdx)
}

func newTestRenderer(t *testing.T, driver PromptDriver, options ...Option) *Renderer {
	t.Helper()
	base := []Option{
		WithPromptDriver(driver),
		WithSessionOptions(form.WithIDGenerator(form.SequenceGenerator("id-"))),
	}
	r, err := New(append(base, options...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func decodePayload(t *testing.T, out []byte) render.Payload {
	t.Helper()
	var payload render.Payload
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return payload
}

func TestRender_PerKgSubService(t *testing.T) {
	driver := &stubDriver{
		// service, add, sub-service, pricing, save, finish
		selectIdx: []int{0, 0, 0, 0, 0, 1},
		multiIdx:  [][]int{{0, 1}},
		inputs:    []string{"50", " 80 "},
	}
	r := newTestRenderer(t, driver)

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := render.Payload{
		ServiceName: "Core Laundry Services",
		SubServices: []render.SubServicePayload{
			{
				ID:                 "id-1",
				SubServiceName:     "Wash & Fold",
				WashTypes:          []string{"standard", "express"},
				PricingType:        "perKg",
				StandardPricePerKg: "50",
				ExpressPricePerKg:  "80",
				ClothingItems:      []form.ClothingItem{},
			},
		},
	}
	if diff := cmp.Diff(want, decodePayload(t, out)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !driver.consumed() {
		t.Fatalf("prompts not consumed as expected")
	}
	if err := render.ValidatePayload(catalog.Default(), out); err != nil {
		t.Fatalf("output does not match schema: %v", err)
	}
}

func TestRender_RepromptsAfterValidationFailure(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			0, 0, // service, add
			1, 0, 0, // sub-service, pricing, save (fails)
			1, 0, 0, // sub-service, pricing, save
			1, // finish
		},
		multiIdx: [][]int{{}, {0}},
		inputs:   []string{"-2", "30"},
	}
	recorder := &notify.Recorder{}
	r := newTestRenderer(t, driver, WithNotifier(recorder))

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	payload := decodePayload(t, out)
	if len(payload.SubServices) != 1 || payload.SubServices[0].StandardPricePerKg != "30" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	for _, msg := range []string{
		"✗ Validation Error: Please fill in all required fields.",
		"✗ Please select at least one wash type",
		"✗ price cannot be negative",
		"» Sub-Service Saved Successfully: You can now add another sub-service.",
		"  1. Dry Cleaning (standard)",
	} {
		if !slices.Contains(driver.infoMessages, msg) {
			t.Fatalf("missing info message %q in %q", msg, driver.infoMessages)
		}
	}

	want := []notify.Toast{notify.ValidationFailed, notify.SubServiceSaved}
	if diff := cmp.Diff(want, recorder.Toasts); diff != "" {
		t.Fatalf("toasts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ItemizedSubService(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{
			1, 0, // service, add
			1, 1, // Dry Cleaning, clothing items
			0, 5, // add Suit
			0, 0, // add Shirt
			1, 1, // remove Shirt
			2,    // done
			0, 1, // save, finish
		},
		multiIdx: [][]int{{1}},
		inputs:   []string{"120"},
	}
	r := newTestRenderer(t, driver)

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := render.Payload{
		ServiceName: "Shoe Cleaning",
		SubServices: []render.SubServicePayload{
			{
				ID:             "id-3",
				SubServiceName: "Dry Cleaning",
				WashTypes:      []string{"express"},
				PricingType:    "clothingItems",
				ClothingItems: []form.ClothingItem{
					{ID: "id-1", Type: "Suit", ExpressPrice: "120"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, decodePayload(t, out)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !driver.consumed() {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestRender_SingleVariantSaveService(t *testing.T) {
	driver := &stubDriver{
		// service, sub-service, pricing, "Save Service"
		selectIdx: []int{0, 0, 0, 1},
		multiIdx:  [][]int{{0}},
		inputs:    []string{"12"},
	}
	r := newTestRenderer(t, driver,
		WithOutputFormat(OutputFormatPrettyText),
		WithSessionOptions(form.WithVariant(form.VariantSingle)),
	)

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "Service: Core Laundry Services\n" +
		"1. Wash & Fold (standard)\n" +
		"   Pricing: Per KG\n" +
		"   Standard Wash: 12.00 / kg\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_CancelDiscardsDraft(t *testing.T) {
	driver := &stubDriver{
		// service, add, sub-service, pricing, cancel, finish
		selectIdx: []int{0, 0, 0, 0, 1, 1},
		multiIdx:  [][]int{{0}},
		inputs:    []string{"5"},
	}
	recorder := &notify.Recorder{}
	r := newTestRenderer(t, driver, WithNotifier(recorder))

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := decodePayload(t, out); len(got.SubServices) != 0 {
		t.Fatalf("expected no sub-services, got %+v", got.SubServices)
	}
	if len(recorder.Toasts) != 0 {
		t.Fatalf("cancel should not raise toasts, got %+v", recorder.Toasts)
	}
}

func TestRender_DiscardService(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0, 2}}
	r := newTestRenderer(t, driver)

	if _, err := r.Render(context.Background()); !errors.Is(err, ErrDiscarded) {
		t.Fatalf("expected ErrDiscarded, got %v", err)
	}
}

type abortingDriver struct {
	stubDriver
}

func (a *abortingDriver) Select(context.Context, SelectConfig) (int, error) {
	return 0, ErrAborted
}

func TestRender_Aborted(t *testing.T) {
	r := newTestRenderer(t, &abortingDriver{})
	if _, err := r.Render(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_SelectionOutOfRange(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{42}}
	r := newTestRenderer(t, driver)
	if _, err := r.Render(context.Background()); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestNew_UnknownOutputFormat(t *testing.T) {
	_, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("xml"))
	if err == nil {
		t.Fatalf("expected error for unknown output format")
	}
	if !strings.Contains(err.Error(), "available: form, json, pretty") {
		t.Fatalf("error should list registered encoders, got %v", err)
	}
}

func TestState_DefaultsFollowDraft(t *testing.T) {
	draft := form.NewDraft().
		SetSubServiceName("Steam Ironing").
		ToggleWashType(catalog.WashExpress).
		SetPricingType(catalog.PricingClothingItems)
	state := NewState(draft, form.Validate(draft))

	if diff := cmp.Diff([]int{1}, state.WashDefaults()); diff != "" {
		t.Fatalf("wash defaults mismatch (-want +got):\n%s", diff)
	}
	if state.PricingDefault() != 1 {
		t.Fatalf("expected clothing items default, got %d", state.PricingDefault())
	}
	if got := state.HelpFor(form.FieldKey(form.FieldClothingItems)); got != "Please add at least one clothing item" {
		t.Fatalf("unexpected help %q", got)
	}
	if idx := OptionIndex(catalog.Default().SubServices, "Steam Ironing"); idx != 2 {
		t.Fatalf("unexpected option index %d", idx)
	}
}

func TestValidatePrice(t *testing.T) {
	for _, ok := range []string{"", "  ", "0", "12.50", "1e2"} {
		if err := ValidatePrice(ok); err != nil {
			t.Fatalf("ValidatePrice(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"abc", "-1", "12,50"} {
		if err := ValidatePrice(bad); err == nil {
			t.Fatalf("ValidatePrice(%q) should fail", bad)
		}
	}
	if got := NormalizePrice(" 1e2 "); got != "100" {
		t.Fatalf("NormalizePrice = %q", got)
	}
}
