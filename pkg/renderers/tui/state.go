package tui

import (
	"strings"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/render"
)

// State is what the prompts read from: a snapshot of the open draft and the
// inline messages raised by the last failed submission, keyed by flag.
type State struct {
	draft  form.Draft
	errors map[string][]string
}

// NewState snapshots a draft and its validation flags.
func NewState(draft form.Draft, errs form.ErrorSet) *State {
	return &State{
		draft:  draft.Clone(),
		errors: render.FieldMessages(draft, errs),
	}
}

// Draft returns the snapshotted draft.
func (s *State) Draft() form.Draft {
	if s == nil {
		return form.NewDraft()
	}
	return s.draft
}

// ErrorsFor returns the messages attached to a flag key.
func (s *State) ErrorsFor(key form.ErrorKey) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[key.String()]
}

// HelpFor joins the messages for a key into prompt help text.
func (s *State) HelpFor(key form.ErrorKey) string {
	return strings.Join(s.ErrorsFor(key), "; ")
}

// OptionIndex returns the position of the draft's current value among
// options, or 0 when unset.
func OptionIndex(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}

// WashDefaults returns the indices of the selected wash types among the
// canonical wash type options.
func (s *State) WashDefaults() []int {
	var out []int
	for i, w := range catalog.WashTypes() {
		if s.Draft().WashTypes.Has(w) {
			out = append(out, i)
		}
	}
	return out
}

// PricingDefault returns the index of the current pricing type.
func (s *State) PricingDefault() int {
	for i, p := range catalog.PricingTypes() {
		if s.Draft().PricingType == p {
			return i
		}
	}
	return 0
}
