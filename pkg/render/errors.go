package render

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
)

// Message is an inline validation message bound to the flag that raised it.
type Message struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Messages returns one message per raised flag, in the order the fields
// appear on screen: draft-level fields first, then item prices following the
// draft's item order. Flags naming items no longer in the draft come last.
func Messages(draft form.Draft, errs form.ErrorSet) []Message {
	if errs.Empty() {
		return nil
	}

	keys := errs.Keys()
	position := make(map[string]int, len(draft.ClothingItems))
	for i, item := range draft.ClothingItems {
		position[item.ID] = i
	}
	rank := func(key form.ErrorKey) int {
		item, ok := key.(form.ItemPriceError)
		if !ok {
			return -1
		}
		if pos, found := position[item.ItemID]; found {
			return pos
		}
		return len(position)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return rank(keys[i]) < rank(keys[j])
	})

	out := make([]Message, 0, len(keys))
	for _, key := range keys {
		out = append(out, Message{
			Key:  key.String(),
			Text: MessageFor(draft, key),
		})
	}
	return out
}

// MessageFor returns the inline text for a single flag.
func MessageFor(draft form.Draft, key form.ErrorKey) string {
	switch k := key.(type) {
	case form.FieldError:
		switch k.Field {
		case form.FieldSubServiceName:
			return "Please select a sub service name"
		case form.FieldWashTypes:
			return "Please select at least one wash type"
		case form.FieldClothingItems:
			return "Please add at least one clothing item"
		case form.FieldStandardPricePerKg:
			return "Standard price per KG is required"
		case form.FieldExpressPricePerKg:
			return "Express price per KG is required"
		default:
			return fmt.Sprintf("%s is required", k.Field)
		}
	case form.ItemPriceError:
		label := k.ItemID
		if item, ok := draft.Item(k.ItemID); ok {
			label = item.Type
		}
		return fmt.Sprintf("%s: %s price is required", label, washLabel(k.WashType))
	default:
		return "Invalid value"
	}
}

// FieldMessages groups messages by flat key, the shape front-ends use to
// attach text next to inputs.
func FieldMessages(draft form.Draft, errs form.ErrorSet) map[string][]string {
	messages := Messages(draft, errs)
	if len(messages) == 0 {
		return nil
	}
	out := make(map[string][]string, len(messages))
	for _, m := range messages {
		out[m.Key] = append(out[m.Key], m.Text)
	}
	return out
}

func washLabel(w catalog.WashType) string {
	switch w {
	case catalog.WashStandard:
		return "standard"
	case catalog.WashExpress:
		return "express"
	default:
		return string(w)
	}
}
