// Package form implements the service entry form: the draft of a sub-service
// being edited, the validator that flags missing input, and the session that
// moves drafts between the closed and editing phases.
//
// Draft and Form expose pure transitions that return new values, so the state
// logic can be exercised without any front-end. Session wraps them as the
// single writer of one form, adding catalog checks, id generation, toasts and
// the save callback.
//
// Validation flags are typed. An ErrorKey is either a FieldError naming a
// draft field or an ItemPriceError naming a clothing item and wash type;
// ErrorKey.String gives the flat key ("washTypes", "{itemID}_express") used
// by renderers.
package form
