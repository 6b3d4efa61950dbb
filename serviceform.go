// Package serviceform composes laundry services from a catalog of priced
// sub-services. The root package re-exports the common entry points.
package serviceform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/notify"
	"github.com/goliatone/go-serviceform/pkg/render"
	"github.com/goliatone/go-serviceform/pkg/renderers/tui"
)

// Session aliases form.Session so callers can hold the state holder through
// the root package.
type Session = form.Session

// Service is the composed service record.
type Service = form.Service

// SavedSubService is a frozen, validated sub-service.
type SavedSubService = form.SavedSubService

// Toast aliases notify.Toast for callers wiring their own notifier.
type Toast = notify.Toast

// NewSession exposes the session constructor from the top-level module.
func NewSession(options ...form.Option) *Session {
	return form.NewSession(options...)
}

// NewTerminal exposes the terminal renderer constructor.
func NewTerminal(options ...tui.Option) (*tui.Renderer, error) {
	return tui.New(options...)
}

// CatalogFS exposes the compiled-in option lists (catalog.yaml).
func CatalogFS() fs.FS {
	return catalog.EmbeddedFS()
}

// Encode serializes a service with one of the built-in encoders ("json",
// "form" or "pretty"). It is the simplest entry point for callers that just
// want bytes.
func Encode(service Service, format string) ([]byte, error) {
	encoder, err := render.NewDefaultRegistry().Get(format)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(service)
}

// RunTerminal runs the interactive form on the terminal and returns the
// encoded service.
func RunTerminal(ctx context.Context, options ...tui.Option) ([]byte, error) {
	renderer, err := tui.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx)
}
