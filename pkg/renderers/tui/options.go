package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/notify"
	"github.com/goliatone/go-serviceform/pkg/render"
)

// OutputFormat controls how the composed service is serialized. Values name
// encoders in the render registry.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:  "» ",
	ErrorPrefix: "✗ ",
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithRegistry overrides the encoder registry used for output.
func WithRegistry(registry *render.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the logger handed to the form session.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithNotifier adds a toast sink next to the terminal printer.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Renderer) {
		if n != nil {
			r.notifiers = append(r.notifiers, n)
		}
	}
}

// WithSessionOptions forwards options to the form session. The renderer
// supplies its own notifier and logger, so form.WithNotifier and
// form.WithLogger are superseded by WithNotifier and WithLogger.
func WithSessionOptions(options ...form.Option) Option {
	return func(r *Renderer) {
		r.sessionOptions = append(r.sessionOptions, options...)
	}
}
