// Package notify models the toast notifications raised by the service form
// and the sinks that present them.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Variant selects the toast presentation.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a user-facing notification with a title and description.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant,omitempty"`
}

// Destructive reports whether t signals a failure.
func (t Toast) Destructive() bool {
	return t.Variant == VariantDestructive
}

// Canned toasts raised by sub-service submission.
var (
	SubServiceSaved = Toast{
		Title:       "Sub-Service Saved Successfully",
		Description: "You can now add another sub-service.",
		Variant:     VariantDefault,
	}
	ValidationFailed = Toast{
		Title:       "Validation Error",
		Description: "Please fill in all required fields.",
		Variant:     VariantDestructive,
	}
)

// Notifier presents toasts.
type Notifier interface {
	Notify(ctx context.Context, toast Toast) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, toast Toast) error

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, toast Toast) error {
	return fn(ctx, toast)
}

// Nop discards every toast.
var Nop Notifier = NotifierFunc(func(context.Context, Toast) error { return nil })

// Logger writes toasts to a zap logger: destructive toasts at warn level,
// everything else at info.
type Logger struct {
	log *zap.Logger
}

// NewLogger returns a Logger notifier. A nil logger discards output.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log}
}

// Notify implements Notifier.
func (l *Logger) Notify(ctx context.Context, toast Toast) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := []zap.Field{
		zap.String("title", toast.Title),
		zap.String("description", toast.Description),
	}
	if toast.Destructive() {
		l.log.Warn("toast", fields...)
		return nil
	}
	l.log.Info("toast", fields...)
	return nil
}

// Multi fans a toast out to every notifier, returning the first error.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, toast Toast) error {
		var first error
		for _, n := range notifiers {
			if n == nil {
				continue
			}
			if err := n.Notify(ctx, toast); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}

// Recorder keeps every toast it receives. Useful in tests and for front-ends
// that render notifications after the fact.
type Recorder struct {
	Toasts []Toast
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, toast Toast) error {
	r.Toasts = append(r.Toasts, toast)
	return nil
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	if r == nil || len(r.Toasts) == 0 {
		return Toast{}, false
	}
	return r.Toasts[len(r.Toasts)-1], true
}
