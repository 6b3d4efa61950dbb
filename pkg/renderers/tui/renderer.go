package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/notify"
	"github.com/goliatone/go-serviceform/pkg/render"
)

const (
	menuAddSubService = "Add Sub-Service"
	menuFinish        = "Finish"
	menuDiscard       = "Discard Service"

	actionSaveSubService = "Save Sub-Service"
	actionSaveService    = "Save Service"
	actionCancel         = "Cancel"

	itemAdd    = "Add clothing item"
	itemRemove = "Remove clothing item"
	itemDone   = "Done"
)

// Renderer walks a form.Session through terminal prompts and serializes the
// composed service.
type Renderer struct {
	driver         PromptDriver
	outputFormat   OutputFormat
	registry       *render.Registry
	theme          Theme
	log            *zap.Logger
	notifiers      []notify.Notifier
	sessionOptions []form.Option
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		registry:     render.NewDefaultRegistry(),
		theme:        DefaultTheme,
		log:          zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if !r.registry.Has(string(r.outputFormat)) {
		return nil, fmt.Errorf("tui: unknown output format %q (available: %s)",
			r.outputFormat, strings.Join(r.registry.List(), ", "))
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	encoder, err := r.registry.Get(string(r.outputFormat))
	if err != nil {
		return "application/json"
	}
	return encoder.ContentType()
}

// NewSession builds the form session the renderer drives. Toasts go to the
// prompt driver and to every notifier added with WithNotifier.
func (r *Renderer) NewSession() *form.Session {
	sinks := make([]notify.Notifier, 0, len(r.notifiers)+1)
	sinks = append(sinks, r.toastPrinter())
	sinks = append(sinks, r.notifiers...)

	options := make([]form.Option, 0, len(r.sessionOptions)+2)
	options = append(options, r.sessionOptions...)
	options = append(options,
		form.WithNotifier(notify.Multi(sinks...)),
		form.WithLogger(r.log),
	)
	return form.NewSession(options...)
}

// Render runs the interactive form and returns the encoded service.
func (r *Renderer) Render(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	service, err := r.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return r.serialize(service)
}

// Collect runs the prompts and returns the composed service without
// encoding it.
func (r *Renderer) Collect(ctx context.Context) (form.Service, error) {
	if err := ctx.Err(); err != nil {
		return form.Service{}, err
	}
	if r.driver == nil {
		return form.Service{}, errors.New("tui: prompt driver is nil")
	}

	session := r.NewSession()
	if err := r.promptService(ctx, session); err != nil {
		return form.Service{}, err
	}

	// The single layout shows its sub-service form straight away.
	openNow := session.Variant() == form.VariantSingle
	for session.CanAddSubService() {
		if openNow {
			openNow = false
			if err := r.editSubService(ctx, session); err != nil {
				return form.Service{}, err
			}
			continue
		}

		options := []string{menuAddSubService, menuFinish, menuDiscard}
		idx, err := r.selectOne(ctx, SelectConfig{
			Message: r.prompt("What next?"),
			Options: options,
		})
		if err != nil {
			return form.Service{}, err
		}
		switch options[idx] {
		case menuAddSubService:
			if err := r.editSubService(ctx, session); err != nil {
				return form.Service{}, err
			}
		case menuFinish:
			return session.Service(), nil
		case menuDiscard:
			session.Reset()
			return form.Service{}, ErrDiscarded
		}
	}
	return session.Service(), nil
}

func (r *Renderer) promptService(ctx context.Context, session *form.Session) error {
	services := session.Catalog().Services
	idx, err := r.selectOne(ctx, SelectConfig{
		Message: r.prompt("Service Name"),
		Options: services,
	})
	if err != nil {
		return err
	}
	return session.SetServiceName(services[idx])
}

// editSubService opens a draft and prompts until it is saved or cancelled.
// A failed save shows the inline messages and prompts again with the
// entered values as defaults.
func (r *Renderer) editSubService(ctx context.Context, session *form.Session) error {
	if err := session.Open(); err != nil {
		return err
	}

	for {
		state := NewState(session.Draft(), session.Errors())
		if err := r.promptDraft(ctx, session, state); err != nil {
			return err
		}

		actions := r.actions(session.Variant())
		idx, err := r.selectOne(ctx, SelectConfig{
			Message: r.prompt("Save this sub-service?"),
			Options: actions,
		})
		if err != nil {
			return err
		}

		switch actions[idx] {
		case actionCancel:
			session.Cancel()
			return nil
		case actionSaveService:
			_, err = session.SaveService(ctx)
		default:
			_, err = session.Submit(ctx)
		}

		var verr *form.ValidationError
		if errors.As(err, &verr) {
			if err := r.showMessages(ctx, session.Draft(), verr.Errors); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		return r.showSaved(ctx, session.Service())
	}
}

func (r *Renderer) actions(variant form.Variant) []string {
	if variant == form.VariantSingle {
		return []string{actionSaveSubService, actionSaveService, actionCancel}
	}
	return []string{actionSaveSubService, actionCancel}
}

func (r *Renderer) promptDraft(ctx context.Context, session *form.Session, state *State) error {
	subServices := session.Catalog().SubServices
	idx, err := r.selectOne(ctx, SelectConfig{
		Message:      r.prompt("Sub Service Name"),
		Options:      subServices,
		DefaultIndex: OptionIndex(subServices, state.Draft().SubServiceName),
		Help:         state.HelpFor(form.FieldKey(form.FieldSubServiceName)),
	})
	if err != nil {
		return err
	}
	if err := session.SetSubServiceName(subServices[idx]); err != nil {
		return err
	}

	if err := r.promptWashTypes(ctx, session, state); err != nil {
		return err
	}

	pricingTypes := catalog.PricingTypes()
	labels := make([]string, len(pricingTypes))
	for i, p := range pricingTypes {
		labels[i] = p.Label()
	}
	idx, err = r.selectOne(ctx, SelectConfig{
		Message:      r.prompt("Pricing Type"),
		Options:      labels,
		DefaultIndex: state.PricingDefault(),
	})
	if err != nil {
		return err
	}
	if err := session.SetPricingType(pricingTypes[idx]); err != nil {
		return err
	}

	if session.Draft().PricingType == catalog.PricingPerKg {
		return r.promptPerKgPrices(ctx, session, state)
	}
	return r.promptClothingItems(ctx, session, state)
}

func (r *Renderer) promptWashTypes(ctx context.Context, session *form.Session, state *State) error {
	washTypes := catalog.WashTypes()
	labels := make([]string, len(washTypes))
	for i, w := range washTypes {
		labels[i] = w.Label()
	}

	selected, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  r.prompt("Wash Types"),
		Options:  labels,
		Defaults: state.WashDefaults(),
		Help:     state.HelpFor(form.FieldKey(form.FieldWashTypes)),
	})
	if err != nil {
		return err
	}

	want := make(map[int]bool, len(selected))
	for _, i := range selected {
		if i < 0 || i >= len(washTypes) {
			return fmt.Errorf("%w: wash type %d", ErrInvalidSelection, i)
		}
		want[i] = true
	}

	draft := session.Draft()
	for i, w := range washTypes {
		if draft.WashTypes.Has(w) == want[i] {
			continue
		}
		if err := session.ToggleWashType(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptPerKgPrices(ctx context.Context, session *form.Session, state *State) error {
	draft := session.Draft()
	for _, w := range draft.WashTypes {
		value, err := r.promptPrice(ctx, InputConfig{
			Message: r.prompt(w.Label() + " price per KG"),
			Default: draft.PricePerKg(w),
			Help:    state.HelpFor(form.FieldKey(form.PricePerKgField(w))),
		})
		if err != nil {
			return err
		}
		if err := session.SetPrice(w, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptClothingItems(ctx context.Context, session *form.Session, state *State) error {
	for {
		draft := session.Draft()
		available := session.AvailableClothingTypes()

		var options []string
		if len(available) > 0 {
			options = append(options, itemAdd)
		}
		if len(draft.ClothingItems) > 0 {
			options = append(options, itemRemove)
		}
		options = append(options, itemDone)

		idx, err := r.selectOne(ctx, SelectConfig{
			Message: r.prompt(fmt.Sprintf("Clothing Items (%d added)", len(draft.ClothingItems))),
			Options: options,
			Help:    state.HelpFor(form.FieldKey(form.FieldClothingItems)),
		})
		if err != nil {
			return err
		}

		switch options[idx] {
		case itemAdd:
			pick, err := r.selectOne(ctx, SelectConfig{
				Message: r.prompt("Clothing Type"),
				Options: available,
			})
			if err != nil {
				return err
			}
			if _, err := session.AddClothingItem(available[pick]); err != nil {
				return err
			}
		case itemRemove:
			labels := make([]string, len(draft.ClothingItems))
			for i, item := range draft.ClothingItems {
				labels[i] = item.Type
			}
			pick, err := r.selectOne(ctx, SelectConfig{
				Message: r.prompt("Remove which item?"),
				Options: labels,
			})
			if err != nil {
				return err
			}
			if err := session.RemoveClothingItem(draft.ClothingItems[pick].ID); err != nil {
				return err
			}
		default:
			return r.promptItemPrices(ctx, session, state)
		}
	}
}

func (r *Renderer) promptItemPrices(ctx context.Context, session *form.Session, state *State) error {
	draft := session.Draft()
	for _, item := range draft.ClothingItems {
		for _, w := range draft.WashTypes {
			value, err := r.promptPrice(ctx, InputConfig{
				Message: r.prompt(fmt.Sprintf("%s - %s price", item.Type, w.Label())),
				Default: item.Price(w),
				Help:    state.HelpFor(form.ItemPriceKey(item.ID, w)),
			})
			if err != nil {
				return err
			}
			if err := session.UpdateClothingItemPrice(item.ID, w, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// promptPrice re-prompts until the answer is empty or a non-negative
// decimal. Drivers that validate inline never reach the retry.
func (r *Renderer) promptPrice(ctx context.Context, cfg InputConfig) (string, error) {
	cfg.Validator = ValidatePrice
	for {
		value, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return "", err
		}
		if err := ValidatePrice(value); err != nil {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error()); err != nil {
				return "", err
			}
			continue
		}
		return NormalizePrice(value), nil
	}
}

func (r *Renderer) selectOne(ctx context.Context, cfg SelectConfig) (int, error) {
	idx, err := r.driver.Select(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(cfg.Options) {
		return 0, fmt.Errorf("%w: %d of %d options", ErrInvalidSelection, idx, len(cfg.Options))
	}
	return idx, nil
}

func (r *Renderer) showMessages(ctx context.Context, draft form.Draft, errs form.ErrorSet) error {
	for _, m := range render.Messages(draft, errs) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+m.Text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) showSaved(ctx context.Context, service form.Service) error {
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Saved Sub-Services:"); err != nil {
		return err
	}
	for i, sub := range service.SubServices {
		if err := r.driver.Info(ctx, "  "+render.SummaryLine(i+1, sub)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) toastPrinter() notify.Notifier {
	return notify.NotifierFunc(func(ctx context.Context, toast notify.Toast) error {
		prefix := r.theme.InfoPrefix
		if toast.Destructive() {
			prefix = r.theme.ErrorPrefix
		}
		return r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", prefix, toast.Title, toast.Description))
	})
}

func (r *Renderer) prompt(label string) string {
	return r.theme.PromptPrefix + label
}

func (r *Renderer) serialize(service form.Service) ([]byte, error) {
	encoder, err := r.registry.Get(string(r.outputFormat))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	out, err := encoder.Encode(service)
	if err != nil {
		return nil, fmt.Errorf("tui: encode %s: %w", encoder.Name(), err)
	}
	return out, nil
}
