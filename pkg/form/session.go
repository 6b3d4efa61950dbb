package form

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/notify"
)

// Variant selects between the two layouts of the service form.
type Variant string

const (
	// VariantMulti collects any number of sub-services per service.
	VariantMulti Variant = "multi"
	// VariantSingle collects exactly one sub-service and logs a diagnostic
	// dump of it when saved.
	VariantSingle Variant = "single"
)

// ParseVariant converts a configuration value into a Variant.
func ParseVariant(raw string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantMulti, "":
		return VariantMulti, nil
	case VariantSingle:
		return VariantSingle, nil
	default:
		return "", fmt.Errorf("form: unknown variant %q", raw)
	}
}

// Limit returns the maximum number of saved sub-services, or 0 for no limit.
func (v Variant) Limit() int {
	if v == VariantSingle {
		return 1
	}
	return 0
}

// SaveFunc receives each sub-service as it is saved.
type SaveFunc func(ctx context.Context, service string, saved SavedSubService)

// maxIDAttempts bounds regeneration when the generator repeats an id.
const maxIDAttempts = 8

// Option configures a Session.
type Option func(*Session)

// WithVariant selects the form layout.
func WithVariant(v Variant) Option {
	return func(s *Session) {
		if v != "" {
			s.variant = v
		}
	}
}

// WithCatalog sets the option lists enumerated values are checked against.
func WithCatalog(c catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = c.Clone()
	}
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Session) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithNotifier sets the toast sink.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithOnSave registers a callback invoked after each successful save.
func WithOnSave(fn SaveFunc) Option {
	return func(s *Session) {
		s.onSave = fn
	}
}

// Session owns the state of one service form and is its only writer. Every
// method runs synchronously; a Session is not safe for concurrent use.
type Session struct {
	variant  Variant
	catalog  catalog.Catalog
	ids      IDGenerator
	notifier notify.Notifier
	log      *zap.Logger
	onSave   SaveFunc

	form   Form
	issued map[string]struct{}
}

// NewSession constructs a session with the default catalog, UUID ids, no
// notifications and the multi sub-service layout.
func NewSession(options ...Option) *Session {
	s := &Session{
		variant:  VariantMulti,
		catalog:  catalog.Default(),
		ids:      UUIDGenerator,
		notifier: notify.Nop,
		log:      zap.NewNop(),
		form:     NewForm(),
		issued:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Variant reports the configured layout.
func (s *Session) Variant() Variant {
	return s.variant
}

// Catalog returns the option lists the session accepts.
func (s *Session) Catalog() catalog.Catalog {
	return s.catalog.Clone()
}

// Form returns a snapshot of the current state.
func (s *Session) Form() Form {
	return s.form.Clone()
}

// Draft returns a snapshot of the open draft.
func (s *Session) Draft() Draft {
	return s.form.Draft.Clone()
}

// Errors returns the flags raised by the last failed submission.
func (s *Session) Errors() ErrorSet {
	return s.form.Errors.Clone()
}

// Editing reports whether a sub-service draft is open.
func (s *Session) Editing() bool {
	return s.form.Phase == PhaseEditing
}

// CanAddSubService reports whether Open would succeed.
func (s *Session) CanAddSubService() bool {
	return s.checkOpen() == nil
}

// Service returns the composed service record.
func (s *Session) Service() Service {
	return s.form.Service()
}

// SetServiceName selects the parent service. An empty name clears it.
func (s *Session) SetServiceName(name string) error {
	if name != "" && !s.catalog.HasService(name) {
		return fmt.Errorf("%w: service %q", ErrUnknownOption, name)
	}
	s.form = s.form.SetServiceName(name)
	return nil
}

// Open starts a new sub-service draft.
func (s *Session) Open() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.form = s.form.Open()
	return nil
}

func (s *Session) checkOpen() error {
	if s.form.Phase == PhaseEditing {
		return ErrAlreadyEditing
	}
	if s.form.ServiceName == "" {
		return ErrNoService
	}
	if limit := s.variant.Limit(); limit > 0 && len(s.form.Saved) >= limit {
		return ErrSubServiceLimit
	}
	return nil
}

// Cancel discards the open draft without validating it.
func (s *Session) Cancel() {
	s.form = s.form.Cancel()
}

// Reset dismisses the whole form: service selection, saved sub-services and
// any open draft.
func (s *Session) Reset() {
	s.form = NewForm()
}

// SetSubServiceName sets the draft's sub-service name. An empty name clears
// it.
func (s *Session) SetSubServiceName(name string) error {
	if name != "" && !s.catalog.HasSubService(name) {
		return fmt.Errorf("%w: sub-service %q", ErrUnknownOption, name)
	}
	return s.update(func(d Draft) Draft { return d.SetSubServiceName(name) })
}

// ToggleWashType adds or removes a wash type.
func (s *Session) ToggleWashType(w catalog.WashType) error {
	if !w.Valid() {
		return fmt.Errorf("%w: wash type %q", ErrUnknownOption, w)
	}
	return s.update(func(d Draft) Draft { return d.ToggleWashType(w) })
}

// SetPricingType selects per-kg or itemized pricing.
func (s *Session) SetPricingType(p catalog.PricingType) error {
	if !p.Valid() {
		return fmt.Errorf("%w: pricing type %q", ErrUnknownOption, p)
	}
	return s.update(func(d Draft) Draft { return d.SetPricingType(p) })
}

// SetPrice sets the per-kilogram price for a wash type.
func (s *Session) SetPrice(w catalog.WashType, value string) error {
	if !w.Valid() {
		return fmt.Errorf("%w: wash type %q", ErrUnknownOption, w)
	}
	return s.update(func(d Draft) Draft { return d.SetPrice(w, value) })
}

// AddClothingItem appends an item of the given type and returns its id. An
// empty or already listed type is a no-op and returns an empty id.
func (s *Session) AddClothingItem(clothingType string) (string, error) {
	if !s.Editing() {
		return "", ErrNotEditing
	}
	clothingType = strings.TrimSpace(clothingType)
	if clothingType == "" || s.form.Draft.HasClothingType(clothingType) {
		return "", nil
	}
	if !s.catalog.HasClothingType(clothingType) {
		return "", fmt.Errorf("%w: clothing type %q", ErrUnknownOption, clothingType)
	}
	id, err := s.newID()
	if err != nil {
		return "", err
	}
	s.form = s.form.WithDraft(s.form.Draft.AddClothingItem(clothingType, id))
	return id, nil
}

// RemoveClothingItem deletes the item with the given id; unknown ids are
// ignored.
func (s *Session) RemoveClothingItem(id string) error {
	return s.update(func(d Draft) Draft { return d.RemoveClothingItem(id) })
}

// UpdateClothingItemPrice sets an item's price for a wash type; unknown ids
// are ignored.
func (s *Session) UpdateClothingItemPrice(id string, w catalog.WashType, value string) error {
	if !w.Valid() {
		return fmt.Errorf("%w: wash type %q", ErrUnknownOption, w)
	}
	return s.update(func(d Draft) Draft { return d.UpdateClothingItemPrice(id, w, value) })
}

// AvailableClothingTypes lists the catalog clothing types not yet in the
// draft.
func (s *Session) AvailableClothingTypes() []string {
	var out []string
	for _, t := range s.catalog.ClothingTypes {
		if !s.form.Draft.HasClothingType(t) {
			out = append(out, t)
		}
	}
	return out
}

// Submit validates the open draft. On success the draft is frozen into a
// SavedSubService, appended to the service, handed to the save callback, and
// the form is reset and closed. On failure the raised flags are kept for
// display, the draft is left as it was, and a *ValidationError is returned.
// Either outcome raises a toast.
func (s *Session) Submit(ctx context.Context) (SavedSubService, error) {
	if !s.Editing() {
		return SavedSubService{}, ErrNotEditing
	}

	errs := Validate(s.form.Draft)
	if !errs.Empty() {
		s.form = s.form.WithErrors(errs)
		s.log.Debug("sub-service validation failed",
			zap.String("service", s.form.ServiceName),
			zap.Strings("errors", errs.Strings()),
		)
		s.notify(ctx, notify.ValidationFailed)
		return SavedSubService{}, &ValidationError{Errors: errs.Clone()}
	}

	id, err := s.newID()
	if err != nil {
		return SavedSubService{}, err
	}
	saved := Snapshot(s.form.Draft, id)
	s.form = s.form.Commit(saved)

	if s.variant == VariantSingle {
		s.log.Info("sub-service saved",
			zap.String("service", s.form.ServiceName),
			zap.Any("subService", saved),
		)
	} else {
		s.log.Debug("sub-service saved",
			zap.String("service", s.form.ServiceName),
			zap.String("id", saved.ID),
			zap.Int("count", len(s.form.Saved)),
		)
	}

	if s.onSave != nil {
		s.onSave(ctx, s.form.ServiceName, saved.clone())
	}
	s.notify(ctx, notify.SubServiceSaved)
	return saved.clone(), nil
}

// SaveService is the footer save action of the single sub-service layout.
// It behaves exactly like Submit.
func (s *Session) SaveService(ctx context.Context) (SavedSubService, error) {
	return s.Submit(ctx)
}

func (s *Session) update(fn func(Draft) Draft) error {
	if !s.Editing() {
		return ErrNotEditing
	}
	s.form = s.form.WithDraft(fn(s.form.Draft))
	return nil
}

func (s *Session) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("form: id generator produced no unused id after %d attempts", maxIDAttempts)
}

func (s *Session) notify(ctx context.Context, toast notify.Toast) {
	if err := s.notifier.Notify(ctx, toast); err != nil {
		s.log.Warn("toast delivery failed", zap.String("title", toast.Title), zap.Error(err))
	}
}
