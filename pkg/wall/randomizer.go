package wall

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photowall/pkg/errors"
)

// Target is anything that can receive an inline style. The randomizer never
// creates, removes or reorders targets.
type Target interface {
	SetStyle(style string)
}

// TargetFunc adapts a function to [Target].
type TargetFunc func(style string)

// SetStyle calls f(style).
func (f TargetFunc) SetStyle(style string) { f(style) }

// Targets converts a typed slice to a []Target.
func Targets[T Target](items []T) []Target {
	out := make([]Target, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// OverflowPolicy decides what happens to targets beyond the last slot.
type OverflowPolicy int

const (
	// OverflowSkip places as many targets as there are slots and leaves the
	// rest untouched.
	OverflowSkip OverflowPolicy = iota
	// OverflowError rejects the whole call.
	OverflowError
)

// String returns the config spelling of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case OverflowSkip:
		return "skip"
	case OverflowError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy parses "skip" or "error".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "skip", "":
		return OverflowSkip, nil
	case "error":
		return OverflowError, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown overflow policy %q (must be 'skip' or 'error')", s)
	}
}

// Default draw ranges.
var (
	DefaultRotation = Range{Min: -10, Max: 10}
	DefaultJitterX  = Range{Min: -30, Max: 30}
	DefaultJitterY  = Range{Min: -20, Max: 50}
)

// Option configures a [Randomizer].
type Option func(*Randomizer)

// WithSource sets the random source. Pass [NewSource] for reproducible layouts.
func WithSource(src Source) Option { return func(r *Randomizer) { r.src = src } }

// WithSlots replaces the default slots. The slice is copied.
func WithSlots(slots []Slot) Option {
	return func(r *Randomizer) { r.slots = append([]Slot(nil), slots...) }
}

// WithRotation sets the rotation range in degrees.
func WithRotation(rng Range) Option { return func(r *Randomizer) { r.rotation = rng } }

// WithJitter sets the x and y offset ranges in pixels.
func WithJitter(x, y Range) Option {
	return func(r *Randomizer) { r.jitterX, r.jitterY = x, y }
}

// WithOverflow sets the overflow policy.
func WithOverflow(p OverflowPolicy) Option { return func(r *Randomizer) { r.overflow = p } }

// WithLogger enables diagnostic logging.
func WithLogger(l *log.Logger) Option { return func(r *Randomizer) { r.logger = l } }

// Randomizer computes and applies scattered layouts. It is safe for
// concurrent use; calls are serialized around the random source.
type Randomizer struct {
	mu       sync.Mutex
	src      Source
	slots    []Slot
	rotation Range
	jitterX  Range
	jitterY  Range
	overflow OverflowPolicy
	logger   *log.Logger
}

// New returns a Randomizer over [DefaultSlots] with the default ranges.
func New(opts ...Option) *Randomizer {
	r := &Randomizer{
		slots:    DefaultSlots(),
		rotation: DefaultRotation,
		jitterX:  DefaultJitterX,
		jitterY:  DefaultJitterY,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.src == nil {
		r.src = newRuntimeSource()
	}
	return r
}

// Slots returns a copy of the configured slots.
func (r *Randomizer) Slots() []Slot {
	return append([]Slot(nil), r.slots...)
}

// Validate checks the configured ranges and slots.
func (r *Randomizer) Validate() error {
	if err := ValidateSlots(r.slots); err != nil {
		return err
	}
	if err := errors.ValidateRange("rotation", r.rotation.Min, r.rotation.Max); err != nil {
		return err
	}
	if err := errors.ValidateRange("x jitter", r.jitterX.Min, r.jitterX.Max); err != nil {
		return err
	}
	return errors.ValidateRange("y jitter", r.jitterY.Min, r.jitterY.Max)
}

// Place computes a layout for n targets without touching any of them.
func (r *Randomizer) Place(n int) (Layout, error) {
	if n < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "negative target count %d", n)
	}
	if err := r.Validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{Slots: r.Slots()}
	if n == 0 {
		r.warnf("no targets, nothing to place")
		return l, nil
	}
	if len(r.slots) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig, "no slots configured for %d targets", n)
	}

	placed := n
	if n > len(r.slots) {
		if r.overflow == OverflowError {
			cause := &errors.TooManyTargetsError{Targets: n, Slots: len(r.slots)}
			return Layout{}, errors.Wrap(cause.Code(), cause, "cannot lay out targets")
		}
		placed = len(r.slots)
		l.Skipped = n - placed
		r.warnf("%d targets exceed %d slots, leaving %d unplaced", n, len(r.slots), l.Skipped)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := permutation(r.src, len(r.slots))
	l.Placements = make([]Placement, placed)
	for i := range placed {
		rot := Uniform(r.src, r.rotation)
		slot := r.slots[keys[i]]
		l.Placements[i] = Placement{
			Index:    i,
			Slot:     keys[i],
			Rotation: rot,
			X:        slot.X + Uniform(r.src, r.jitterX),
			Y:        slot.Y + Uniform(r.src, r.jitterY),
		}
	}
	return l, nil
}

// Apply computes a layout for targets and writes each placement's style to
// its target, in order. On error no target is modified.
func (r *Randomizer) Apply(targets []Target) (Layout, error) {
	l, err := r.Place(len(targets))
	if err != nil {
		return Layout{}, err
	}
	for _, p := range l.Placements {
		targets[p.Index].SetStyle(p.Style())
	}
	r.debugf("placed %d targets (%d skipped)", len(l.Placements), l.Skipped)
	return l, nil
}

func (r *Randomizer) debugf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Debugf(format, args...)
	}
}

func (r *Randomizer) warnf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Warnf(format, args...)
	}
}
