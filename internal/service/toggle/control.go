package toggle

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/service/notify"
)

// DefaultErrorMessage is shown when a failed call carries no usable message.
const DefaultErrorMessage = "Something went wrong. Please try again."

// State is the displayed part of a control. HasCount is false for controls
// seeded without a count.
type State struct {
	Active   bool
	Count    int
	HasCount bool
}

type Direction string

const (
	Activating   Direction = "activate"
	Deactivating Direction = "deactivate"
)

type Outcome int

const (
	OutcomeSettled Outcome = iota
	OutcomeRolledBack
)

func (o Outcome) String() string {
	if o == OutcomeRolledBack {
		return "rolled_back"
	}
	return "settled"
}

// ResultError is a failure the backend described in its response body.
type ResultError struct {
	Message string
}

// Result is what a backing call resolves to. A non-nil Err is a failure even
// though the call itself returned normally.
type Result struct {
	Data any
	Err  *ResultError
}

// Service performs the mutation behind a control. A returned error, a
// Result with Err set, and a panic are all failures.
type Service interface {
	Activate(ctx context.Context, id int64) (Result, error)
	Deactivate(ctx context.Context, id int64) (Result, error)
}

// Propagator is the originating UI event. Press stops it so an enclosing
// click region does not also react.
type Propagator interface {
	StopPropagation()
}

// Observer is told about every backing call.
type Observer interface {
	Started(variant string, direction Direction)
	Finished(variant string, direction Direction, outcome Outcome)
}

type Option func(*Control)

func WithInitialActive(active bool) Option {
	return func(c *Control) { c.state.Active = active }
}

func WithInitialCount(count int) Option {
	return func(c *Control) {
		c.state.Count = max(count, 0)
		c.state.HasCount = true
	}
}

// WithBlocked disables a Like permanently. Favorite ignores it.
func WithBlocked(blocked bool) Option {
	return func(c *Control) { c.blocked = blocked }
}

func WithNotifier(sink notify.Sink) Option {
	return func(c *Control) { c.notifier = sink }
}

// WithOnSettled registers a callback run after each successful mutation,
// never after a rollback. settled is the state the call committed, which
// may differ from State() if a reconcile or press has landed since.
func WithOnSettled(fn func(entityID int64, settled State)) Option {
	return func(c *Control) { c.onSettled = fn }
}

func WithObserver(o Observer) Option {
	return func(c *Control) { c.observer = o }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Control) { c.logger = logger }
}

// Control is one optimistic two-state button with an optional counter.
// At most one backing call is outstanding per control.
type Control struct {
	variant   Variant
	entityID  int64
	service   Service
	blocked   bool
	notifier  notify.Sink
	onSettled func(int64, State)
	observer  Observer
	logger    *zap.Logger

	mu      sync.Mutex
	state   State
	pending *Pending
}

func New(variant Variant, entityID int64, service Service, opts ...Option) *Control {
	c := &Control{
		variant:  variant,
		entityID: entityID,
		service:  service,
		notifier: notify.Nop{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("toggle").With(
		zap.String("variant", variant.name),
		zap.Int64("entity_id", entityID),
	)
	return c
}

func (c *Control) EntityID() int64 {
	return c.entityID
}

func (c *Control) Variant() Variant {
	return c.variant
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Control) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Control) Blocked() bool {
	return c.blocked && c.variant.blockable
}

// Press is a user activation. It stops ev, flips the displayed state at
// once, and starts the backing call. It returns nil when the press is
// ignored: the control is blocked or a call is already in flight.
func (c *Control) Press(ctx context.Context, ev Propagator) *Pending {
	if ev != nil {
		ev.StopPropagation()
	}
	if c.Blocked() {
		return nil
	}

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		c.logger.Debug("press ignored while pending")
		return nil
	}

	from := c.state
	to := from
	to.Active = !from.Active
	direction := Activating
	if from.Active {
		direction = Deactivating
	}
	if to.HasCount {
		if direction == Activating {
			to.Count++
		} else {
			to.Count = max(to.Count-1, 0)
		}
	}

	p := &Pending{
		From:      from,
		To:        to,
		Direction: direction,
		done:      make(chan struct{}),
	}
	c.state = to
	c.pending = p
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.Started(c.variant.name, direction)
	}
	go c.settle(ctx, p)
	return p
}

func (c *Control) settle(ctx context.Context, p *Pending) {
	res, err := c.call(ctx, p.Direction)
	message, failed := failureMessage(res, err)

	c.mu.Lock()
	if failed {
		c.state = p.From
	}
	c.pending = nil
	c.mu.Unlock()

	if failed {
		p.outcome = OutcomeRolledBack
		p.message = message
		c.logger.Info("rolled back", zap.String("direction", string(p.Direction)), zap.String("reason", message))
		c.notifier.ShowError(message)
	} else if c.onSettled != nil {
		c.onSettled(c.entityID, p.To)
	}

	if c.observer != nil {
		c.observer.Finished(c.variant.name, p.Direction, p.outcome)
	}
	close(p.done)
}

// panicError carries whatever a backing call panicked with. Values that are
// not errors have no usable message.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	if e, ok := p.value.(error); ok {
		return e.Error()
	}
	return ""
}

func (c *Control) call(ctx context.Context, direction Direction) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()

	if direction == Activating {
		return c.service.Activate(ctx, c.entityID)
	}
	return c.service.Deactivate(ctx, c.entityID)
}

func failureMessage(res Result, err error) (string, bool) {
	switch {
	case err != nil:
		if msg := err.Error(); msg != "" {
			return msg, true
		}
		return DefaultErrorMessage, true
	case res.Err != nil:
		if res.Err.Message != "" {
			return res.Err.Message, true
		}
		return DefaultErrorMessage, true
	}
	return "", false
}

// Reconcile replaces the displayed state with authoritative data, for
// example after a refetch. It is dropped while a call is in flight.
func (c *Control) Reconcile(s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return false
	}
	s.Count = max(s.Count, 0)
	c.state = s
	return true
}

// View is what a renderer needs to draw the control.
type View struct {
	Label     string
	CountText string
	Active    bool
	Busy      bool
	Disabled  bool
}

func (c *Control) View() View {
	c.mu.Lock()
	s, busy := c.state, c.pending != nil
	c.mu.Unlock()

	v := View{
		Active:    s.Active,
		Busy:      busy,
		Disabled:  busy,
		CountText: c.variant.countText(s),
	}
	switch {
	case c.Blocked():
		v.Label = c.variant.blockedLabel
		v.Disabled = true
	case s.Active:
		v.Label = c.variant.activeLabel
	default:
		v.Label = c.variant.inactiveLabel
	}
	return v
}

// Pending tracks one in-flight backing call.
type Pending struct {
	From      State
	To        State
	Direction Direction

	done    chan struct{}
	outcome Outcome
	message string
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles or ctx ends. The call itself is never
// cancelled by Wait.
func (p *Pending) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-p.done:
		return p.outcome, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Message is the notification text of a rolled back call.
func (p *Pending) Message() string {
	<-p.done
	return p.message
}
