package view

// Target is what a click landed on inside a card.
type Target int

const (
	TargetCard Target = iota
	TargetLike
	TargetFavorite
)

// Event is a click travelling from its target up through enclosing regions.
type Event struct {
	Target  Target
	stopped bool
}

func NewClick(target Target) *Event {
	return &Event{Target: target}
}

func (e *Event) StopPropagation() {
	e.stopped = true
}

func (e *Event) Stopped() bool {
	return e.stopped
}
