package tetris

// EventType identifies a notable change in the game, for sound and UI collaborators.
type EventType int

const (
	EventMove EventType = iota
	EventRotate
	EventLock
	EventLineClear
	EventLevelUp
	EventGameOver
	EventPause
	EventResume
	EventRestart
	EventHardDrop
)

var eventNames = [...]string{
	EventMove:      "move",
	EventRotate:    "rotate",
	EventLock:      "lock",
	EventLineClear: "line_clear",
	EventLevelUp:   "level_up",
	EventGameOver:  "game_over",
	EventPause:     "pause",
	EventResume:    "resume",
	EventRestart:   "restart",
	EventHardDrop:  "hard_drop",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is emitted synchronously from inside game commands.
type Event struct {
	Type  EventType
	Count int // rows cleared for EventLineClear, rows fallen for EventHardDrop
	Level int
	Score int
}

// Listener receives events. Its return has no effect on the game.
type Listener func(Event)

// EventBus fans events out to listeners by type.
type EventBus struct {
	handlers map[EventType][]Listener
	all      []Listener
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]Listener),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn Listener) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn Listener) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.all {
		fn(e)
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
