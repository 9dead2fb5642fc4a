package sim

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventEnemyDetached EventType = iota
	EventEnemyShot
	EventPlayerShot
	EventEnemyKilled
	EventEnemyEscaped
	EventPlayerKilled
	EventProjectileRetired
	EventFormationTurned
	EventLasersArmed
)

func (t EventType) String() string {
	switch t {
	case EventEnemyDetached:
		return "enemy_detached"
	case EventEnemyShot:
		return "enemy_shot"
	case EventPlayerShot:
		return "player_shot"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventEnemyEscaped:
		return "enemy_escaped"
	case EventPlayerKilled:
		return "player_killed"
	case EventProjectileRetired:
		return "projectile_retired"
	case EventFormationTurned:
		return "formation_turned"
	case EventLasersArmed:
		return "lasers_armed"
	}
	return "unknown"
}

// Event describes something that happened during a tick. Index is the
// registry index of the object concerned and Role is its role.
type Event struct {
	Type  EventType
	Tick  int
	Index int
	Role  Role
	Pos   mgl64.Vec3
}

type EventHandler func(Event)

// EventBus delivers events synchronously, in subscription order, while the
// tick that raised them is still running.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventEnemyDetached; t <= EventLasersArmed; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
