package sim

import (
	"fmt"
	"strings"
)

// LogEntry is one recorded bus event.
type LogEntry struct {
	Tick     int
	Category string // "projectile", "enemy", "player", "formation"
	Key      string // event name
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[T=0512] enemy      enemy_detached     #17 at (0.46,1.60,0.95)
func (e LogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-10s %-18s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog records every event raised on a bus. It is unbounded and meant for
// headless runs and tests.
type SimLog struct {
	entries []LogEntry
}

// NewSimLog creates a log subscribed to every event on bus.
func NewSimLog(bus *EventBus) *SimLog {
	sl := &SimLog{}
	bus.SubscribeAll(sl.record)
	return sl
}

func (sl *SimLog) record(e Event) {
	sl.entries = append(sl.entries, LogEntry{
		Tick:     e.Tick,
		Category: eventCategory(e.Type),
		Key:      e.Type.String(),
		Value:    describeEvent(e),
	})
}

func eventCategory(t EventType) string {
	switch t {
	case EventEnemyShot, EventPlayerShot, EventProjectileRetired, EventLasersArmed:
		return "projectile"
	case EventEnemyDetached, EventEnemyKilled, EventEnemyEscaped:
		return "enemy"
	case EventPlayerKilled:
		return "player"
	}
	return "formation"
}

func describeEvent(e Event) string {
	if e.Index < 0 {
		return "--"
	}
	return fmt.Sprintf("#%d %s at (%.2f,%.2f,%.2f)", e.Index, e.Role, e.Pos[0], e.Pos[1], e.Pos[2])
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []LogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries carry key.
func (sl *SimLog) Count(key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.Key == key {
			n++
		}
	}
	return n
}

// Dump returns the whole log, one entry per line.
func (sl *SimLog) Dump() string {
	var b strings.Builder
	for _, e := range sl.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
