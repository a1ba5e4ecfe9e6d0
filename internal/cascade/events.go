package cascade

// EventKind identifies what happened on the board.
type EventKind uint8

const (
	// EventSwap reports a player swap of two tiles (or its revert).
	EventSwap EventKind = iota
	// EventTileLanded reports a falling tile settling into its grid slot.
	EventTileLanded
	// EventTileSpawned reports a refill tile entering above the top row.
	EventTileSpawned
	// EventTileDestroyed reports a tile leaving the board for good.
	EventTileDestroyed
	// EventMatch reports a detected match group about to be cleared.
	EventMatch
	// EventBombSpawned reports a power-up tile created from a match shape.
	EventBombSpawned
	// EventBombTriggered reports a bomb detonating.
	EventBombTriggered
	// EventCombo reports two specials swapped into a combined effect.
	EventCombo
	// EventCoverDamaged reports a cover layer absorbing a hit.
	EventCoverDamaged
	// EventCoverDestroyed reports a cover layer breaking.
	EventCoverDestroyed
	// EventGroundDamaged reports a ground layer absorbing a clear.
	EventGroundDamaged
	// EventGroundDestroyed reports a ground layer breaking.
	EventGroundDestroyed
	// EventScore reports points awarded for a clear.
	EventScore
	// EventCascade reports the start of a new cascade wave.
	EventCascade
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSwap:
		return "swap"
	case EventTileLanded:
		return "tile_landed"
	case EventTileSpawned:
		return "tile_spawned"
	case EventTileDestroyed:
		return "tile_destroyed"
	case EventMatch:
		return "match"
	case EventBombSpawned:
		return "bomb_spawned"
	case EventBombTriggered:
		return "bomb_triggered"
	case EventCombo:
		return "combo"
	case EventCoverDamaged:
		return "cover_damaged"
	case EventCoverDestroyed:
		return "cover_destroyed"
	case EventGroundDamaged:
		return "ground_damaged"
	case EventGroundDestroyed:
		return "ground_destroyed"
	case EventScore:
		return "score"
	case EventCascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// Event is a single board occurrence. It is a plain value so that emitting
// one allocates nothing; fields that do not apply to a kind are zero.
type Event struct {
	Kind EventKind
	At   Point  // primary cell
	To   Point  // secondary cell (swap partner, combo partner)
	Tile TileID // tile involved, if any
	Type TileType
	Bomb BombKind
	// Value carries a kind-specific number: points for EventScore, group
	// size for EventMatch, wave index for EventCascade, remaining health
	// for the damaged kinds.
	Value int
}

// Sink receives board events in the order they occur.
// Implementations must not retain the Event past the call.
type Sink interface {
	Emit(Event)
}

// NullSink discards every event. Mass simulation uses it so that the
// resolution loop pays nothing for observability.
type NullSink struct{}

// Emit discards the event.
func (NullSink) Emit(Event) {}

// BufferSink appends events to a slice for later inspection. Handy in tests
// and for frame-by-frame render feedback.
type BufferSink struct {
	Events []Event
}

// Emit appends the event to the buffer.
func (b *BufferSink) Emit(e Event) {
	b.Events = append(b.Events, e)
}

// Reset clears the buffer without freeing its backing array.
func (b *BufferSink) Reset() {
	b.Events = b.Events[:0]
}

// Drain returns the buffered events and clears the buffer.
func (b *BufferSink) Drain() []Event {
	out := b.Events
	b.Events = nil
	return out
}
