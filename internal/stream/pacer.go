package stream

import "time"

// Pacer decides the pause inserted after each emitted event. Pacing is
// presentation only; protocol correctness never depends on it. Tests run
// with NoDelay while the demo server animates with DemoPacer.
type Pacer interface {
	Delay(ev EventType) time.Duration
}

// PacerFunc adapts a function to the Pacer interface.
type PacerFunc func(ev EventType) time.Duration

// Delay implements Pacer.
func (f PacerFunc) Delay(ev EventType) time.Duration { return f(ev) }

// NoDelay emits events back to back.
func NoDelay() Pacer {
	return PacerFunc(func(EventType) time.Duration { return 0 })
}

// DemoPacer spaces events for a watchable UI: slow enough to follow, fast
// enough that a full negotiation plays out in under half a minute.
func DemoPacer() Pacer {
	return PacerFunc(func(ev EventType) time.Duration {
		switch ev {
		case EventPhaseChange:
			return 250 * time.Millisecond
		case EventAgentMessage:
			return 150 * time.Millisecond
		case EventAgentUpdate:
			return 900 * time.Millisecond
		case EventRoundComplete, EventConsensusReached:
			return 250 * time.Millisecond
		case EventCallbackStart, EventCallbackMessage:
			return 200 * time.Millisecond
		default:
			return 0
		}
	})
}
