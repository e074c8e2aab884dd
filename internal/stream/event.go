// Package stream sequences a negotiation into an ordered, paced event
// stream suitable for a single live observer.
package stream

import "fmt"

// EventType enumerates the wire event kinds.
type EventType string

const (
	EventBackendStatus    EventType = "backend_status"
	EventPhaseChange      EventType = "phase_change"
	EventAgentMessage     EventType = "agent_message"
	EventAgentUpdate      EventType = "agent_update"
	EventRoundComplete    EventType = "round_complete"
	EventConsensusReached EventType = "consensus_reached"
	EventCallbackStart    EventType = "callback_start"
	EventCallbackMessage  EventType = "callback_message"
	EventError            EventType = "error"
	EventDone             EventType = "done"
)

// Phase values carried by phase_change events, in their required order.
const (
	PhaseOrderBroadcast = "order-broadcast"
	PhaseConsensus      = "consensus"
	PhaseCallback       = "callback"
	PhaseDone           = "done"
)

// RoundPhase names the phase for a numbered round, e.g. "round-2".
func RoundPhase(round int) string {
	return fmt.Sprintf("round-%d", round)
}

// Event is the wire envelope: one JSON object per event.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

func phaseEvent(phase string) Event {
	return Event{Type: EventPhaseChange, Data: map[string]any{"phase": phase}}
}
