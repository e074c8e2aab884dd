package domain

// MessageType tags a scripted inter-participant communication.
type MessageType string

const (
	MsgDirective MessageType = "directive"
	MsgProposal  MessageType = "proposal"
	MsgObjection MessageType = "objection"
	MsgCounter   MessageType = "counter"
	MsgAgreement MessageType = "agreement"
	MsgInfo      MessageType = "info"
)

// Broadcast is the recipient value for messages addressed to every participant.
const Broadcast = "all"

// Orchestrator is the sender identity for round directives.
const Orchestrator = "orchestrator"

// AgentMessage is observed inter-participant dialogue. Display and audit
// only: evaluators and consensus logic never read it.
type AgentMessage struct {
	ID        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Round     int         `json:"round"`
	Type      MessageType `json:"type"`
	Message   string      `json:"message"`
	Timestamp int64       `json:"timestamp"` // unix milliseconds
}
