package domain

// StepKind classifies one unit of an evaluator's visible reasoning trace.
type StepKind string

const (
	StepToolCall   StepKind = "tool_call"
	StepToolResult StepKind = "tool_result"
	StepReasoning  StepKind = "reasoning"
	StepResponse   StepKind = "response"
	StepObjection  StepKind = "objection"
	StepAgreement  StepKind = "agreement"
)

// ActionStep is one atomic unit of an evaluator's reasoning trace. The trace
// is display-only; it never feeds back into convergence.
type ActionStep struct {
	Kind   StepKind       `json:"kind"`
	Label  string         `json:"label"`
	Detail string         `json:"detail"`
	Data   map[string]any `json:"data,omitempty"`
}

// AgentStatus is an evaluator's posture within a round.
type AgentStatus string

const (
	StatusIdle      AgentStatus = "idle"
	StatusAnalyzing AgentStatus = "analyzing"
	StatusProposing AgentStatus = "proposing"
	StatusObjecting AgentStatus = "objecting"
	StatusAgreed    AgentStatus = "agreed"
)

// AgentProposal is the result of one evaluator's one-round invocation.
// Created once per (role, round) pair and never mutated after return.
type AgentProposal struct {
	Role      Role           `json:"agentId"`
	Round     int            `json:"round"`
	Status    AgentStatus    `json:"status"`
	Reasoning string         `json:"reasoning"`
	Metrics   map[string]any `json:"metrics"`
	Approved  bool           `json:"approved"`
	Actions   []ActionStep   `json:"actions"`
}

// MetricFloat reads a numeric metric, returning def when absent or non-numeric.
func (p AgentProposal) MetricFloat(key string, def float64) float64 {
	switch v := p.Metrics[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// MetricInt reads an integer metric, returning def when absent or non-numeric.
func (p AgentProposal) MetricInt(key string, def int) int {
	switch v := p.Metrics[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// MetricString reads a string metric, returning def when absent.
func (p AgentProposal) MetricString(key string, def string) string {
	if v, ok := p.Metrics[key].(string); ok {
		return v
	}
	return def
}
