package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/negotiation"
)

// EmitFunc receives each event in order. Returning an error stops the
// negotiation: remaining computation is abandoned and nothing is persisted.
type EmitFunc func(Event) error

// Pinger is implemented by backends that can report readiness up front.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Driver.
type Options struct {
	Backend agents.Backend // nil means the deterministic evaluators
	Pacer   Pacer          // nil means NoDelay
	Now     func() time.Time
}

// Driver owns one negotiation's event sequence: phase transitions, scripted
// dialogue, per-evaluator proposals, round completions and the terminal
// consensus. Drivers share no state; each Run restarts the message counter,
// so a reused Driver still numbers every negotiation from msg-1.
type Driver struct {
	backend  agents.Backend
	fallback agents.Backend
	pacer    Pacer
	now      func() time.Time
	msgSeq   int
}

// New builds a Driver. Zero-value options give the deterministic backend
// with no pacing.
func New(opts Options) *Driver {
	d := &Driver{
		backend:  opts.Backend,
		fallback: agents.Deterministic{},
		pacer:    opts.Pacer,
		now:      opts.Now,
	}
	if d.backend == nil {
		d.backend = d.fallback
	}
	if d.pacer == nil {
		d.pacer = NoDelay()
	}
	return d
}

// Outcome captures what a completed negotiation produced, for persistence
// and synchronous callers. Nil when the stream was cancelled or aborted.
type Outcome struct {
	Order     domain.Order
	Rounds    []domain.RoundSummary
	Consensus domain.ConsensusResult
	Messages  []domain.AgentMessage
	Backend   string
}

// Run validates the order, then emits the full event sequence. The order is
// rejected before any event when malformed. Cancellation (ctx or emit error)
// stops the stream at the next suspension point with no further events.
func (d *Driver) Run(ctx context.Context, order domain.Order, emit EmitFunc) (*Outcome, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	d.msgSeq = 0

	backend, status := d.selectBackend(ctx)
	if err := d.send(ctx, emit, Event{Type: EventBackendStatus, Data: status}); err != nil {
		return nil, err
	}
	if err := d.send(ctx, emit, phaseEvent(PhaseOrderBroadcast)); err != nil {
		return nil, err
	}

	outcome := &Outcome{Order: order, Backend: backend.Name()}
	var prev *domain.RoundSummary
	for round := 1; round <= domain.MaxRounds; round++ {
		if err := d.send(ctx, emit, phaseEvent(RoundPhase(round))); err != nil {
			return nil, err
		}

		summary, err := negotiation.RunRound(ctx, backend, order, round, prev)
		if err != nil && backend != d.fallback {
			// Remote evaluation failed mid-stream: finish deterministically.
			// Event shapes are identical, so the switch is invisible downstream.
			backend = d.fallback
			outcome.Backend = backend.Name()
			summary, err = negotiation.RunRound(ctx, backend, order, round, prev)
		}
		if err != nil {
			return nil, d.abort(ctx, emit, fmt.Errorf("stream: round %d: %w", round, err))
		}
		outcome.Rounds = append(outcome.Rounds, summary)
		prev = &outcome.Rounds[len(outcome.Rounds)-1]

		for _, msg := range d.roundMessages(round, summary) {
			outcome.Messages = append(outcome.Messages, msg)
			if err := d.send(ctx, emit, Event{Type: EventAgentMessage, Data: map[string]any{"agentMessage": msg}}); err != nil {
				return nil, err
			}
		}

		// Proposals arrive in the fixed role order regardless of how they
		// were computed, keeping downstream display deterministic.
		for _, p := range summary.Proposals {
			ev := Event{Type: EventAgentUpdate, Data: map[string]any{"agentId": p.Role, "proposal": p}}
			if err := d.send(ctx, emit, ev); err != nil {
				return nil, err
			}
		}

		if err := d.send(ctx, emit, Event{Type: EventRoundComplete, Data: map[string]any{"roundSummary": summary}}); err != nil {
			return nil, err
		}
	}

	if err := d.send(ctx, emit, phaseEvent(PhaseConsensus)); err != nil {
		return nil, err
	}
	consensus, err := negotiation.SynthesizeConsensus(outcome.Rounds, order)
	if err != nil {
		return nil, d.abort(ctx, emit, fmt.Errorf("stream: consensus: %w", err))
	}
	outcome.Consensus = consensus
	if err := d.send(ctx, emit, Event{Type: EventConsensusReached, Data: map[string]any{"consensus": consensus}}); err != nil {
		return nil, err
	}

	if err := d.send(ctx, emit, phaseEvent(PhaseCallback)); err != nil {
		return nil, err
	}
	start := Event{Type: EventCallbackStart, Data: map[string]any{"message": fmt.Sprintf("Calling back %s...", order.Customer)}}
	if err := d.send(ctx, emit, start); err != nil {
		return nil, err
	}
	for _, line := range callbackLines(order, consensus) {
		if err := d.send(ctx, emit, Event{Type: EventCallbackMessage, Data: map[string]any{"message": line}}); err != nil {
			return nil, err
		}
	}

	if err := d.send(ctx, emit, phaseEvent(PhaseDone)); err != nil {
		return nil, err
	}
	if err := emit(Event{Type: EventDone, Data: map[string]any{}}); err != nil {
		return nil, err
	}
	return outcome, nil
}

// selectBackend probes the configured backend and falls back to the
// deterministic evaluators when it is unreachable.
func (d *Driver) selectBackend(ctx context.Context) (agents.Backend, map[string]any) {
	status := map[string]any{"backend": d.backend.Name(), "fallback": false}
	if p, ok := d.backend.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			status = map[string]any{
				"backend":  d.fallback.Name(),
				"fallback": true,
				"reason":   err.Error(),
			}
			return d.fallback, status
		}
	}
	return d.backend, status
}

// abort terminates a broken stream: an error event, then the terminal done
// event so consumers never hang. The underlying error is returned for logs.
func (d *Driver) abort(ctx context.Context, emit EmitFunc, cause error) error {
	if err := emit(Event{Type: EventError, Data: map[string]any{"message": cause.Error()}}); err != nil {
		return cause
	}
	_ = emit(Event{Type: EventDone, Data: map[string]any{}})
	return cause
}

// send emits one event, then pauses for the pacer's delay. Both the pause
// and a consumer error are cancellation points.
func (d *Driver) send(ctx context.Context, emit EmitFunc, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := emit(ev); err != nil {
		return err
	}
	delay := d.pacer.Delay(ev.Type)
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
