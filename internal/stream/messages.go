package stream

import (
	"fmt"
	"strings"
	"time"

	"github.com/averill/parley/internal/domain"
)

// roundMessages scripts the inter-participant dialogue for one completed
// round: an orchestrator directive followed by each participant's position.
// Message ids come from the driver's per-negotiation counter, so concurrent
// negotiations never collide.
func (d *Driver) roundMessages(round int, summary domain.RoundSummary) []domain.AgentMessage {
	var blocked bool
	for _, p := range summary.Proposals {
		if !p.Approved {
			blocked = true
			break
		}
	}

	directive := "All agents are aligned. Finalize consensus and customer-ready terms."
	if round == 1 {
		directive = "Broadcasting order to all agents. Complete initial feasibility checks."
	} else if blocked {
		directive = "Blocking agents must counter with feasible terms. Supporting agents validate revised options."
	}

	now := d.clock().UnixMilli()
	msgs := make([]domain.AgentMessage, 0, len(summary.Proposals)+1)
	msgs = append(msgs, domain.AgentMessage{
		ID:        d.nextMessageID(),
		From:      domain.Orchestrator,
		To:        domain.Broadcast,
		Round:     round,
		Type:      domain.MsgDirective,
		Message:   directive,
		Timestamp: now,
	})

	for _, p := range summary.Proposals {
		msgType := domain.MsgProposal
		switch {
		case !p.Approved:
			msgType = domain.MsgObjection
		case p.Status == domain.StatusAgreed:
			msgType = domain.MsgAgreement
		}
		msgs = append(msgs, domain.AgentMessage{
			ID:        d.nextMessageID(),
			From:      string(p.Role),
			To:        domain.Orchestrator,
			Round:     round,
			Type:      msgType,
			Message:   shortReason(p.Reasoning),
			Timestamp: d.clock().UnixMilli(),
		})
	}
	return msgs
}

// shortReason trims a reasoning blob to a single displayable line.
func shortReason(text string) string {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "Position updated."
	}
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	if len(raw) > 160 {
		raw = strings.TrimRight(raw[:157], " ") + "..."
	}
	return raw
}

// callbackLines scripts the customer-facing narration, branching on the
// decision.
func callbackLines(order domain.Order, c domain.ConsensusResult) []string {
	if c.Approved {
		return []string{
			fmt.Sprintf("Hello %s, your rush order is approved.", order.Customer),
			fmt.Sprintf("Final quote is $%.2f/unit with %d-day delivery.", c.FinalPrice, c.FinalDeliveryDays),
			"We will send the formal confirmation and schedule details shortly.",
		}
	}
	reason := c.RejectionReason
	if reason == "" {
		reason = c.Summary
	}
	return []string{
		fmt.Sprintf("Hello %s, this is Parley calling with an update. We could not approve the order under the requested terms.", order.Customer),
		reason,
		"We will share revised options with feasible quantity, price and delivery shortly.",
	}
}

// nextMessageID returns the next display-message id for this negotiation.
func (d *Driver) nextMessageID() string {
	d.msgSeq++
	return fmt.Sprintf("msg-%d", d.msgSeq)
}

func (d *Driver) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}
