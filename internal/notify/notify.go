// Package notify delivers negotiation outcomes and activity digests to chat
// platforms (Slack, Discord).
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/stream"
)

// Adapter is the interface that platform-specific implementations must
// satisfy. Parley only posts; it never reads messages back.
type Adapter interface {
	// Connect establishes a connection to the chat platform.
	Connect(ctx context.Context) error

	// Send delivers an outbound message to the platform.
	Send(ctx context.Context, msg Message) error

	// Close gracefully shuts down the adapter connection.
	Close() error
}

// Message is a platform-neutral outbound message.
type Message struct {
	Title  string  // headline (e.g. "Rush order ord-17 approved")
	Body   string  // detail text
	Color  string  // sidebar color hint (e.g. "#36a64f")
	Fields []Field // key-value metadata pairs
}

// Field is a key-value pair displayed alongside a message.
type Field struct {
	Name  string
	Value string
	Short bool // hint: render side-by-side with another field
}

// Sidebar colors by outcome.
const (
	ColorApproved = "#36a64f"
	ColorRejected = "#d00000"
	ColorInfo     = "#439fe0"
)

// Notifier posts negotiation outcomes through an adapter. Delivery is best
// effort: a failed post never fails the negotiation that triggered it.
type Notifier struct {
	adapter Adapter
}

// NewNotifier wraps an adapter.
func NewNotifier(adapter Adapter) *Notifier {
	return &Notifier{adapter: adapter}
}

// AnnounceOutcome posts the result of one completed negotiation.
func (n *Notifier) AnnounceOutcome(ctx context.Context, outcome *stream.Outcome) error {
	if n == nil || n.adapter == nil {
		return nil
	}
	msg := OutcomeMessage(outcome)
	if err := n.adapter.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: announce order %s: %w", outcome.Order.ID, err)
	}
	return nil
}

// OutcomeMessage formats a completed negotiation for chat display.
func OutcomeMessage(outcome *stream.Outcome) Message {
	c := outcome.Consensus
	verdict := "approved"
	color := ColorApproved
	if !c.Approved {
		verdict = "rejected"
		color = ColorRejected
	}

	var body []string
	body = append(body, fmt.Sprintf("%s x%d for %s, %s after %d rounds.",
		outcome.Order.Product, outcome.Order.Quantity, outcome.Order.Customer, verdict, len(outcome.Rounds)))
	if c.Approved {
		body = append(body, fmt.Sprintf("$%.2f/unit, %d-day delivery via %s shipping, margin %.1f%%.",
			c.FinalPrice, c.FinalDeliveryDays, c.ShippingMode, c.FinalMargin))
		if c.OvertimeHours > 0 {
			body = append(body, fmt.Sprintf("Production runs %dh of overtime.", c.OvertimeHours))
		}
	} else if c.RejectionReason != "" {
		body = append(body, c.RejectionReason)
	}

	fields := []Field{
		{Name: "Order", Value: outcome.Order.ID, Short: true},
		{Name: "Risk", Value: string(c.RiskScore), Short: true},
		{Name: "Confidence", Value: fmt.Sprintf("%d%%", c.Confidence), Short: true},
		{Name: "Backend", Value: outcome.Backend, Short: true},
	}

	return Message{
		Title:  fmt.Sprintf("Rush order %s %s", outcome.Order.ID, verdict),
		Body:   strings.Join(body, "\n"),
		Color:  color,
		Fields: fields,
	}
}

// shortRisk renders the risk score for digest lines.
func shortRisk(risk string) string {
	if risk == "" {
		return string(domain.RiskHigh)
	}
	return risk
}
