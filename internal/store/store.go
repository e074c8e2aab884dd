// Package store persists completed negotiations and serves the history API.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/models"
	"github.com/averill/parley/internal/stream"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaveOutcome writes a completed negotiation: the run row, one round record
// per round and the message audit log, in a single transaction.
func SaveOutcome(conn *gorm.DB, outcome *stream.Outcome) (*models.NegotiationRun, error) {
	if conn == nil {
		return nil, fmt.Errorf("store: db is required")
	}
	if outcome == nil {
		return nil, fmt.Errorf("store: outcome is required")
	}

	run := models.NegotiationRun{
		ID:                    uuid.NewString(),
		OrderID:               outcome.Order.ID,
		Customer:              outcome.Order.Customer,
		Product:               outcome.Order.Product,
		Quantity:              outcome.Order.Quantity,
		RequestedPrice:        outcome.Order.RequestedPrice,
		RequestedDeliveryDays: outcome.Order.RequestedDeliveryDays,
		Priority:              string(outcome.Order.Priority),
		Approved:              outcome.Consensus.Approved,
		FinalPrice:            outcome.Consensus.FinalPrice,
		FinalDeliveryDays:     outcome.Consensus.FinalDeliveryDays,
		FinalMargin:           outcome.Consensus.FinalMargin,
		ShippingMode:          string(outcome.Consensus.ShippingMode),
		OvertimeHours:         outcome.Consensus.OvertimeHours,
		RiskScore:             string(outcome.Consensus.RiskScore),
		Confidence:            outcome.Consensus.Confidence,
		Supplier:              outcome.Consensus.Supplier,
		RejectionReason:       outcome.Consensus.RejectionReason,
		Summary:               outcome.Consensus.Summary,
		Backend:               outcome.Backend,
		Rounds:                len(outcome.Rounds),
		CreatedAt:             time.Now(),
	}

	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		for _, rs := range outcome.Rounds {
			approvals := 0
			for _, p := range rs.Proposals {
				if p.Approved {
					approvals++
				}
			}
			rec := models.RoundRecord{
				RunID:         run.ID,
				Round:         rs.Round,
				Price:         rs.Price,
				DeliveryDays:  rs.DeliveryDays,
				Margin:        rs.Margin,
				ShippingMode:  string(rs.ShippingMode),
				OvertimeHours: rs.OvertimeHours,
				Converged:     rs.Converged,
				Approvals:     approvals,
				CreatedAt:     time.Now(),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		for _, msg := range outcome.Messages {
			logRow := models.MessageLog{
				RunID:     run.ID,
				MessageID: msg.ID,
				Round:     msg.Round,
				FromAgent: msg.From,
				ToAgent:   msg.To,
				Type:      string(msg.Type),
				Body:      msg.Message,
				CreatedAt: time.UnixMilli(msg.Timestamp),
			}
			if err := tx.Create(&logRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: save run for order %s: %w", outcome.Order.ID, err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(conn *gorm.DB, limit int) ([]models.NegotiationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []models.NegotiationRun
	if err := conn.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run with its rounds and message log.
func GetRun(conn *gorm.DB, id string) (*models.NegotiationRun, error) {
	var run models.NegotiationRun
	err := conn.Preload("RoundRecords").Preload("MessageLogs").Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: run not found: %s", id)
		}
		return nil, fmt.Errorf("store: get run %s: %w", id, err)
	}
	return &run, nil
}

// RunsSince returns runs created at or after the cutoff, oldest first.
// The digest scheduler uses this to summarize recent activity.
func RunsSince(conn *gorm.DB, cutoff time.Time) ([]models.NegotiationRun, error) {
	var runs []models.NegotiationRun
	if err := conn.Where("created_at >= ?", cutoff).Order("created_at ASC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("store: runs since %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return runs, nil
}

// Restore rebuilds the domain view of one stored run, used by the history
// detail endpoint.
func Restore(run *models.NegotiationRun) domain.ConsensusResult {
	return domain.ConsensusResult{
		Approved:          run.Approved,
		FinalPrice:        run.FinalPrice,
		FinalDeliveryDays: run.FinalDeliveryDays,
		FinalMargin:       run.FinalMargin,
		ShippingMode:      domain.ShippingMode(run.ShippingMode),
		OvertimeHours:     run.OvertimeHours,
		RiskScore:         domain.RiskScore(run.RiskScore),
		Confidence:        run.Confidence,
		Supplier:          run.Supplier,
		RejectionReason:   run.RejectionReason,
		Summary:           run.Summary,
	}
}
