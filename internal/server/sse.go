package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/store"
	"github.com/averill/parley/internal/stream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handleOrchestrate runs one full negotiation and streams its events. Client
// disconnect cancels the run; a cancelled run is never persisted.
func (s *Server) handleOrchestrate(c *gin.Context) {
	order, err := parseOrder(c.Query("order"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	driver := stream.New(stream.Options{Backend: s.backend, Pacer: s.pacer})
	emit := func(ev stream.Event) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("server: encode event: %w", err)
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	outcome, err := driver.Run(c.Request.Context(), order, emit)
	if err != nil {
		// The stream already carried the error event; nothing to persist.
		log.Printf("server: orchestration for %s ended early: %v", order.ID, err)
		return
	}

	if s.db != nil {
		if _, err := store.SaveOutcome(s.db, outcome); err != nil {
			log.Printf("server: persist run %s: %v", order.ID, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.AnnounceOutcome(c.Request.Context(), outcome); err != nil {
			log.Printf("server: %v", err)
		}
	}
}

// parseOrder decodes the order query parameter. An empty parameter yields the
// standing demo order; a present order is normalized (generated id, rush
// priority) before validation.
func parseOrder(raw string) (domain.Order, error) {
	if raw == "" {
		return demoOrder(), nil
	}
	var order domain.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return domain.Order{}, fmt.Errorf("server: parse order: %w", err)
	}
	if order.ID == "" {
		order.ID = "ord-" + uuid.NewString()[:8]
	}
	if order.Priority == "" {
		order.Priority = domain.PriorityRush
	}
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// demoOrder is the standing walkthrough order used when no order is supplied.
func demoOrder() domain.Order {
	return domain.Order{
		ID:                    "ord-" + uuid.NewString()[:8],
		Customer:              "Acme Industrial",
		Product:               "PC-400",
		Quantity:              50,
		RequestedPrice:        10.00,
		RequestedDeliveryDays: 18,
		Priority:              domain.PriorityRush,
	}
}
