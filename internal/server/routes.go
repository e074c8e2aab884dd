package server

import (
	"net/http"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/negotiation"
	"github.com/averill/parley/internal/store"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all API routes on the gin router.
func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	api.GET("/agents", s.handleAgentList)
	api.GET("/agents/:id", s.handleAgentDetail)
	api.POST("/agents/:id/analyze", s.handleAgentAnalyze)
	api.GET("/baseline", s.handleBaseline)
	api.POST("/rounds", s.handleRunRound)
	api.POST("/consensus", s.handleConsensus)
	api.GET("/orchestrate", s.handleOrchestrate)
	api.GET("/runs", s.handleRunList)
	api.GET("/runs/:id", s.handleRunDetail)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": s.backend.Name()})
}

func (s *Server) handleAgentList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": agents.Profiles()})
}

func (s *Server) handleAgentDetail(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	profile, err := agents.ProfileFor(role)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// analyzeRequest is the body of a single-evaluator invocation.
type analyzeRequest struct {
	Order domain.Order         `json:"order"`
	Round int                  `json:"round"`
	Prev  *domain.RoundSummary `json:"previousRound,omitempty"`
}

func (s *Server) handleAgentAnalyze(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Round == 0 {
		req.Round = 1
	}
	if err := req.Order.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Round < 1 || req.Round > domain.MaxRounds {
		c.JSON(http.StatusBadRequest, gin.H{"error": "round must be between 1 and 3"})
		return
	}

	proposal, err := s.backend.Evaluate(c.Request.Context(), role, req.Order, req.Round, req.Prev)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (s *Server) handleBaseline(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"production": gin.H{
			"weeklyCapacity":      baseline.WeeklyCapacity,
			"workingDaysPerWeek":  baseline.WorkingDaysPerWeek,
			"maxOvertimePerDay":   baseline.MaxOvertimePerDay,
			"overtimeHoursCap":    baseline.OvertimeHoursCap,
			"overtimeCostPerHour": baseline.OvertimeCostPerHour,
		},
		"finance": gin.H{
			"baseCostPerUnit":   baseline.BaseCostPerUnit,
			"marginFloor":       baseline.MarginFloor,
			"targetMargin":      baseline.TargetMargin,
			"rushSurchargeRate": baseline.RushSurchargeRate,
		},
		"procurement": gin.H{
			"primarySupplier":    baseline.PrimarySupplier,
			"primaryLeadDays":    baseline.PrimaryLeadTimeDays,
			"alternateSupplier":  baseline.AlternateSupplier,
			"alternateLeadDays":  baseline.AlternateLeadTimeDays,
			"supplierBufferDays": baseline.SupplierBufferDays,
		},
		"shipping": gin.H{
			"ground":  gin.H{"costPerUnit": 0.30, "transitDays": 5},
			"express": gin.H{"costPerUnit": 0.85, "transitDays": 3},
			"air":     gin.H{"costPerUnit": 2.10, "transitDays": 1},
		},
		"customer": gin.H{
			"tier":              baseline.CustomerTier,
			"relationshipYears": baseline.RelationshipYears,
			"annualVolume":      baseline.AnnualVolumeUnits,
		},
	})
}

// roundRequest is the body of a synchronous round invocation.
type roundRequest struct {
	Order domain.Order         `json:"order"`
	Round int                  `json:"round"`
	Prev  *domain.RoundSummary `json:"previousRound,omitempty"`
}

func (s *Server) handleRunRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Order.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Round < 1 || req.Round > domain.MaxRounds {
		c.JSON(http.StatusBadRequest, gin.H{"error": "round must be between 1 and 3"})
		return
	}
	if req.Round > 1 && req.Prev == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "previousRound is required after round 1"})
		return
	}

	summary, err := negotiation.RunRound(c.Request.Context(), s.backend, req.Order, req.Round, req.Prev)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// consensusRequest is the body of a synchronous consensus invocation.
type consensusRequest struct {
	Order  domain.Order          `json:"order"`
	Rounds []domain.RoundSummary `json:"rounds"`
}

func (s *Server) handleConsensus(c *gin.Context) {
	var req consensusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := negotiation.SynthesizeConsensus(req.Rounds, req.Order)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRunList(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}
	runs, err := store.ListRuns(s.db, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleRunDetail(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}
	run, err := store.GetRun(s.db, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "consensus": store.Restore(run)})
}
