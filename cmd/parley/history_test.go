package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/averill/parley/internal/config"
	"github.com/averill/parley/internal/db"
	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/store"
	"github.com/averill/parley/internal/stream"
)

func TestHistoryCmd_Empty(t *testing.T) {
	cfgPath := writeTestConfig(t)

	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"db", "init", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	cmd = newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No negotiations recorded yet.") {
		t.Errorf("expected empty-history message, got: %s", buf.String())
	}
}

func TestHistoryCmd_ListAndShow(t *testing.T) {
	cfgPath := writeTestConfig(t)

	// Seed one run directly through the store.
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	conn, err := db.Connect(db.Options{Driver: cfg.Database.Driver, Path: cfg.Database.Path})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatal(err)
	}
	saved, err := store.SaveOutcome(conn, &stream.Outcome{
		Order: domain.Order{
			ID: "ord-h1", Customer: "Acme Industrial", Product: "PC-400",
			Quantity: 50, RequestedPrice: 10.00, RequestedDeliveryDays: 18,
			Priority: domain.PriorityRush,
		},
		Rounds: []domain.RoundSummary{{Round: 1}, {Round: 2, Converged: true}, {Round: 3, Converged: true}},
		Consensus: domain.ConsensusResult{
			Approved: true, FinalPrice: 10.80, FinalDeliveryDays: 19,
			FinalMargin: 21.3, ShippingMode: domain.ShipGround,
			RiskScore: domain.RiskLow, Confidence: 94, Supplier: "ChemCorp Asia",
		},
		Backend: "deterministic",
	})
	if err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(buf.String(), "ord-h1") {
		t.Errorf("expected listing to contain ord-h1, got: %s", buf.String())
	}

	cmd = newRootCmd()
	buf = new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history", saved.ID, "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "APPROVED") {
		t.Errorf("expected APPROVED in detail, got: %s", out)
	}
	if !strings.Contains(out, "$10.80/unit") {
		t.Errorf("expected final price in detail, got: %s", out)
	}
	if !strings.Contains(out, "3: ") {
		t.Errorf("expected round records in detail, got: %s", out)
	}
}

func TestHistoryCmd_NotFound(t *testing.T) {
	cfgPath := writeTestConfig(t)

	// Migrate so the query fails on content, not schema.
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"db", "init", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	cmd = newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"history", "missing-id", "--config", cfgPath})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing run")
	}
}
