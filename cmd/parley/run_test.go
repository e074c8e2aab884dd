package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunCmd_ReferenceOrder(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"run", "--id", "ord-test"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "APPROVED: PC-400 x50 for Acme Industrial") {
		t.Errorf("expected approval line, got: %s", out)
	}
	if !strings.Contains(out, "$10.80/unit") {
		t.Errorf("expected negotiated price 10.80, got: %s", out)
	}
	if !strings.Contains(out, "19 days via ground") {
		t.Errorf("expected 19-day ground delivery, got: %s", out)
	}
}

func TestRunCmd_RejectedOrder(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	// A price this low cannot clear the margin floor even after negotiation.
	cmd.SetArgs([]string{"run", "--id", "ord-low", "--price", "8.80"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "REJECTED") {
		t.Errorf("expected rejection, got: %s", out)
	}
}

func TestRunCmd_JSONEvents(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"run", "--id", "ord-json", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 10 {
		t.Fatalf("expected a full event stream, got %d lines", len(lines))
	}
	var first, last map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	if first["type"] != "backend_status" {
		t.Errorf("first event type = %v, want backend_status", first["type"])
	}
	if last["type"] != "done" {
		t.Errorf("last event type = %v, want done", last["type"])
	}
}

func TestRunCmd_InvalidOrder(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"run", "--quantity", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}
