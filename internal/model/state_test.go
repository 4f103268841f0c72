package model

import (
	"strings"
	"testing"
)

func TestWithAuditDoesNotShareSlice(t *testing.T) {
	base := NewWorkflowState("finops-workflow-test-1")
	base = base.WithAudit("Engine", "run started")

	branchA := base.WithAudit("Scout", "path A")
	branchB := base.WithAudit("Scout", "path B")

	if len(base.AuditTrail) != 1 {
		t.Fatalf("expected base trail unchanged, got %d entries", len(base.AuditTrail))
	}
	if len(branchA.AuditTrail) != 2 || len(branchB.AuditTrail) != 2 {
		t.Fatalf("expected both branches to have 2 entries, got %d and %d",
			len(branchA.AuditTrail), len(branchB.AuditTrail))
	}
	if strings.Contains(branchA.AuditTrail[1], "path B") {
		t.Fatalf("branch A trail contaminated by branch B: %v", branchA.AuditTrail)
	}
}

func TestWithAuditEntryFormat(t *testing.T) {
	state := NewWorkflowState("finops-workflow-test-2").WithAudit("Paymaster", "bounty %g paid", 0.00005)

	entry := state.AuditTrail[0]
	if !strings.HasPrefix(entry, "[") {
		t.Fatalf("expected timestamped entry, got %q", entry)
	}
	if !strings.Contains(entry, "] Paymaster: bounty 5e-05 paid") {
		t.Fatalf("unexpected entry format: %q", entry)
	}
}

func TestTerminal(t *testing.T) {
	state := NewWorkflowState("finops-workflow-test-3")
	if state.Terminal() {
		t.Fatalf("new state must not be terminal")
	}

	state.Status = StatusEscalated
	if !state.Terminal() {
		t.Fatalf("ESCALATED must be terminal")
	}

	state.Status = StatusCompleted
	if !state.Terminal() {
		t.Fatalf("COMPLETED must be terminal")
	}
}

func TestTopMatchAndConfidence(t *testing.T) {
	state := NewWorkflowState("finops-workflow-test-4")

	if _, ok := state.TopMatch(); ok {
		t.Fatalf("expected no top match on empty state")
	}
	if state.ConfidenceValue() != 0 {
		t.Fatalf("expected zero confidence, got %g", state.ConfidenceValue())
	}

	state.ContextMatches = []ContextMatch{{Score: 0.91}, {Score: 0.50}}
	top, ok := state.TopMatch()
	if !ok || top.Score != 0.91 {
		t.Fatalf("expected top match 0.91, got %+v ok=%v", top, ok)
	}

	state = state.WithConfidence(0.91)
	if state.ConfidenceValue() != 0.91 {
		t.Fatalf("expected confidence 0.91, got %g", state.ConfidenceValue())
	}
}

func TestAlertQuery(t *testing.T) {
	alert := Alert{ResourceName: "staging-worker-7", Message: "idle for 14 days"}
	if got := alert.Query(); got != "staging-worker-7 idle for 14 days" {
		t.Fatalf("unexpected fallback query: %q", got)
	}

	alert.SearchQuery = "staging worker idle"
	if got := alert.Query(); got != "staging worker idle" {
		t.Fatalf("expected search_query hint to win, got %q", got)
	}
}

func TestParseSeverity(t *testing.T) {
	for _, valid := range []string{"low", "Medium", "HIGH", " critical "} {
		if _, err := ParseSeverity(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseSeverity("urgent"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}
