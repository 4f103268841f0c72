package template

import (
	"testing"
	"time"

	"github.com/finops-engine/backend/internal/model"
)

func TestRenderBody(t *testing.T) {
	run := RunData{
		ID:             "finops-workflow-20260831-120000-abcd",
		Status:         "ESCALATED",
		Confidence:     0.42,
		Recommendation: "",
		Reason:         "confidence below threshold",
	}
	alert := &AlertData{
		ID:        "ALERT-2026-001",
		Severity:  "high",
		Resource:  "staging-worker-7",
		Type:      "idle_resource",
		Message:   "CPU below 2%",
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	body := `run={{run.id}} status={{run.status}} conf={{run.confidence}} alert={{alert.id}} res={{alert.resource}} at={{alert.created_at}}`
	got := RenderBody(body, run, alert)
	want := `run=finops-workflow-20260831-120000-abcd status=ESCALATED conf=0.4200 alert=ALERT-2026-001 res=staging-worker-7 at=2026-08-30T10:00:00Z`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderBodyNilAlert(t *testing.T) {
	got := RenderBody(`id={{alert.id}} sev={{alert.severity}}`, RunData{}, nil)
	if got != "id= sev=" {
		t.Fatalf("expected empty alert variables, got %q", got)
	}
}

func TestRunDataFromState(t *testing.T) {
	state := model.NewWorkflowState("finops-workflow-test")
	state.Status = model.StatusEscalated
	state = state.WithConfidence(0.3)
	state = state.WithAudit("ConfidenceGate", "confidence 0.3000 below threshold 0.80, escalating")

	run := RunDataFromState(state)
	if run.ID != "finops-workflow-test" {
		t.Fatalf("unexpected run id: %q", run.ID)
	}
	if run.Status != "ESCALATED" {
		t.Fatalf("unexpected status: %q", run.Status)
	}
	if run.Confidence != 0.3 {
		t.Fatalf("unexpected confidence: %g", run.Confidence)
	}
	// Reason은 감사 추적의 마지막 항목
	if run.Reason == "" || run.Reason != state.AuditTrail[len(state.AuditTrail)-1] {
		t.Fatalf("unexpected reason: %q", run.Reason)
	}
}
