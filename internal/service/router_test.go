package service

import (
	"errors"
	"testing"

	"github.com/finops-engine/backend/internal/model"
)

func TestRoute(t *testing.T) {
	cases := []struct {
		name        string
		status      model.Status
		disposition model.Disposition
		want        Edge
	}{
		{"escalated routes to escalate", model.StatusEscalated, "", EdgeEscalate},
		{"escalated ignores disposition", model.StatusEscalated, model.DispositionApproved, EdgeEscalate},
		{"completed approved routes to paymaster", model.StatusCompleted, model.DispositionApproved, EdgePaymaster},
		{"completed review routes to complete", model.StatusCompleted, model.DispositionReview, EdgeComplete},
		{"completed without disposition routes to complete", model.StatusCompleted, "", EdgeComplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Route(tc.status, tc.disposition)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected edge %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRouteProcessingIsInvariantViolation(t *testing.T) {
	_, err := Route(model.StatusProcessing, model.DispositionReview)
	if err == nil {
		t.Fatalf("expected error for PROCESSING status")
	}
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}
