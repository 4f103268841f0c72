package service

import "testing"

func TestConfidenceGateEvaluate(t *testing.T) {
	gate := ConfidenceGate{Threshold: 0.80}

	cases := []struct {
		name       string
		confidence float64
		want       GateDecision
	}{
		{"well below threshold", 0.30, GateEscalate},
		{"just below threshold", 0.7999, GateEscalate},
		{"exactly at threshold", 0.80, GateProceed},
		{"above threshold", 0.95, GateProceed},
		{"zero confidence", 0, GateEscalate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := gate.Evaluate(tc.confidence)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
