package service

import (
	"testing"

	"github.com/finops-engine/backend/internal/model"
)

func TestClassifyAnalysis(t *testing.T) {
	cases := []struct {
		name               string
		analysis           string
		wantRecommendation model.Recommendation
		wantDisposition    model.Disposition
	}{
		{
			"decommission keyword approves",
			"The instance is idle. Recommendation: DECOMMISSION this resource immediately.",
			model.RecommendationDecommission,
			model.DispositionApproved,
		},
		{
			"optimize keyword requires review",
			"CPU usage is low, we should optimize the instance type.",
			model.RecommendationOptimize,
			model.DispositionReview,
		},
		{
			"monitor keyword requires review",
			"Traffic pattern is unusual, monitor for another week.",
			model.RecommendationMonitor,
			model.DispositionReview,
		},
		{
			"no keyword falls back to review",
			"The resource appears healthy and cost-efficient.",
			model.RecommendationReview,
			model.DispositionReview,
		},
		{
			"decommission wins over later keywords",
			"Decommission the node, or at minimum optimize and monitor it.",
			model.RecommendationDecommission,
			model.DispositionApproved,
		},
		{
			"optimize wins over monitor regardless of position",
			"Monitor usage for now, then optimize the fleet.",
			model.RecommendationOptimize,
			model.DispositionReview,
		},
		{
			"matching is case insensitive",
			"DECOMMISSION",
			model.RecommendationDecommission,
			model.DispositionApproved,
		},
		{
			"empty analysis falls back to review",
			"",
			model.RecommendationReview,
			model.DispositionReview,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyAnalysis(tc.analysis)
			if got.Recommendation != tc.wantRecommendation {
				t.Fatalf("expected recommendation %s, got %s", tc.wantRecommendation, got.Recommendation)
			}
			if got.Disposition != tc.wantDisposition {
				t.Fatalf("expected disposition %s, got %s", tc.wantDisposition, got.Disposition)
			}
		})
	}
}

func TestClassifyAnalysisDeterministic(t *testing.T) {
	analysis := "optimize resources and monitor trends"
	first := ClassifyAnalysis(analysis)
	for i := 0; i < 10; i++ {
		if got := ClassifyAnalysis(analysis); got != first {
			t.Fatalf("expected stable result %+v, got %+v on attempt %d", first, got, i)
		}
	}
}
