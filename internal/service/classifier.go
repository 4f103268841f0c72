// 분석 텍스트 -> 권고 분류
//
// 소문자화한 분석 텍스트에 대해 고정 우선순위의 키워드 규칙을 순서대로
// 평가한다. 분석 텍스트에 여러 키워드가 동시에 등장할 수 있으므로
// 규칙 순서가 결과를 결정한다 (첫 매치 우선, 순서 변경 금지).
// 구조화된 출력 파싱의 단순한 대체 구현이며 classifier 뒤에 격리되어
// 있어 엔진 수정 없이 교체 가능하다.

package service

import (
	"strings"

	"github.com/finops-engine/backend/internal/model"
)

// Classification - 분류 결과 쌍
type Classification struct {
	Recommendation model.Recommendation
	Disposition    model.Disposition
}

// 우선순위 순서 고정. decommission만 자동 승인 대상이다.
var classificationRules = []struct {
	keyword        string
	recommendation model.Recommendation
	disposition    model.Disposition
}{
	{"decommission", model.RecommendationDecommission, model.DispositionApproved},
	{"optimize", model.RecommendationOptimize, model.DispositionReview},
	{"monitor", model.RecommendationMonitor, model.DispositionReview},
}

// ClassifyAnalysis - 분석 텍스트를 권고/처분 쌍으로 분류 (결정적)
func ClassifyAnalysis(analysis string) Classification {
	lowered := strings.ToLower(analysis)
	for _, rule := range classificationRules {
		if strings.Contains(lowered, rule.keyword) {
			return Classification{
				Recommendation: rule.recommendation,
				Disposition:    rule.disposition,
			}
		}
	}
	return Classification{
		Recommendation: model.RecommendationReview,
		Disposition:    model.DispositionReview,
	}
}
