// 신뢰도 게이트 정의
//
// 벡터 검색 confidence를 임계값과 비교해 진행/에스컬레이션을 결정하는
// 순수 함수. 검색 결과가 하나도 없으면 엔진이 confidence 0으로 취급한다.
// 임계값은 배포 설정값이다 (운영 이력: 0.85, 이후 0.80으로 완화).

package service

// GateDecision - 게이트 판정 결과
type GateDecision string

const (
	GateProceed  GateDecision = "PROCEED"
	GateEscalate GateDecision = "ESCALATE"
)

// ConfidenceGate - 임계값을 보관하는 게이트
type ConfidenceGate struct {
	Threshold float64
}

// Evaluate - confidence < threshold면 ESCALATE, 아니면 PROCEED
func (g ConfidenceGate) Evaluate(confidence float64) GateDecision {
	if confidence < g.Threshold {
		return GateEscalate
	}
	return GateProceed
}
