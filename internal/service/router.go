// Auditor 이후의 라우팅 결정
//
// status와 approval disposition만으로 다음 노드를 결정한다.
// 알림별 하드코딩 분기는 없다. PROCESSING 상태로 라우터에 도달하는 것은
// 프로그래밍 오류이므로 조용히 오라우팅하지 않고 에러로 중단한다.

package service

import (
	"errors"
	"fmt"

	"github.com/finops-engine/backend/internal/model"
)

// ErrInvariant - 워크플로우 불변식 위반 (치명적, run 중단)
var ErrInvariant = errors.New("workflow invariant violation")

// Edge - 라우팅 결과
type Edge string

const (
	EdgeEscalate  Edge = "escalate"
	EdgePaymaster Edge = "paymaster"
	EdgeComplete  Edge = "complete"
)

// Route - 규칙을 순서대로 평가해 정확히 하나의 엣지를 반환
func Route(status model.Status, disposition model.Disposition) (Edge, error) {
	switch {
	case status == model.StatusEscalated:
		return EdgeEscalate, nil
	case status == model.StatusCompleted && disposition == model.DispositionApproved:
		return EdgePaymaster, nil
	case status == model.StatusCompleted:
		return EdgeComplete, nil
	default:
		return "", fmt.Errorf("%w: router reached with status=%s", ErrInvariant, status)
	}
}
