// 워크플로우 실행 상태 정의
//
// WorkflowState는 한 번의 실행(run) 동안 노드를 거치며 전달되는 단일 상태 값.
// 각 노드는 상태를 직접 변경하지 않고 새 값을 반환한다 (value semantics).
// status가 ESCALATED 또는 COMPLETED가 된 이후에는 터미널 노드가
// audit_trail 추가와 결제/누적 필드 설정만 수행할 수 있다.

package model

import (
	"fmt"
	"time"
)

// Status - 워크플로우 상태
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusEscalated  Status = "ESCALATED"
	StatusCompleted  Status = "COMPLETED"
)

// Recommendation - 최종 권고 분류
type Recommendation string

const (
	RecommendationDecommission Recommendation = "DECOMMISSION"
	RecommendationOptimize     Recommendation = "OPTIMIZE"
	RecommendationMonitor      Recommendation = "MONITOR"
	RecommendationReview       Recommendation = "REVIEW"
	RecommendationNoChange     Recommendation = "NO_CHANGE"
)

// Disposition - 승인 처분
type Disposition string

const (
	DispositionApproved Disposition = "APPROVED"
	DispositionReview   Disposition = "REVIEW"
)

// WorkflowState - 한 run의 전체 상태
type WorkflowState struct {
	RunID          string          `json:"run_id"`
	Alert          *Alert          `json:"alert,omitempty"`
	Status         Status          `json:"status"`
	Confidence     *float64        `json:"confidence,omitempty"`
	ContextMatches []ContextMatch  `json:"context_matches,omitempty"`
	Analysis       string          `json:"analysis,omitempty"`
	Recommendation Recommendation  `json:"recommendation,omitempty"`
	Disposition    Disposition     `json:"approval_disposition,omitempty"`
	Payment        *PaymentReceipt `json:"payment,omitempty"`
	AuditTrail     []string        `json:"audit_trail"`
	SavingsUSD     float64         `json:"running_savings_usd"`
	BountyPaid     float64         `json:"running_bounty_paid"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewWorkflowState - run 시작 시 빈 상태 생성
func NewWorkflowState(runID string) WorkflowState {
	return WorkflowState{
		RunID:      runID,
		Status:     StatusProcessing,
		AuditTrail: []string{},
		CreatedAt:  time.Now().UTC(),
	}
}

// WithAudit - 타임스탬프가 붙은 감사 항목을 추가한 새 상태 반환
// 기존 상태의 슬라이스를 공유하지 않도록 복사 후 추가
func (s WorkflowState) WithAudit(actor, format string, args ...any) WorkflowState {
	entry := fmt.Sprintf("[%s] %s: %s",
		time.Now().UTC().Format(time.RFC3339),
		actor,
		fmt.Sprintf(format, args...),
	)
	trail := make([]string, len(s.AuditTrail), len(s.AuditTrail)+1)
	copy(trail, s.AuditTrail)
	s.AuditTrail = append(trail, entry)
	return s
}

// WithConfidence - confidence 값을 설정한 새 상태 반환
func (s WorkflowState) WithConfidence(score float64) WorkflowState {
	s.Confidence = &score
	return s
}

// Terminal - 현재 상태가 종료 상태인지 여부
func (s WorkflowState) Terminal() bool {
	return s.Status == StatusEscalated || s.Status == StatusCompleted
}

// TopMatch - 가장 높은 순위의 검색 결과 반환
// 검색 결과는 점수 내림차순으로 저장되므로 첫 번째 항목을 사용
func (s WorkflowState) TopMatch() (ContextMatch, bool) {
	if len(s.ContextMatches) == 0 {
		return ContextMatch{}, false
	}
	return s.ContextMatches[0], true
}

// ConfidenceValue - confidence 값 반환 (없으면 0)
func (s WorkflowState) ConfidenceValue() float64 {
	if s.Confidence == nil {
		return 0
	}
	return *s.Confidence
}
