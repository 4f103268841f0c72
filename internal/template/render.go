// Package template provides escalation webhook body template rendering.
//
// 지원하는 변수 형식:
//
//	{{run.id}}, {{run.status}}, {{run.confidence}},
//	{{run.recommendation}}, {{run.reason}}
//
//	{{alert.id}}, {{alert.severity}}, {{alert.resource}},
//	{{alert.type}}, {{alert.message}}, {{alert.created_at}}
package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/finops-engine/backend/internal/model"
)

// RunData - 템플릿 렌더링에 사용할 run 데이터
type RunData struct {
	ID             string
	Status         string
	Confidence     float64
	Recommendation string
	Reason         string
}

// AlertData - 템플릿 렌더링에 사용할 Alert 데이터
type AlertData struct {
	ID        string
	Severity  string
	Resource  string
	Type      string
	Message   string
	CreatedAt time.Time
}

// RunDataFromState - WorkflowState에서 RunData 생성
// Reason은 감사 추적의 마지막 항목 (에스컬레이션 사유가 기록된 위치)
func RunDataFromState(state model.WorkflowState) RunData {
	reason := ""
	if len(state.AuditTrail) > 0 {
		reason = state.AuditTrail[len(state.AuditTrail)-1]
	}
	return RunData{
		ID:             state.RunID,
		Status:         string(state.Status),
		Confidence:     state.ConfidenceValue(),
		Recommendation: string(state.Recommendation),
		Reason:         reason,
	}
}

// AlertDataFromModel - model.Alert에서 AlertData 생성
func AlertDataFromModel(alert model.Alert) AlertData {
	return AlertData{
		ID:        alert.AlertID,
		Severity:  string(alert.Severity),
		Resource:  alert.ResourceName,
		Type:      alert.AlertType,
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	}
}

// RenderBody - webhook body 템플릿의 변수를 실제 값으로 치환
//
// alert가 nil이면 alert 변수는 빈 문자열로 치환됩니다.
func RenderBody(body string, run RunData, alert *AlertData) string {
	pairs := make([]string, 0, 22)

	pairs = append(pairs,
		"{{run.id}}", run.ID,
		"{{run.status}}", run.Status,
		"{{run.confidence}}", fmt.Sprintf("%.4f", run.Confidence),
		"{{run.recommendation}}", run.Recommendation,
		"{{run.reason}}", run.Reason,
	)

	if alert != nil {
		createdAt := ""
		if !alert.CreatedAt.IsZero() {
			createdAt = alert.CreatedAt.Format(time.RFC3339)
		}
		pairs = append(pairs,
			"{{alert.id}}", alert.ID,
			"{{alert.severity}}", alert.Severity,
			"{{alert.resource}}", alert.Resource,
			"{{alert.type}}", alert.Type,
			"{{alert.message}}", alert.Message,
			"{{alert.created_at}}", createdAt,
		)
	} else {
		pairs = append(pairs,
			"{{alert.id}}", "",
			"{{alert.severity}}", "",
			"{{alert.resource}}", "",
			"{{alert.type}}", "",
			"{{alert.message}}", "",
			"{{alert.created_at}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
