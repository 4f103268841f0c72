// 인프라 비용 알림 입력 레코드 정의
// AlertSource가 생성하며 워크플로우 실행 중에는 불변으로 취급
//
// 필드 구성:
//   - alert_id: 알림 고유 식별자 (예: "ALERT-2026-001")
//   - severity: 심각도 (low, medium, high, critical)
//   - resource_name: 플래그된 리소스 이름
//   - alert_type: 알림 유형 태그 (예: "idle_resource", "cost_spike")
//   - metrics: 메트릭 이름 -> 수치 매핑
//   - search_query: 지식 검색용 쿼리 힌트 (없으면 resource_name + message 사용)

package model

import (
	"fmt"
	"strings"
	"time"
)

// Severity - 알림 심각도
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity - 문자열을 Severity로 변환 (대소문자 무시)
func ParseSeverity(value string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityLow:
		return SeverityLow, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityCritical:
		return SeverityCritical, nil
	default:
		return "", fmt.Errorf("unknown severity: %q", value)
	}
}

// Alert - 개별 비용 알림
type Alert struct {
	AlertID      string             `json:"alert_id"`
	Severity     Severity           `json:"severity"`
	ResourceName string             `json:"resource_name"`
	AlertType    string             `json:"alert_type"`
	Message      string             `json:"message"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	SearchQuery  string             `json:"search_query,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Query - 지식 검색에 사용할 쿼리 문자열 반환
// search_query 힌트가 없으면 리소스 이름과 메시지를 결합
func (a Alert) Query() string {
	if strings.TrimSpace(a.SearchQuery) != "" {
		return a.SearchQuery
	}
	return strings.TrimSpace(a.ResourceName + " " + a.Message)
}

// Validate - 필수 필드 및 severity 값 검사
func (a Alert) Validate() error {
	if strings.TrimSpace(a.AlertID) == "" {
		return fmt.Errorf("alert_id is required")
	}
	if strings.TrimSpace(a.ResourceName) == "" {
		return fmt.Errorf("resource_name is required")
	}
	if _, err := ParseSeverity(string(a.Severity)); err != nil {
		return err
	}
	return nil
}
