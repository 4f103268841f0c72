// 관측용 출력 레코드 정의
// run이 종료 상태에 도달할 때 한 번 기록되며 코어에서 다시 읽지 않는다

package model

import "time"

// ReasoningLogRecord - run 1건의 결과 요약 (reasoning_logs 테이블)
type ReasoningLogRecord struct {
	RunID          string         `json:"run_id"`
	AlertID        string         `json:"alert_id"`
	Status         Status         `json:"status"`
	Recommendation Recommendation `json:"recommendation"`
	Disposition    Disposition    `json:"disposition,omitempty"`
	Confidence     float64        `json:"confidence"`
	Analysis       string         `json:"analysis,omitempty"`
	TxHash         string         `json:"tx_hash,omitempty"`
	TxAmount       float64        `json:"tx_amount,omitempty"`
	HourlyCost     float64        `json:"hourly_cost,omitempty"`
	MonthlySavings float64        `json:"monthly_savings,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// GlobalMetricsRecord - 전체 run 집계 (global_metrics 테이블, 저장 레이어에서 집계)
type GlobalMetricsRecord struct {
	TotalRuns       int64     `json:"total_runs"`
	ApprovedCount   int64     `json:"approved_count"`
	EscalatedCount  int64     `json:"escalated_count"`
	TotalSavingsUSD float64   `json:"total_savings_usd"`
	TotalBountyPaid float64   `json:"total_bounty_paid"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RunSummary - run 목록 조회용 요약
type RunSummary struct {
	RunID          string         `json:"run_id"`
	AlertID        string         `json:"alert_id"`
	Status         Status         `json:"status"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
	Confidence     float64        `json:"confidence"`
	CreatedAt      time.Time      `json:"created_at"`
}
