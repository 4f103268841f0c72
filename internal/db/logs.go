// 관측용 로그 저장소 (reasoning_logs / global_metrics 테이블)
//
// 전역 지표 집계는 엔진이 아니라 이 저장 레이어에서 수행한다.
// reasoning_logs INSERT와 global_metrics UPSERT를 같은 트랜잭션으로 묶어
// 대시보드 집계가 로그 수와 어긋나지 않게 한다.

package db

import (
	"context"

	"github.com/finops-engine/backend/internal/model"
)

func (db *Postgres) EnsureLogsSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS reasoning_logs (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			alert_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			recommendation TEXT NOT NULL DEFAULT '',
			disposition TEXT NOT NULL DEFAULT '',
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			analysis TEXT NOT NULL DEFAULT '',
			tx_hash TEXT NOT NULL DEFAULT '',
			tx_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			hourly_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			monthly_savings DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS reasoning_logs_created_at_idx ON reasoning_logs(created_at DESC)`,
		`
		CREATE TABLE IF NOT EXISTS global_metrics (
			id INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			total_runs BIGINT NOT NULL DEFAULT 0,
			approved_count BIGINT NOT NULL DEFAULT 0,
			escalated_count BIGINT NOT NULL DEFAULT 0,
			total_savings_usd DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_bounty_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// InsertReasoningLog - run 결과 기록 + 전역 지표 갱신 (단일 트랜잭션)
func (db *Postgres) InsertReasoningLog(ctx context.Context, rec model.ReasoningLogRecord) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO reasoning_logs (
			run_id, alert_id, status, recommendation, disposition, confidence,
			analysis, tx_hash, tx_amount, hourly_cost, monthly_savings, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`
	if _, err := tx.Exec(ctx, insertQuery,
		rec.RunID,
		rec.AlertID,
		string(rec.Status),
		string(rec.Recommendation),
		string(rec.Disposition),
		rec.Confidence,
		rec.Analysis,
		rec.TxHash,
		rec.TxAmount,
		rec.HourlyCost,
		rec.MonthlySavings,
	); err != nil {
		return err
	}

	approved := 0
	if rec.Disposition == model.DispositionApproved {
		approved = 1
	}
	escalated := 0
	if rec.Status == model.StatusEscalated {
		escalated = 1
	}

	upsertQuery := `
		INSERT INTO global_metrics (
			id, total_runs, approved_count, escalated_count,
			total_savings_usd, total_bounty_paid, updated_at
		)
		VALUES (1, 1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			total_runs = global_metrics.total_runs + 1,
			approved_count = global_metrics.approved_count + EXCLUDED.approved_count,
			escalated_count = global_metrics.escalated_count + EXCLUDED.escalated_count,
			total_savings_usd = global_metrics.total_savings_usd + EXCLUDED.total_savings_usd,
			total_bounty_paid = global_metrics.total_bounty_paid + EXCLUDED.total_bounty_paid,
			updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, upsertQuery, approved, escalated, rec.MonthlySavings, rec.TxAmount); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetReasoningLogs - 최근 로그 조회 (대시보드용)
func (db *Postgres) GetReasoningLogs(ctx context.Context, limit int) ([]model.ReasoningLogRecord, error) {
	query := `
		SELECT
			run_id, alert_id, status, recommendation, disposition, confidence,
			analysis, tx_hash, tx_amount, hourly_cost, monthly_savings, created_at
		FROM reasoning_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.ReasoningLogRecord
	for rows.Next() {
		var rec model.ReasoningLogRecord
		var status, recommendation, disposition string
		if err := rows.Scan(
			&rec.RunID, &rec.AlertID, &status, &recommendation, &disposition,
			&rec.Confidence, &rec.Analysis, &rec.TxHash, &rec.TxAmount,
			&rec.HourlyCost, &rec.MonthlySavings, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Status = model.Status(status)
		rec.Recommendation = model.Recommendation(recommendation)
		rec.Disposition = model.Disposition(disposition)
		list = append(list, rec)
	}

	if list == nil {
		list = []model.ReasoningLogRecord{}
	}
	return list, rows.Err()
}

// GetGlobalMetrics - 전역 지표 조회 (행이 없으면 0값 반환)
func (db *Postgres) GetGlobalMetrics(ctx context.Context) (*model.GlobalMetricsRecord, error) {
	query := `
		SELECT total_runs, approved_count, escalated_count,
			total_savings_usd, total_bounty_paid, updated_at
		FROM global_metrics
		WHERE id = 1
	`

	var m model.GlobalMetricsRecord
	err := db.Pool.QueryRow(ctx, query).Scan(
		&m.TotalRuns,
		&m.ApprovedCount,
		&m.EscalatedCount,
		&m.TotalSavingsUSD,
		&m.TotalBountyPaid,
		&m.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return &model.GlobalMetricsRecord{}, nil
		}
		return nil, err
	}
	return &m, nil
}
