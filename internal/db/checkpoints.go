// 워크플로우 체크포인트 저장소 (workflow_checkpoints 테이블)
//
// run이 종료 상태에 도달하면 상태 전체를 JSONB로 1회 저장한다.
// append-only이며 동일 run_id의 중복 터미널 기록을 허용한다
// (at-least-once — 조회는 가장 최근 행 기준).

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finops-engine/backend/internal/model"
)

func (db *Postgres) EnsureWorkflowSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS workflow_checkpoints (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			status TEXT NOT NULL,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS workflow_checkpoints_run_id_idx ON workflow_checkpoints(run_id)`,
		`CREATE INDEX IF NOT EXISTS workflow_checkpoints_created_at_idx ON workflow_checkpoints(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// SaveCheckpoint - 종료 상태 1건 저장
func (db *Postgres) SaveCheckpoint(ctx context.Context, runID string, state model.WorkflowState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow state: %w", err)
	}

	query := `
		INSERT INTO workflow_checkpoints (run_id, status, state, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err = db.Pool.Exec(ctx, query, runID, string(state.Status), payload)
	return err
}

// GetCheckpoint - run의 가장 최근 체크포인트 조회
func (db *Postgres) GetCheckpoint(ctx context.Context, runID string) (*model.WorkflowState, error) {
	query := `
		SELECT state
		FROM workflow_checkpoints
		WHERE run_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var payload []byte
	if err := db.Pool.QueryRow(ctx, query, runID).Scan(&payload); err != nil {
		return nil, err
	}

	var state model.WorkflowState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow state: %w", err)
	}
	return &state, nil
}

// ListRuns - run 요약 목록 조회 (최신순)
func (db *Postgres) ListRuns(ctx context.Context) ([]model.RunSummary, error) {
	query := `
		SELECT DISTINCT ON (run_id)
			run_id,
			COALESCE(state->'alert'->>'alert_id', '') AS alert_id,
			status,
			COALESCE(state->>'recommendation', '') AS recommendation,
			COALESCE((state->>'confidence')::DOUBLE PRECISION, 0) AS confidence,
			created_at
		FROM workflow_checkpoints
		ORDER BY run_id, created_at DESC
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		var status, recommendation string
		if err := rows.Scan(&r.RunID, &r.AlertID, &status, &recommendation, &r.Confidence, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Status = model.Status(status)
		r.Recommendation = model.Recommendation(recommendation)
		list = append(list, r)
	}

	if list == nil {
		list = []model.RunSummary{}
	}
	return list, rows.Err()
}
