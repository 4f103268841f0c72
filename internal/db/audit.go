// 감사 추적 저장소 (audit_trail 테이블, append-only)

package db

import "context"

func (db *Postgres) EnsureAuditSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS audit_trail (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			entry TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS audit_trail_run_id_idx ON audit_trail(run_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// AppendAudit - 감사 항목 1건 추가 (수정/삭제 없음)
func (db *Postgres) AppendAudit(ctx context.Context, runID, entry string) error {
	query := `
		INSERT INTO audit_trail (run_id, entry, created_at)
		VALUES ($1, $2, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, runID, entry)
	return err
}

// GetAuditTrail - run의 감사 항목 조회 (기록 순서대로)
func (db *Postgres) GetAuditTrail(ctx context.Context, runID string) ([]string, error) {
	query := `
		SELECT entry
		FROM audit_trail
		WHERE run_id = $1
		ORDER BY id ASC
	`

	rows, err := db.Pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if entries == nil {
		entries = []string{}
	}
	return entries, rows.Err()
}
