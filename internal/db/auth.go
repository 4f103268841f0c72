// 운영자 계정 및 리프레시 토큰 저장소 (operators, refresh_tokens 테이블)

package db

import (
	"context"
	"time"

	"github.com/finops-engine/backend/internal/model"
)

func (db *Postgres) EnsureAuthSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS operators (
			id BIGSERIAL PRIMARY KEY,
			login_id TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'analyst',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGSERIAL PRIMARY KEY,
			operator_id BIGINT NOT NULL REFERENCES operators(id) ON DELETE CASCADE,
			token_hash TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMPTZ NOT NULL,
			revoked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS refresh_tokens_operator_id_idx ON refresh_tokens(operator_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) scanOperator(ctx context.Context, query string, arg any) (*model.Operator, error) {
	var op model.Operator
	var role string
	err := db.Pool.QueryRow(ctx, query, arg).Scan(
		&op.ID,
		&op.LoginID,
		&op.PasswordHash,
		&role,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.Role = model.OperatorRole(role)
	return &op, nil
}

func (db *Postgres) CreateOperator(ctx context.Context, loginID, passwordHash string, role model.OperatorRole) (*model.Operator, error) {
	query := `
		INSERT INTO operators (login_id, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, login_id, password_hash, role, created_at, updated_at
	`
	var op model.Operator
	var roleStr string
	err := db.Pool.QueryRow(ctx, query, loginID, passwordHash, string(role)).Scan(
		&op.ID,
		&op.LoginID,
		&op.PasswordHash,
		&roleStr,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.Role = model.OperatorRole(roleStr)
	return &op, nil
}

func (db *Postgres) GetOperatorByLoginID(ctx context.Context, loginID string) (*model.Operator, error) {
	return db.scanOperator(ctx, `
		SELECT id, login_id, password_hash, role, created_at, updated_at
		FROM operators
		WHERE login_id = $1
	`, loginID)
}

func (db *Postgres) GetOperatorByID(ctx context.Context, id int64) (*model.Operator, error) {
	return db.scanOperator(ctx, `
		SELECT id, login_id, password_hash, role, created_at, updated_at
		FROM operators
		WHERE id = $1
	`, id)
}

func (db *Postgres) InsertRefreshToken(ctx context.Context, operatorID int64, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (operator_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, operatorID, tokenHash, expiresAt)
	return err
}

func (db *Postgres) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	query := `
		SELECT id, operator_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	var token model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.OperatorID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (db *Postgres) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := db.Pool.Exec(ctx, query, tokenHash)
	return err
}

// RotateRefreshToken - 기존 토큰 폐기와 새 토큰 발급을 한 트랜잭션으로 처리
func (db *Postgres) RotateRefreshToken(ctx context.Context, oldTokenID, operatorID int64, newTokenHash string, newExpiresAt time.Time) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL
	`, oldTokenID); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO refresh_tokens (operator_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`, operatorID, newTokenHash, newExpiresAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
