// 인프라 지식 저장소 (infra_knowledge 테이블)
//
// pgvector 코사인 거리 연산자(<=>)로 유사도 검색을 수행한다.
// score = 1 - distance를 [0, 1]로 클램프해 반환한다.
// "결과 없음"은 빈 슬라이스 + nil 에러이며, 에러는 전송 실패에만 사용한다.

package db

import (
	"context"

	"github.com/finops-engine/backend/internal/model"
	"github.com/pgvector/pgvector-go"
)

// text-embedding-004 차원
const embeddingDimension = 768

func (db *Postgres) EnsureKnowledgeSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`
		CREATE TABLE IF NOT EXISTS infra_knowledge (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			resource_type TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL DEFAULT '',
			service TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			instance_type TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			hourly_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			owner_email TEXT NOT NULL DEFAULT '',
			developer_wallet TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			embedding vector(768),
			embedding_model TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS infra_knowledge_priority_idx ON infra_knowledge(priority)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// InsertInfraDoc - 임베딩이 생성된 지식 문서 1건 저장
func (db *Postgres) InsertInfraDoc(ctx context.Context, doc model.InfraDocument, vector []float32, embeddingModel string) (int64, error) {
	query := `
		INSERT INTO infra_knowledge (
			name, resource_type, environment, service, region, instance_type,
			priority, hourly_cost, owner_email, developer_wallet, content,
			embedding, embedding_model, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id
	`

	var id int64
	err := db.Pool.QueryRow(ctx, query,
		doc.Metadata.Name,
		doc.Metadata.Type,
		doc.Metadata.Environment,
		doc.Metadata.Service,
		doc.Metadata.Region,
		doc.Metadata.InstanceType,
		doc.Priority,
		doc.HourlyCost,
		doc.OwnerEmail,
		doc.DeveloperWallet,
		doc.Content,
		pgvector.NewVector(vector),
		embeddingModel,
	).Scan(&id)
	return id, err
}

// SearchInfraContext - 쿼리 벡터와 유사한 문서를 점수 내림차순으로 조회
func (db *Postgres) SearchInfraContext(ctx context.Context, queryVector []float32, limit int) ([]model.ContextMatch, error) {
	query := `
		SELECT
			name, resource_type, environment, service, region, instance_type,
			priority, hourly_cost, owner_email, developer_wallet, content,
			1 - (embedding <=> $1) AS score
		FROM infra_knowledge
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`

	rows, err := db.Pool.Query(ctx, query, pgvector.NewVector(queryVector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.ContextMatch
	for rows.Next() {
		var m model.ContextMatch
		if err := rows.Scan(
			&m.Metadata.Name,
			&m.Metadata.Type,
			&m.Metadata.Environment,
			&m.Metadata.Service,
			&m.Metadata.Region,
			&m.Metadata.InstanceType,
			&m.Priority,
			&m.HourlyCost,
			&m.OwnerEmail,
			&m.DeveloperWallet,
			&m.Content,
			&m.Score,
		); err != nil {
			return nil, err
		}
		if m.Score < 0 {
			m.Score = 0
		}
		if m.Score > 1 {
			m.Score = 1
		}
		matches = append(matches, m)
	}

	if matches == nil {
		matches = []model.ContextMatch{}
	}
	return matches, rows.Err()
}
