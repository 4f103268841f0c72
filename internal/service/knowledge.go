// 인프라 지식 검색/시드 서비스 정의
//
// 처리 흐름:
//  1. Seed: 문서 content를 임베딩해 infra_knowledge에 저장
//  2. Search: 질의 텍스트를 임베딩해 코사인 유사도 상위 N건 조회
//
// 임베딩 모델과 검색 SQL은 각각 client/db 레이어에 격리되어 있다.

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/finops-engine/backend/internal/model"
)

// QueryEmbedder - 텍스트를 벡터로 변환 (모델 이름도 함께 반환)
type QueryEmbedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

// KnowledgeRepo - infra_knowledge 테이블 접근
type KnowledgeRepo interface {
	InsertInfraDoc(ctx context.Context, doc model.InfraDocument, vector []float32, embeddingModel string) (int64, error)
	SearchInfraContext(ctx context.Context, queryVector []float32, limit int) ([]model.ContextMatch, error)
}

// KnowledgeService 구조체 정의
type KnowledgeService struct {
	embedder QueryEmbedder
	repo     KnowledgeRepo
}

func NewKnowledgeService(embedder QueryEmbedder, repo KnowledgeRepo) *KnowledgeService {
	return &KnowledgeService{embedder: embedder, repo: repo}
}

// Search - 질의 텍스트로 컨텍스트 검색 (점수 내림차순)
func (s *KnowledgeService) Search(ctx context.Context, query string, limit int) ([]model.ContextMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	vector, _, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.repo.SearchInfraContext(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("search infra context: %w", err)
	}
	return matches, nil
}

// Seed - 문서들을 임베딩해 저장, 성공 건수 반환
// 중간 실패 시 이미 저장된 문서는 유지된다 (부분 시드 허용)
func (s *KnowledgeService) Seed(ctx context.Context, docs []model.InfraDocument) (int, error) {
	inserted := 0
	for i, doc := range docs {
		if doc.Content == "" {
			return inserted, fmt.Errorf("document %d: content is empty", i)
		}

		vector, embeddingModel, err := s.embedder.EmbedText(ctx, doc.Content)
		if err != nil {
			return inserted, fmt.Errorf("embed document %d: %w", i, err)
		}

		id, err := s.repo.InsertInfraDoc(ctx, doc, vector, embeddingModel)
		if err != nil {
			return inserted, fmt.Errorf("insert document %d: %w", i, err)
		}
		inserted++
		log.Printf("knowledge seeded id=%d resource=%s", id, doc.Metadata.Name)
	}
	return inserted, nil
}
