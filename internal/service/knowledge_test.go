package service

import (
	"context"
	"errors"
	"testing"

	"github.com/finops-engine/backend/internal/model"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	texts  []string
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.vector, "text-embedding-004", nil
}

type fakeKnowledgeRepo struct {
	matches   []model.ContextMatch
	searchErr error
	insertErr error
	inserted  []model.InfraDocument
}

func (f *fakeKnowledgeRepo) InsertInfraDoc(ctx context.Context, doc model.InfraDocument, vector []float32, embeddingModel string) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, doc)
	return int64(len(f.inserted)), nil
}

func (f *fakeKnowledgeRepo) SearchInfraContext(ctx context.Context, queryVector []float32, limit int) ([]model.ContextMatch, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.matches, nil
}

func TestKnowledgeSearch(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	repo := &fakeKnowledgeRepo{matches: []model.ContextMatch{{Score: 0.9}}}
	svc := NewKnowledgeService(embedder, repo)

	matches, err := svc.Search(context.Background(), "idle staging worker", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Score != 0.9 {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if len(embedder.texts) != 1 || embedder.texts[0] != "idle staging worker" {
		t.Fatalf("expected query to be embedded, got %v", embedder.texts)
	}
}

func TestKnowledgeSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewKnowledgeService(&fakeEmbedder{}, &fakeKnowledgeRepo{})
	if _, err := svc.Search(context.Background(), "", 3); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestKnowledgeSearchEmbeddingError(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	svc := NewKnowledgeService(embedder, &fakeKnowledgeRepo{})

	if _, err := svc.Search(context.Background(), "query", 3); err == nil {
		t.Fatalf("expected embedding error to propagate")
	}
}

func TestKnowledgeSeed(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}}
	repo := &fakeKnowledgeRepo{}
	svc := NewKnowledgeService(embedder, repo)

	docs := []model.InfraDocument{
		{Content: "doc one", Metadata: model.ResourceMetadata{Name: "a"}},
		{Content: "doc two", Metadata: model.ResourceMetadata{Name: "b"}},
	}

	inserted, err := svc.Seed(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 repo inserts, got %d", len(repo.inserted))
	}
}

func TestKnowledgeSeedStopsOnEmptyContent(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}}
	repo := &fakeKnowledgeRepo{}
	svc := NewKnowledgeService(embedder, repo)

	docs := []model.InfraDocument{
		{Content: "doc one"},
		{Content: ""},
	}

	inserted, err := svc.Seed(context.Background(), docs)
	if err == nil {
		t.Fatalf("expected error for empty content")
	}
	// 부분 시드: 실패 전까지 저장된 건수는 보존된다
	if inserted != 1 {
		t.Fatalf("expected 1 inserted before failure, got %d", inserted)
	}
}
