// Gemini 기반 분석(reasoning) 클라이언트 정의
//
// 알림과 검색 컨텍스트로 프롬프트를 구성해 자유 텍스트 분석을 받아온다.
// 응답 파싱/분류는 service 레이어(classifier)의 책임이다.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/model"
	"google.golang.org/genai"
)

// 프롬프트에 포함할 컨텍스트 문서 수와 본문 길이 제한
const (
	promptContextLimit  = 2
	promptContentLength = 200
)

// ReasoningClient - Gemini generate-content 클라이언트
type ReasoningClient struct {
	client *genai.Client
	model  string
}

func NewReasoningClient(cfg config.AIConfig) (*ReasoningClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}
	return &ReasoningClient{client: client, model: cfg.ReasoningModel}, nil
}

// Analyze - 알림 + 컨텍스트로 분석 텍스트 생성
func (c *ReasoningClient) Analyze(ctx context.Context, alert model.Alert, matches []model.ContextMatch) (string, error) {
	prompt := buildPrompt(alert, matches)

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("empty analysis result")
	}
	return text, nil
}

func buildPrompt(alert model.Alert, matches []model.ContextMatch) string {
	maxScore := 0.0
	for _, m := range matches {
		if m.Score > maxScore {
			maxScore = m.Score
		}
	}

	contextBlocks := make([]string, 0, promptContextLimit)
	for i, m := range matches {
		if i >= promptContextLimit {
			break
		}
		content := m.Content
		if len(content) > promptContentLength {
			content = content[:promptContentLength] + "..."
		}
		contextBlocks = append(contextBlocks, fmt.Sprintf(
			"Resource: %s\nPriority: %s\nCost: $%.2f/hr\nEnvironment: %s\nDescription: %s",
			m.Metadata.Name, m.Priority, m.HourlyCost, m.Metadata.Environment, content,
		))
	}

	metricsJSON, _ := json.MarshalIndent(alert.Metrics, "", "  ")

	return fmt.Sprintf(`You are a FinOps AI assistant analyzing infrastructure alerts.

ALERT DETAILS:
- Alert ID: %s
- Severity: %s
- Resource: %s
- Type: %s
- Message: %s
- Metrics: %s

INFRASTRUCTURE CONTEXT (from knowledge base):
%s

CONFIDENCE SCORE: %.4f

Please analyze this alert and provide:
1. Is this a legitimate concern or a false positive?
2. What is the risk level (Critical/High/Medium/Low)?
3. Recommended action (e.g., decommission, optimize, monitor, ignore)
4. Rationale for your recommendation

Keep your response concise and actionable.`,
		alert.AlertID, alert.Severity, alert.ResourceName, alert.AlertType, alert.Message,
		string(metricsJSON), strings.Join(contextBlocks, "\n\n"), maxScore)
}
