// 에스컬레이션 웹훅 통지 서비스 정의
//
// 에스컬레이션으로 종료된 run을 운영 채널(웹훅)로 통지한다.
// 본문 템플릿의 {{run.*}}/{{alert.*}} 변수는 전송 직전에 치환된다.
// URL이 비어 있으면 통지는 비활성화된다.

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/model"
	"github.com/finops-engine/backend/internal/template"
)

// WebhookNotifier 구조체 정의
type WebhookNotifier struct {
	url        string
	method     string
	body       string
	httpClient *http.Client
}

func NewWebhookNotifier(cfg config.EscalationConfig) *WebhookNotifier {
	method := strings.ToUpper(cfg.Method)
	if method == "" {
		method = http.MethodPost
	}
	return &WebhookNotifier{
		url:        cfg.WebhookURL,
		method:     method,
		body:       cfg.Body,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled - 웹훅 URL 설정 여부
func (n *WebhookNotifier) Enabled() bool {
	return n.url != ""
}

// NotifyEscalation - 렌더링된 본문을 웹훅으로 전송
func (n *WebhookNotifier) NotifyEscalation(ctx context.Context, state model.WorkflowState) error {
	if !n.Enabled() {
		return nil
	}

	run := template.RunDataFromState(state)
	var alert *template.AlertData
	if state.Alert != nil {
		data := template.AlertDataFromModel(*state.Alert)
		alert = &data
	}
	payload := template.RenderBody(n.body, run, alert)

	req, err := http.NewRequestWithContext(ctx, n.method, n.url, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
