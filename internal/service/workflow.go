// 비용 알림 분류 워크플로우 엔진 정의
//
// 한 run의 처리 흐름:
//  1. Scout: 알림 텍스트로 지식 저장소 벡터 검색, confidence 산출
//  2. ConfidenceGate: confidence < threshold면 에스컬레이션
//  3. Auditor: 검색 컨텍스트 기반 LLM 분석 후 권고 분류
//  4. Router: status/disposition으로 다음 노드 결정
//  5. Paymaster(승인 시): 바운티 계산 후 개발자 지갑으로 전송
//  6. 종료 상태 도달 후 체크포인트/감사로그/추론로그 영속화
//
// 실패 정책:
//   - 검색/추론 실패: run은 ESCALATED로 종료 (에러 아님)
//   - 결제 실패: 감사 로그만 남기고 run은 COMPLETED 유지
//   - 영속화 실패: 로그만 남김 (최종 상태는 메모리 기준으로 반환)
//   - 라우팅 불변식 위반: run 중단, 에러 반환

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finops-engine/backend/internal/model"
)

var (
	ErrRetrieval = errors.New("knowledge retrieval failed")
	ErrReasoning = errors.New("reasoning service failed")
	ErrPayment   = errors.New("bounty payment failed")
	ErrNoAlert   = errors.New("no alert available")
)

// 감사 로그의 행위자 이름. 외부로 노출되는 문자열이므로 변경 금지.
const (
	actorScout     = "Scout"
	actorGate      = "ConfidenceGate"
	actorAuditor   = "Auditor"
	actorPaymaster = "Paymaster"
	actorEscalate  = "Escalation"
	actorComplete  = "Completion"
	actorEngine    = "Engine"
)

// KnowledgeSearcher - 알림 텍스트 기반 컨텍스트 검색
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.ContextMatch, error)
}

// Reasoner - 알림과 컨텍스트에 대한 분석 텍스트 생성
type Reasoner interface {
	Analyze(ctx context.Context, alert model.Alert, matches []model.ContextMatch) (string, error)
}

// PaymentRail - 바운티 전송
type PaymentRail interface {
	Mode() model.PaymentMode
	Transfer(ctx context.Context, amount float64, recipient string) (model.TransferResult, error)
}

// CheckpointStore - run 상태 스냅샷 저장
type CheckpointStore interface {
	SaveCheckpoint(ctx context.Context, runID string, state model.WorkflowState) error
}

// AuditSink - 감사 로그 영속화
type AuditSink interface {
	AppendAudit(ctx context.Context, runID, entry string) error
}

// ReasoningLogStore - run 결과 요약 기록
type ReasoningLogStore interface {
	InsertReasoningLog(ctx context.Context, rec model.ReasoningLogRecord) error
}

// AlertSource - 처리할 다음 알림 조회
type AlertSource interface {
	NextAlert(ctx context.Context) (*model.Alert, error)
}

// EscalationNotifier - 에스컬레이션 run 외부 통지 (best-effort)
type EscalationNotifier interface {
	NotifyEscalation(ctx context.Context, state model.WorkflowState) error
}

// WorkflowEngine 구조체 정의
type WorkflowEngine struct {
	knowledge KnowledgeSearcher
	reasoner  Reasoner
	payments  PaymentRail
	bounty    BountyCalculator
	gate      ConfidenceGate

	checkpoints CheckpointStore
	auditSink   AuditSink
	logs        ReasoningLogStore
	alerts      AlertSource
	escalations EscalationNotifier

	searchLimit int
	runTimeout  time.Duration
}

// WorkflowEngineConfig - 엔진 조립에 필요한 모든 협력자
type WorkflowEngineConfig struct {
	Knowledge   KnowledgeSearcher
	Reasoner    Reasoner
	Payments    PaymentRail
	Bounty      BountyCalculator
	Gate        ConfidenceGate
	Checkpoints CheckpointStore
	AuditSink   AuditSink
	Logs        ReasoningLogStore
	Alerts      AlertSource
	Escalations EscalationNotifier
	SearchLimit int
	RunTimeout  time.Duration
}

func NewWorkflowEngine(cfg WorkflowEngineConfig) (*WorkflowEngine, error) {
	if cfg.Knowledge == nil {
		return nil, fmt.Errorf("workflow engine: knowledge searcher is required")
	}
	if cfg.Reasoner == nil {
		return nil, fmt.Errorf("workflow engine: reasoner is required")
	}
	if cfg.Payments == nil {
		return nil, fmt.Errorf("workflow engine: payment rail is required")
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 3
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 120 * time.Second
	}

	return &WorkflowEngine{
		knowledge:   cfg.Knowledge,
		reasoner:    cfg.Reasoner,
		payments:    cfg.Payments,
		bounty:      cfg.Bounty,
		gate:        cfg.Gate,
		checkpoints: cfg.Checkpoints,
		auditSink:   cfg.AuditSink,
		logs:        cfg.Logs,
		alerts:      cfg.Alerts,
		escalations: cfg.Escalations,
		searchLimit: cfg.SearchLimit,
		runTimeout:  cfg.RunTimeout,
	}, nil
}

// newRunID - "finops-workflow-<timestamp>-<suffix>" 형식의 run 식별자 생성
func newRunID() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("finops-workflow-%s-%s", time.Now().UTC().Format("20060102-150405"), suffix)
}

// RunNext - 알림 소스에서 다음 알림을 꺼내 하나의 run 실행
func (e *WorkflowEngine) RunNext(ctx context.Context) (model.WorkflowState, error) {
	if e.alerts == nil {
		return model.WorkflowState{}, fmt.Errorf("workflow engine: alert source not configured")
	}

	alert, err := e.alerts.NextAlert(ctx)
	if err != nil {
		return model.WorkflowState{}, fmt.Errorf("fetch next alert: %w", err)
	}
	if alert == nil {
		return model.WorkflowState{}, ErrNoAlert
	}
	return e.Run(ctx, *alert)
}

// Run - 알림 하나를 종료 상태까지 처리
// 반환되는 에러는 불변식 위반 같은 치명적 오류에 한정된다.
// 검색/추론 실패로 에스컬레이션된 run은 정상 종료로 취급한다.
func (e *WorkflowEngine) Run(ctx context.Context, alert model.Alert) (model.WorkflowState, error) {
	if err := alert.Validate(); err != nil {
		return model.WorkflowState{}, fmt.Errorf("invalid alert: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.runTimeout)
	defer cancel()

	state := model.NewWorkflowState(newRunID())
	state.Alert = &alert
	state = state.WithAudit(actorEngine, "run started for alert %s (severity=%s resource=%s)",
		alert.AlertID, alert.Severity, alert.ResourceName)

	log.Printf("workflow run started run_id=%s alert_id=%s severity=%s", state.RunID, alert.AlertID, alert.Severity)

	state = e.scout(ctx, state)

	if state.Status == model.StatusProcessing {
		state = e.auditor(ctx, state)
	}

	edge, err := Route(state.Status, state.Disposition)
	if err != nil {
		// 불변식 위반: 조용히 넘어가지 않고 run을 중단한다
		log.Printf("workflow invariant violated run_id=%s status=%s err=%v", state.RunID, state.Status, err)
		state = state.WithAudit(actorEngine, "fatal: %v", err)
		e.persist(state)
		return state, err
	}

	switch edge {
	case EdgePaymaster:
		state = e.paymaster(ctx, state)
		state = e.complete(state)
	case EdgeComplete:
		state = e.complete(state)
	case EdgeEscalate:
		state = e.escalate(ctx, state)
	}

	e.persist(state)

	log.Printf("workflow run finished run_id=%s status=%s recommendation=%s confidence=%.4f",
		state.RunID, state.Status, state.Recommendation, state.ConfidenceValue())
	return state, nil
}

// scout - 지식 저장소 검색으로 컨텍스트와 confidence 확보 후 게이트 판정
func (e *WorkflowEngine) scout(ctx context.Context, state model.WorkflowState) model.WorkflowState {
	query := state.Alert.Query()
	matches, err := e.knowledge.Search(ctx, query, e.searchLimit)
	if err != nil {
		log.Printf("knowledge retrieval failed run_id=%s err=%v", state.RunID, err)
		state.Status = model.StatusEscalated
		state = state.WithConfidence(0)
		return state.WithAudit(actorScout, "knowledge retrieval failed: %v (%v)", err, ErrRetrieval)
	}

	state.ContextMatches = matches
	if top, ok := state.TopMatch(); ok {
		state = state.WithConfidence(top.Score)
		state = state.WithAudit(actorScout, "retrieved %d context matches, top resource=%s score=%.4f",
			len(matches), top.Metadata.Name, top.Score)
	} else {
		state = state.WithConfidence(0)
		state = state.WithAudit(actorScout, "no context matches for query %q", query)
	}

	if e.gate.Evaluate(state.ConfidenceValue()) == GateEscalate {
		state.Status = model.StatusEscalated
		return state.WithAudit(actorGate, "confidence %.4f below threshold %.2f, escalating",
			state.ConfidenceValue(), e.gate.Threshold)
	}

	return state.WithAudit(actorGate, "confidence %.4f meets threshold %.2f, proceeding",
		state.ConfidenceValue(), e.gate.Threshold)
}

// auditor - LLM 분석 후 권고/처분 분류
func (e *WorkflowEngine) auditor(ctx context.Context, state model.WorkflowState) model.WorkflowState {
	analysis, err := e.reasoner.Analyze(ctx, *state.Alert, state.ContextMatches)
	if err != nil {
		log.Printf("reasoning failed run_id=%s err=%v", state.RunID, err)
		state.Status = model.StatusEscalated
		return state.WithAudit(actorAuditor, "reasoning failed: %v (%v)", err, ErrReasoning)
	}

	classification := ClassifyAnalysis(analysis)
	state.Analysis = analysis
	state.Recommendation = classification.Recommendation
	state.Disposition = classification.Disposition
	state.Status = model.StatusCompleted

	return state.WithAudit(actorAuditor, "analysis complete: recommendation=%s disposition=%s",
		classification.Recommendation, classification.Disposition)
}

// paymaster - 승인된 run에 대해 바운티 계산 및 전송
// 전송 실패는 run을 실패시키지 않지만, 누적 필드는 성공한 결제에만 반영된다.
func (e *WorkflowEngine) paymaster(ctx context.Context, state model.WorkflowState) model.WorkflowState {
	top, ok := state.TopMatch()
	if !ok {
		// APPROVED인데 컨텍스트가 없는 경우는 게이트 구조상 없어야 하지만
		// 결제 단계에서 지갑 없이 전송을 시도하지는 않는다
		return state.WithAudit(actorPaymaster, "no context match available, skipping bounty payment")
	}

	result := e.bounty.Compute(top.HourlyCost)
	state = state.WithAudit(actorPaymaster, "identified monthly savings $%.2f (hourly cost $%.4f)",
		result.MonthlySavings, top.HourlyCost)

	if top.DeveloperWallet == "" {
		log.Printf("bounty skipped run_id=%s reason=missing developer wallet resource=%s",
			state.RunID, top.Metadata.Name)
		return state.WithAudit(actorPaymaster, "no developer wallet on record for %s, bounty skipped",
			top.Metadata.Name)
	}

	transfer, err := e.payments.Transfer(ctx, result.BountyAmount, top.DeveloperWallet)
	if err != nil {
		log.Printf("bounty transfer error run_id=%s err=%v", state.RunID, err)
		return state.WithAudit(actorPaymaster, "bounty transfer error: %v (%v)", err, ErrPayment)
	}
	if !transfer.Success {
		log.Printf("bounty transfer rejected run_id=%s reason=%s", state.RunID, transfer.Error)
		return state.WithAudit(actorPaymaster, "bounty transfer rejected: %s", transfer.Error)
	}

	// 누적 필드 갱신은 전송 성공 시 1회뿐이다
	state.Payment = &model.PaymentReceipt{
		TxID:      transfer.TxID,
		Amount:    result.BountyAmount,
		Recipient: top.DeveloperWallet,
	}
	state.SavingsUSD += result.MonthlySavings
	state.BountyPaid += result.BountyAmount

	return state.WithAudit(actorPaymaster, "bounty %.6f ETH paid to %s (mode=%s tx=%s)",
		result.BountyAmount, top.DeveloperWallet, e.payments.Mode(), transfer.TxID)
}

// escalate - 에스컬레이션 종료 처리 및 외부 통지
// 에스컬레이션된 run의 권고는 항상 NO_CHANGE (사람이 판단할 때까지 변경 없음)
func (e *WorkflowEngine) escalate(ctx context.Context, state model.WorkflowState) model.WorkflowState {
	state.Recommendation = model.RecommendationNoChange
	state = state.WithAudit(actorEscalate, "run escalated for human review, recommendation=%s", state.Recommendation)

	if e.escalations != nil {
		if err := e.escalations.NotifyEscalation(ctx, state); err != nil {
			// 통지 실패는 run 결과에 영향을 주지 않는다
			log.Printf("escalation notification failed run_id=%s err=%v", state.RunID, err)
			state = state.WithAudit(actorEscalate, "notification failed: %v", err)
		}
	}
	return state
}

// complete - 정상 종료 처리
func (e *WorkflowEngine) complete(state model.WorkflowState) model.WorkflowState {
	return state.WithAudit(actorComplete, "run completed with recommendation=%s", state.Recommendation)
}

// persist - 종료 상태를 체크포인트/감사로그/추론로그로 영속화
// run 타임아웃과 분리된 컨텍스트를 사용한다. 실패는 로그만 남긴다.
func (e *WorkflowEngine) persist(state model.WorkflowState) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if e.checkpoints != nil {
		if err := e.checkpoints.SaveCheckpoint(ctx, state.RunID, state); err != nil {
			log.Printf("checkpoint save failed run_id=%s err=%v", state.RunID, err)
		}
	}

	if e.auditSink != nil {
		for _, entry := range state.AuditTrail {
			if err := e.auditSink.AppendAudit(ctx, state.RunID, entry); err != nil {
				log.Printf("audit append failed run_id=%s err=%v", state.RunID, err)
				break
			}
		}
	}

	if e.logs != nil {
		rec := model.ReasoningLogRecord{
			RunID:          state.RunID,
			Status:         state.Status,
			Recommendation: state.Recommendation,
			Disposition:    state.Disposition,
			Confidence:     state.ConfidenceValue(),
			Analysis:       state.Analysis,
			MonthlySavings: state.SavingsUSD,
			CreatedAt:      time.Now().UTC(),
		}
		if state.Alert != nil {
			rec.AlertID = state.Alert.AlertID
		}
		if top, ok := state.TopMatch(); ok {
			rec.HourlyCost = top.HourlyCost
		}
		if state.Payment != nil {
			rec.TxHash = state.Payment.TxID
			rec.TxAmount = state.Payment.Amount
		}
		if err := e.logs.InsertReasoningLog(ctx, rec); err != nil {
			log.Printf("reasoning log insert failed run_id=%s err=%v", state.RunID, err)
		}
	}
}
