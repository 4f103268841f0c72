package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type AuthMeResponse struct {
	OperatorID int64  `json:"operatorId"`
	LoginID    string `json:"loginId"`
	Role       string `json:"role"`
}

// TriggerRunRequest - run 시작 요청
// alert가 없으면 설정된 AlertSource에서 알림을 가져온다
type TriggerRunRequest struct {
	Alert *Alert `json:"alert,omitempty"`
}

type RunResponse struct {
	Status string         `json:"status"`
	Data   *WorkflowState `json:"data"`
}

type RunListResponse struct {
	Status string       `json:"status"`
	Data   []RunSummary `json:"data"`
}

type LogListResponse struct {
	Status string               `json:"status"`
	Data   []ReasoningLogRecord `json:"data"`
}

type AuditTrailResponse struct {
	Status string   `json:"status"`
	Data   []string `json:"data"`
}

type MetricsResponse struct {
	Status string               `json:"status"`
	Data   *GlobalMetricsRecord `json:"data"`
}

type KnowledgeSeedRequest struct {
	Documents []InfraDocument `json:"documents"`
}

type KnowledgeSeedResponse struct {
	Status   string `json:"status"`
	Inserted int    `json:"inserted"`
}

type KnowledgeSearchResponse struct {
	Status string         `json:"status"`
	Data   []ContextMatch `json:"data"`
}
