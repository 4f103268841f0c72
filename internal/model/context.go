// 지식 검색 결과 및 시드 문서 구조체 정의
// infra_knowledge 테이블의 행과 1:1 대응

package model

// ResourceMetadata - 리소스 메타데이터
type ResourceMetadata struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Environment  string `json:"environment"`
	Service      string `json:"service"`
	Region       string `json:"region"`
	InstanceType string `json:"instance_type"`
}

// ContextMatch - 벡터 검색 결과 1건
// Score는 코사인 유사도 기반 0.0 ~ 1.0
type ContextMatch struct {
	Score           float64          `json:"score"`
	Metadata        ResourceMetadata `json:"metadata"`
	Priority        string           `json:"priority"`
	HourlyCost      float64          `json:"hourly_cost"`
	OwnerEmail      string           `json:"owner_email"`
	DeveloperWallet string           `json:"developer_wallet"`
	Content         string           `json:"content"`
}

// InfraDocument - 지식 시드 요청 1건 (임베딩 생성 전)
type InfraDocument struct {
	Content         string           `json:"content"`
	Metadata        ResourceMetadata `json:"metadata"`
	Priority        string           `json:"priority"`
	HourlyCost      float64          `json:"hourly_cost"`
	OwnerEmail      string           `json:"owner_email"`
	DeveloperWallet string           `json:"developer_wallet"`
}
