// 트리아지 API 운영자 계정 타입 정의
//
// 운영자(Operator)는 트리아지 파이프라인을 다루는 사람 계정이다.
// 역할(role)에 따라 접근 범위가 갈린다:
//   - admin:   지식 시드 등 파이프라인 구성 변경 가능
//   - analyst: run 트리거/조회, 로그/지표 조회

package model

import "time"

// OperatorRole - 운영자 역할
type OperatorRole string

const (
	RoleAdmin   OperatorRole = "admin"
	RoleAnalyst OperatorRole = "analyst"
)

// Valid - 알려진 역할인지 검사
func (r OperatorRole) Valid() bool {
	return r == RoleAdmin || r == RoleAnalyst
}

// AuthRequest - 로그인/가입 요청 본문
type AuthRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// AuthResponse - 액세스 토큰 발급 응답
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthOperator - 요청 컨텍스트에 실리는 인증된 운영자
type AuthOperator struct {
	ID      int64
	LoginID string
	Role    OperatorRole
}

// Operator - operators 테이블 행
type Operator struct {
	ID           int64
	LoginID      string
	PasswordHash string
	Role         OperatorRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken - refresh_tokens 테이블 행 (해시만 저장)
type RefreshToken struct {
	ID         int64
	OperatorID int64
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}
