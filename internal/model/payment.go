// 결제 관련 공용 타입 정의
// client(PaymentRail 구현)와 service(BountyCalculator, Paymaster 노드)에서 공유

package model

// PaymentMode - 결제 모드
// live: 커스터디 API를 통한 실제 전송 / shadow: 영수증만 생성하는 시뮬레이션
type PaymentMode string

const (
	PaymentModeLive   PaymentMode = "live"
	PaymentModeShadow PaymentMode = "shadow"
)

// PaymentReceipt - 성공한 전송의 영수증
type PaymentReceipt struct {
	TxID      string  `json:"tx_id"`
	Amount    float64 `json:"amount"`
	Recipient string  `json:"recipient"`
}

// TransferResult - PaymentRail 전송 결과
// Success=false면 Error에 사유가 담긴다 (전송 실패는 run을 실패시키지 않음)
type TransferResult struct {
	Success bool   `json:"success"`
	TxID    string `json:"tx_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
