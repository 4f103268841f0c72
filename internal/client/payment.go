// 바운티 결제(PaymentRail) 클라이언트 정의
//
// 환경변수:
//   - PAYMENT_MODE: live | shadow
//   - PAYMENT_API_URL: 커스터디 API URL (live 모드 필수)
//   - PAYMENT_ACCOUNT: 전송 계정 이름
//   - PAYMENT_NETWORK: 전송 네트워크 (기본 base-sepolia)
//
// live 모드 처리 흐름:
//  1. 계정 잔액 조회 (실패해도 전송은 시도)
//  2. 잔액 부족이면 실패 결과 반환 (faucet 안내 포함)
//  3. POST /v2/transfers로 전송 요청
//
// shadow 모드는 네트워크 호출 없이 영수증만 생성한다. 두 모드의 차이는
// 이 클라이언트 안에 격리되어 있고 계산 공식은 service 레이어가 공유한다.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/model"
	"github.com/google/uuid"
)

// PaymentClient 구조체 정의
type PaymentClient struct {
	mode       model.PaymentMode
	baseURL    string
	account    string
	network    string
	httpClient *http.Client
}

type transferRequest struct {
	Account   string  `json:"account"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Asset     string  `json:"asset"`
	Network   string  `json:"network"`
}

type transferResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

type balanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// NewPaymentClient 객체 생성
func NewPaymentClient(cfg config.PaymentConfig) (*PaymentClient, error) {
	mode := model.PaymentMode(strings.ToLower(cfg.Mode))
	if mode != model.PaymentModeLive && mode != model.PaymentModeShadow {
		return nil, fmt.Errorf("invalid PAYMENT_MODE: %q", cfg.Mode)
	}
	if mode == model.PaymentModeLive && cfg.BaseURL == "" {
		return nil, fmt.Errorf("PAYMENT_API_URL is required in live mode")
	}

	return &PaymentClient{
		mode:    mode,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		account: cfg.AccountID,
		network: cfg.Network,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Mode - 현재 결제 모드 반환
func (c *PaymentClient) Mode() model.PaymentMode {
	return c.mode
}

// Transfer - 바운티 전송 실행
// 수신 주소/금액 검증 실패와 잔액 부족은 실패 결과로 반환하고,
// 전송(transport) 오류만 error로 반환한다.
func (c *PaymentClient) Transfer(ctx context.Context, amount float64, recipient string) (model.TransferResult, error) {
	if !strings.HasPrefix(recipient, "0x") {
		return model.TransferResult{
			Success: false,
			Error:   fmt.Sprintf("invalid recipient address: %s", recipient),
		}, nil
	}
	if amount <= 0 {
		return model.TransferResult{
			Success: false,
			Error:   fmt.Sprintf("invalid amount: %g, must be greater than 0", amount),
		}, nil
	}

	if c.mode == model.PaymentModeShadow {
		return model.TransferResult{
			Success: true,
			TxID:    "shadow-" + uuid.NewString(),
		}, nil
	}

	// 잔액 preflight - 조회 실패 시 경고만 남기고 전송은 시도
	if balance, err := c.getBalance(ctx); err == nil && balance < amount {
		return model.TransferResult{
			Success: false,
			Error: fmt.Sprintf(
				"insufficient balance: required %g ETH, available %g ETH (fund account %s via the %s faucet)",
				amount, balance, c.account, c.network,
			),
		}, nil
	}

	payload, err := json.Marshal(transferRequest{
		Account:   c.account,
		Recipient: recipient,
		Amount:    amount,
		Asset:     "ETH",
		Network:   c.network,
	})
	if err != nil {
		return model.TransferResult{}, fmt.Errorf("failed to marshal transfer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transfers", bytes.NewBuffer(payload))
	if err != nil {
		return model.TransferResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.TransferResult{}, fmt.Errorf("failed to send transfer request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.TransferResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var transferResp transferResponse
	if err := json.Unmarshal(body, &transferResp); err != nil {
		return model.TransferResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || transferResp.TxHash == "" {
		errMsg := transferResp.Error
		if errMsg == "" {
			errMsg = fmt.Sprintf("custody api returned status %d", resp.StatusCode)
		}
		return model.TransferResult{Success: false, Error: errMsg}, nil
	}

	return model.TransferResult{Success: true, TxID: transferResp.TxHash}, nil
}

func (c *PaymentClient) getBalance(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/v2/accounts/%s/balance?network=%s", c.baseURL, c.account, c.network)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("balance check returned status %d", resp.StatusCode)
	}

	var balanceResp balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&balanceResp); err != nil {
		return 0, err
	}
	return balanceResp.Balance, nil
}
