// 바운티 및 절감액 계산
//
// monthlySavings = hourlyCost * 720 (30일 근사), 모드와 무관하게 동일 공식.
// live 모드 바운티는 hourlyCost * 0.001을 [min, max]로 클램프한 값 (ETH),
// shadow 모드는 비용과 무관한 고정 설정값을 사용한다.
// 두 모드가 같은 계산기를 공유하므로 회계 공식이 갈라질 수 없다.

package service

import "github.com/finops-engine/backend/internal/model"

const (
	hoursPerMonth = 720
	bountyRate    = 0.001
)

// BountyResult - 계산 결과 (둘 다 음수가 될 수 없음)
type BountyResult struct {
	BountyAmount   float64
	MonthlySavings float64
}

// BountyCalculator - 순수 계산기, 부수효과 없음
type BountyCalculator struct {
	Mode         model.PaymentMode
	Min          float64
	Max          float64
	ShadowAmount float64
}

// Compute - 시간당 비용으로부터 바운티와 월간 절감액 산출
func (c BountyCalculator) Compute(hourlyCost float64) BountyResult {
	if hourlyCost < 0 {
		hourlyCost = 0
	}

	savings := hourlyCost * hoursPerMonth

	if c.Mode == model.PaymentModeShadow {
		return BountyResult{BountyAmount: c.ShadowAmount, MonthlySavings: savings}
	}

	bounty := hourlyCost * bountyRate
	if bounty < c.Min {
		bounty = c.Min
	}
	if bounty > c.Max {
		bounty = c.Max
	}
	return BountyResult{BountyAmount: bounty, MonthlySavings: savings}
}
