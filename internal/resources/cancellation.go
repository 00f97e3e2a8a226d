package resources

import (
	"github.com/shopspring/decimal"
)

// Cancellation 撤销/退款交易。创建后不再变更，部分撤销总是新增记录。
type Cancellation struct {
	ID       string
	Amount   decimal.Decimal
	Kind     string // cancel-authorize / cancel-charge
	TargetID string // 被撤销交易的服务端 ID

	payment *Payment
}

// Payment 返回所属支付（弱引用）
func (c *Cancellation) Payment() *Payment {
	return c.payment
}
