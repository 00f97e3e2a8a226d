package resources

import (
	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
)

// Charge 扣款交易
type Charge struct {
	ID            string
	Amount        decimal.Decimal
	Currency      string
	ReturnURL     string
	RedirectURL   string // 跳转类支付方式的收银台地址
	Cancellations []*Cancellation

	payment *Payment
}

// Payment 返回所属支付（弱引用）
func (c *Charge) Payment() *Payment {
	return c.payment
}

// CanceledAmount 返回已退款总额
func (c *Charge) CanceledAmount() decimal.Decimal {
	total := decimal.Zero
	for _, cancel := range c.Cancellations {
		total = total.Add(cancel.Amount)
	}
	return total
}

// Remaining 返回尚可退款的余额
func (c *Charge) Remaining() decimal.Decimal {
	return amount.NonNegative(c.Amount.Sub(c.CanceledAmount()))
}

// IsCanceled 判断扣款是否已全额退款
func (c *Charge) IsCanceled() bool {
	return amount.GreaterThanOrEqual(c.CanceledAmount(), c.Amount)
}

// AddCancellation 追加一条退款记录
func (c *Charge) AddCancellation(cancel *Cancellation) {
	cancel.payment = c.payment
	c.Cancellations = append(c.Cancellations, cancel)
}
