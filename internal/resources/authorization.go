package resources

import (
	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
)

// Authorization 预授权交易（一笔支付至多一条）
type Authorization struct {
	ID            string
	Amount        decimal.Decimal
	Currency      string
	ReturnURL     string
	Cancellations []*Cancellation

	payment *Payment
}

// Payment 返回所属支付（弱引用）
func (a *Authorization) Payment() *Payment {
	return a.payment
}

// CanceledAmount 返回已撤销总额
func (a *Authorization) CanceledAmount() decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.Cancellations {
		total = total.Add(c.Amount)
	}
	return total
}

// Remaining 返回尚可撤销的授权余额
func (a *Authorization) Remaining() decimal.Decimal {
	return amount.NonNegative(a.Amount.Sub(a.CanceledAmount()))
}

// IsCanceled 判断授权是否已全额撤销
func (a *Authorization) IsCanceled() bool {
	return amount.GreaterThanOrEqual(a.CanceledAmount(), a.Amount)
}

// AddCancellation 追加一条撤销记录
func (a *Authorization) AddCancellation(c *Cancellation) {
	c.payment = a.payment
	a.Cancellations = append(a.Cancellations, c)
}
