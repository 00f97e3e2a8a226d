package resources

import (
	"github.com/shopspring/decimal"
)

// Shipment 发货确认交易（延迟捕获类支付方式用）
type Shipment struct {
	ID     string
	Amount decimal.Decimal

	payment *Payment
}

// Payment 返回所属支付（弱引用）
func (s *Shipment) Payment() *Payment {
	return s.payment
}
