package resources

import (
	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
	"github.com/payrail-go/internal/constants"
)

// Payment 支付聚合，独占持有其全部交易集合
type Payment struct {
	ID          string
	OrderID     string
	Currency    string
	RedirectURL string

	PaymentType   PaymentType
	Customer      *Customer
	Authorization *Authorization
	Charges       []*Charge
	Shipments     []*Shipment

	chargedBack bool
	remoteErr   bool
}

// Amounts 支付金额汇总
type Amounts struct {
	Total     decimal.Decimal
	Charged   decimal.Decimal
	Canceled  decimal.Decimal
	Remaining decimal.Decimal
}

// NewPayment 创建支付聚合
func NewPayment(paymentType PaymentType) *Payment {
	return &Payment{PaymentType: paymentType}
}

// SetAuthorization 挂载预授权并建立回引
func (p *Payment) SetAuthorization(a *Authorization) {
	a.payment = p
	for _, c := range a.Cancellations {
		c.payment = p
	}
	p.Authorization = a
}

// AddCharge 追加扣款并建立回引
func (p *Payment) AddCharge(c *Charge) {
	c.payment = p
	for _, cancel := range c.Cancellations {
		cancel.payment = p
	}
	p.Charges = append(p.Charges, c)
}

// AddShipment 追加发货确认并建立回引
func (p *Payment) AddShipment(s *Shipment) {
	s.payment = p
	p.Shipments = append(p.Shipments, s)
}

// MarkChargeback 记录服务端拒付交易
func (p *Payment) MarkChargeback() {
	p.chargedBack = true
}

// MarkRemoteError 记录最近一次操作的网关错误
func (p *Payment) MarkRemoteError() {
	p.remoteErr = true
}

// ClearRemoteError 清除网关错误标记
func (p *Payment) ClearRemoteError() {
	p.remoteErr = false
}

// Reset 清空本地交易集合（整体刷新前调用，以服务端为准）
func (p *Payment) Reset() {
	p.Authorization = nil
	p.Charges = nil
	p.Shipments = nil
	p.chargedBack = false
	p.remoteErr = false
}

// GrossCharged 返回扣款总额（不含退款）
func (p *Payment) GrossCharged() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Charges {
		total = total.Add(c.Amount)
	}
	return total
}

// ChargeCanceledAmount 返回针对扣款的退款总额
func (p *Payment) ChargeCanceledAmount() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Charges {
		total = total.Add(c.CanceledAmount())
	}
	return total
}

// AuthRemainingCapacity 返回授权中尚未扣款且未撤销的容量
func (p *Payment) AuthRemainingCapacity() decimal.Decimal {
	if p.Authorization == nil {
		return decimal.Zero
	}
	capacity := p.Authorization.Amount.
		Sub(p.GrossCharged()).
		Sub(p.Authorization.CanceledAmount())
	return amount.NonNegative(capacity)
}

// ComputeAmounts 按当前交易集合计算金额汇总。
// 无扣款时授权撤销计入 Canceled；一旦产生扣款，授权撤销只收缩
// 剩余容量（进而收缩 Total），Canceled 仅统计针对扣款的退款。
func (p *Payment) ComputeAmounts() Amounts {
	if len(p.Charges) == 0 {
		if p.Authorization == nil {
			return Amounts{
				Total:     decimal.Zero,
				Charged:   decimal.Zero,
				Canceled:  decimal.Zero,
				Remaining: decimal.Zero,
			}
		}
		canceled := p.Authorization.CanceledAmount()
		return Amounts{
			Total:     p.Authorization.Amount,
			Charged:   decimal.Zero,
			Canceled:  canceled,
			Remaining: amount.NonNegative(p.Authorization.Amount.Sub(canceled)),
		}
	}

	gross := p.GrossCharged()
	canceled := p.ChargeCanceledAmount()
	remaining := p.AuthRemainingCapacity()
	return Amounts{
		Total:     gross.Add(remaining),
		Charged:   amount.NonNegative(gross.Sub(canceled)),
		Canceled:  canceled,
		Remaining: remaining,
	}
}

// Status 按决策表推导支付状态，自上而下首个命中生效
func (p *Payment) Status() string {
	if p.chargedBack {
		return constants.PaymentStatusChargeback
	}

	am := p.ComputeAmounts()
	remainingOpen := amount.Positive(am.Remaining)
	chargedOpen := amount.Positive(am.Charged)

	if amount.Positive(am.Canceled) && !remainingOpen && !chargedOpen {
		return constants.PaymentStatusCanceled
	}
	if chargedOpen && !remainingOpen {
		return constants.PaymentStatusCompleted
	}
	if chargedOpen && remainingOpen {
		return constants.PaymentStatusPartlyPaid
	}
	if p.Authorization != nil && !p.Authorization.IsCanceled() {
		return constants.PaymentStatusPending
	}
	if p.remoteErr {
		return constants.PaymentStatusError
	}
	return constants.PaymentStatusPending
}

// IsPending 判断待支付
func (p *Payment) IsPending() bool { return p.Status() == constants.PaymentStatusPending }

// IsCompleted 判断已完成
func (p *Payment) IsCompleted() bool { return p.Status() == constants.PaymentStatusCompleted }

// IsPartlyPaid 判断部分支付
func (p *Payment) IsPartlyPaid() bool { return p.Status() == constants.PaymentStatusPartlyPaid }

// IsCanceled 判断已取消
func (p *Payment) IsCanceled() bool { return p.Status() == constants.PaymentStatusCanceled }

// IsChargeback 判断发生拒付
func (p *Payment) IsChargeback() bool { return p.Status() == constants.PaymentStatusChargeback }

// IsError 判断错误态
func (p *Payment) IsError() bool { return p.Status() == constants.PaymentStatusError }
