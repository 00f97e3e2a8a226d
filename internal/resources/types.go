package resources

import (
	"github.com/payrail-go/internal/constants"
)

// PaymentType 支付方式资源（由网关创建后持有服务端 ID）
type PaymentType interface {
	TypeName() string
	TypeID() string
	SetTypeID(id string)
	Payload() map[string]interface{}
}

// Authorizable 支持预授权的支付方式
type Authorizable interface {
	PaymentType
	authorizable()
}

// Chargeable 支持直接扣款的支付方式
type Chargeable interface {
	PaymentType
	chargeable()
}

// Shippable 发货后才完成捕获的支付方式
type Shippable interface {
	PaymentType
	shippable()
}

// CustomerBound 预授权必须附带客户信息的支付方式
type CustomerBound interface {
	customerBound()
}

type typeBase struct {
	id string
}

// TypeID 返回服务端分配的类型 ID
func (b *typeBase) TypeID() string {
	return b.id
}

// SetTypeID 记录服务端分配的类型 ID
func (b *typeBase) SetTypeID(id string) {
	b.id = id
}

// Card 银行卡支付方式
type Card struct {
	typeBase
	Number     string
	ExpiryDate string
	CVC        string
}

// TypeName 返回类型名
func (c *Card) TypeName() string { return constants.PaymentTypeCard }

// Payload 返回创建请求载荷
func (c *Card) Payload() map[string]interface{} {
	return map[string]interface{}{
		"number": c.Number,
		"expiry": c.ExpiryDate,
		"cvc":    c.CVC,
	}
}

func (c *Card) authorizable() {}
func (c *Card) chargeable()   {}

// Invoice 普通发票支付方式
type Invoice struct {
	typeBase
}

// TypeName 返回类型名
func (i *Invoice) TypeName() string { return constants.PaymentTypeInvoice }

// Payload 返回创建请求载荷
func (i *Invoice) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

func (i *Invoice) chargeable() {}
func (i *Invoice) shippable() {}

// InvoiceGuaranteed 担保发票支付方式（需随客户信息预授权）
type InvoiceGuaranteed struct {
	typeBase
}

// TypeName 返回类型名
func (i *InvoiceGuaranteed) TypeName() string { return constants.PaymentTypeInvoiceGuaranteed }

// Payload 返回创建请求载荷
func (i *InvoiceGuaranteed) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

func (i *InvoiceGuaranteed) authorizable()  {}
func (i *InvoiceGuaranteed) shippable()     {}
func (i *InvoiceGuaranteed) customerBound() {}

// Ideal iDEAL 跳转支付方式
type Ideal struct {
	typeBase
	BIC string
}

// TypeName 返回类型名
func (i *Ideal) TypeName() string { return constants.PaymentTypeIdeal }

// Payload 返回创建请求载荷
func (i *Ideal) Payload() map[string]interface{} {
	return map[string]interface{}{
		"bic": i.BIC,
	}
}

func (i *Ideal) chargeable() {}
