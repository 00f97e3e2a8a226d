package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/resources"
)

// AuthorizeInput 预授权入参
type AuthorizeInput struct {
	Amount    decimal.Decimal
	Currency  string
	ReturnURL string
	Customer  *resources.Customer
	OrderID   string
}

// ChargeInput 直接扣款入参
type ChargeInput struct {
	Amount    decimal.Decimal
	Currency  string
	ReturnURL string
	Customer  *resources.Customer
	OrderID   string
}

// Authorize 对支持预授权的支付方式冻结资金，返回挂载在新支付聚合上的授权
func (c *Client) Authorize(ctx context.Context, paymentType resources.Authorizable, input AuthorizeInput) (*resources.Authorization, error) {
	if !amount.Positive(input.Amount) {
		return nil, fmt.Errorf("%w: authorize amount must be positive", resources.ErrInvalidState)
	}
	if _, bound := paymentType.(resources.CustomerBound); bound && input.Customer == nil {
		return nil, fmt.Errorf("%w: customer required by payment type %s", resources.ErrMissingResource, paymentType.TypeName())
	}
	if err := c.ensurePaymentType(ctx, paymentType); err != nil {
		return nil, err
	}
	if err := c.ensureCustomer(ctx, input.Customer); err != nil {
		return nil, err
	}
	orderID := input.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	payload := map[string]interface{}{
		"amount":    amount.Format(input.Amount),
		"currency":  input.Currency,
		"returnUrl": input.ReturnURL,
		"orderId":   orderID,
		"resources": linkedResources(paymentType, input.Customer),
	}
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, "payments/authorize", payload)
	if err != nil {
		return nil, err
	}
	paymentID, err := resp.Resource("paymentId")
	if err != nil {
		return nil, err
	}

	payment := resources.NewPayment(paymentType)
	payment.ID = paymentID
	payment.OrderID = orderID
	payment.Currency = input.Currency
	payment.Customer = input.Customer
	payment.RedirectURL = resp.RedirectURL

	authorization := &resources.Authorization{
		ID:        resp.ID,
		Amount:    input.Amount,
		Currency:  input.Currency,
		ReturnURL: input.ReturnURL,
	}
	payment.SetAuthorization(authorization)

	c.log.Infow("payment_authorized",
		"payment_id", paymentID,
		"authorization_id", resp.ID,
		"amount", amount.Format(input.Amount),
		"currency", input.Currency,
	)
	return authorization, nil
}

// Charge 对支持直接扣款的支付方式发起一笔独立扣款，返回挂载在新支付聚合上的扣款
func (c *Client) Charge(ctx context.Context, paymentType resources.Chargeable, input ChargeInput) (*resources.Charge, error) {
	if !amount.Positive(input.Amount) {
		return nil, fmt.Errorf("%w: charge amount must be positive", resources.ErrInvalidState)
	}
	if err := c.ensurePaymentType(ctx, paymentType); err != nil {
		return nil, err
	}
	if err := c.ensureCustomer(ctx, input.Customer); err != nil {
		return nil, err
	}
	orderID := input.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	payload := map[string]interface{}{
		"amount":    amount.Format(input.Amount),
		"currency":  input.Currency,
		"returnUrl": input.ReturnURL,
		"orderId":   orderID,
		"resources": linkedResources(paymentType, input.Customer),
	}
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, "payments/charges", payload)
	if err != nil {
		return nil, err
	}
	paymentID, err := resp.Resource("paymentId")
	if err != nil {
		return nil, err
	}

	payment := resources.NewPayment(paymentType)
	payment.ID = paymentID
	payment.OrderID = orderID
	payment.Currency = input.Currency
	payment.Customer = input.Customer
	payment.RedirectURL = resp.RedirectURL

	charge := &resources.Charge{
		ID:          resp.ID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		ReturnURL:   input.ReturnURL,
		RedirectURL: resp.RedirectURL,
	}
	payment.AddCharge(charge)

	c.log.Infow("payment_charged",
		"payment_id", paymentID,
		"charge_id", resp.ID,
		"amount", amount.Format(input.Amount),
		"currency", input.Currency,
	)
	return charge, nil
}

// ChargePayment 对已授权支付扣款，amount 为空时扣掉剩余授权容量
func (c *Client) ChargePayment(ctx context.Context, payment *resources.Payment, value *decimal.Decimal) (*resources.Charge, error) {
	if payment == nil || payment.ID == "" {
		return nil, fmt.Errorf("%w: payment not persisted", resources.ErrInvalidState)
	}
	if payment.Authorization == nil {
		return nil, fmt.Errorf("%w: payment has no authorization to charge", resources.ErrInvalidState)
	}
	remaining := payment.AuthRemainingCapacity()
	if !amount.Positive(remaining) {
		return nil, fmt.Errorf("%w: no remaining authorized amount", resources.ErrInvalidState)
	}
	chargeAmount := remaining
	if value != nil {
		if !amount.Positive(*value) {
			return nil, fmt.Errorf("%w: charge amount must be positive", resources.ErrInvalidState)
		}
		if amount.GreaterThan(*value, remaining) {
			return nil, fmt.Errorf("%w: charge exceeds remaining authorized amount", resources.ErrInvalidState)
		}
		chargeAmount = *value
	}

	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, paymentPath(payment.ID, "charges"), map[string]interface{}{
		"amount": amount.Format(chargeAmount),
	})
	if err != nil {
		if errors.Is(err, gateway.ErrRemoteRejected) {
			payment.MarkRemoteError()
		}
		return nil, err
	}

	charge := &resources.Charge{
		ID:       resp.ID,
		Amount:   chargeAmount,
		Currency: payment.Currency,
	}
	payment.AddCharge(charge)
	payment.ClearRemoteError()

	c.log.Infow("payment_charged",
		"payment_id", payment.ID,
		"charge_id", resp.ID,
		"amount", amount.Format(chargeAmount),
		"status", payment.Status(),
	)
	return charge, nil
}

// Ship 对延迟捕获类支付发送发货确认
func (c *Client) Ship(ctx context.Context, payment *resources.Payment) (*resources.Shipment, error) {
	if payment == nil || payment.ID == "" {
		return nil, fmt.Errorf("%w: payment not persisted", resources.ErrInvalidState)
	}
	if payment.PaymentType == nil {
		return nil, fmt.Errorf("%w: payment type", resources.ErrMissingResource)
	}
	if _, ok := payment.PaymentType.(resources.Shippable); !ok {
		return nil, fmt.Errorf("%w: payment type %s does not support shipment", resources.ErrInvalidState, payment.PaymentType.TypeName())
	}

	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, paymentPath(payment.ID, "shipments"), nil)
	if err != nil {
		if errors.Is(err, gateway.ErrRemoteRejected) {
			payment.MarkRemoteError()
		}
		return nil, err
	}

	shipment := &resources.Shipment{ID: resp.ID, Amount: resp.Amount}
	payment.AddShipment(shipment)
	payment.ClearRemoteError()

	c.log.Infow("payment_shipped", "payment_id", payment.ID, "shipment_id", resp.ID)
	return shipment, nil
}
