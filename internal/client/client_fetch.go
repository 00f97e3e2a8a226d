package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/payrail-go/internal/constants"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/resources"
)

// FetchPayment 从网关拉取支付及其全部交易，构建本地聚合
func (c *Client) FetchPayment(ctx context.Context, id string) (*resources.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: payment id", resources.ErrMissingResource)
	}
	resp, err := gateway.Fetch(ctx, c.cfg, paymentPath(id))
	if err != nil {
		return nil, err
	}
	typeID, err := resp.Resource("typeId")
	if err != nil {
		return nil, err
	}
	paymentType, err := c.FetchPaymentType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	payment := resources.NewPayment(paymentType)
	applyPaymentResponse(payment, resp)
	c.log.Debugw("payment_fetched", "payment_id", payment.ID, "status", payment.Status())
	return payment, nil
}

// RefreshPayment 整体刷新本地聚合，服务端为准（last-fetch-wins）
func (c *Client) RefreshPayment(ctx context.Context, payment *resources.Payment) error {
	if payment == nil || payment.ID == "" {
		return fmt.Errorf("%w: payment not persisted", resources.ErrInvalidState)
	}
	resp, err := gateway.Fetch(ctx, c.cfg, paymentPath(payment.ID))
	if err != nil {
		return err
	}
	payment.Reset()
	applyPaymentResponse(payment, resp)
	return nil
}

// applyPaymentResponse 按服务端交易列表重建本地交易集合
func applyPaymentResponse(payment *resources.Payment, resp *gateway.Response) {
	payment.ID = resp.ID
	if resp.OrderID != "" {
		payment.OrderID = resp.OrderID
	}
	if resp.Currency != "" {
		payment.Currency = resp.Currency
	}
	if resp.RedirectURL != "" {
		payment.RedirectURL = resp.RedirectURL
	}
	if customerID := strings.TrimSpace(resp.Resources["customerId"]); customerID != "" {
		payment.Customer = &resources.Customer{ID: customerID}
	}

	chargesByID := map[string]*resources.Charge{}
	for _, tx := range resp.Transactions {
		switch tx.Type {
		case constants.TransactionTypeAuthorize:
			payment.SetAuthorization(&resources.Authorization{
				ID:       tx.ID,
				Amount:   tx.Amount,
				Currency: payment.Currency,
			})
		case constants.TransactionTypeCharge:
			charge := &resources.Charge{
				ID:       tx.ID,
				Amount:   tx.Amount,
				Currency: payment.Currency,
			}
			payment.AddCharge(charge)
			chargesByID[tx.ID] = charge
		case constants.TransactionTypeCancelAuthorize:
			if payment.Authorization == nil {
				continue
			}
			payment.Authorization.AddCancellation(&resources.Cancellation{
				ID:       tx.ID,
				Amount:   tx.Amount,
				Kind:     tx.Type,
				TargetID: payment.Authorization.ID,
			})
		case constants.TransactionTypeCancelCharge:
			charge, ok := chargesByID[tx.ParentID]
			if !ok {
				continue
			}
			charge.AddCancellation(&resources.Cancellation{
				ID:       tx.ID,
				Amount:   tx.Amount,
				Kind:     tx.Type,
				TargetID: charge.ID,
			})
		case constants.TransactionTypeShipment:
			payment.AddShipment(&resources.Shipment{ID: tx.ID, Amount: tx.Amount})
		case constants.TransactionTypeChargeback:
			payment.MarkChargeback()
		}
	}
}
