package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/payrail-go/internal/amount"
	"github.com/payrail-go/internal/constants"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/resources"
)

// CancelPayment 在支付的全部交易上分摊一次撤销请求。
// value 为空表示撤销所有可撤销金额。分摊顺序：先冲正授权中尚未
// 扣款的容量，再按创建顺序对扣款退款。已全额撤销的交易直接跳过；
// 中途网关报错时已创建的撤销保持有效，随错误一起返回。
func (c *Client) CancelPayment(ctx context.Context, payment *resources.Payment, value *decimal.Decimal) ([]*resources.Cancellation, error) {
	if payment == nil || payment.PaymentType == nil {
		return nil, fmt.Errorf("%w: payment has no payment type linked", resources.ErrInvalidState)
	}
	if payment.ID == "" {
		return nil, fmt.Errorf("%w: payment not persisted", resources.ErrInvalidState)
	}
	if payment.Authorization == nil && len(payment.Charges) == 0 {
		return nil, fmt.Errorf("%w: payment has no transactions to cancel", resources.ErrInvalidState)
	}

	cancelAll := value == nil
	var toCancel decimal.Decimal
	if !cancelAll {
		toCancel = *value
		if !amount.Positive(toCancel) {
			return nil, nil
		}
	}

	var created []*resources.Cancellation

	// 授权冲正：尚未被扣款消耗、也未被撤销的容量优先吸收请求
	capacity := payment.AuthRemainingCapacity()
	if payment.Authorization != nil && amount.Positive(capacity) {
		reversal := capacity
		if !cancelAll {
			reversal = amount.Min(toCancel, capacity)
		}
		cancellation, err := c.cancelAuthorization(ctx, payment, reversal)
		if err != nil {
			if !skippableRejection(err) {
				payment.MarkRemoteError()
				return created, err
			}
		} else {
			created = append(created, cancellation)
			if !cancelAll {
				toCancel = toCancel.Sub(cancellation.Amount)
				if !amount.Positive(toCancel) {
					payment.ClearRemoteError()
					return created, nil
				}
			}
		}
	}

	// 扣款退款：按创建顺序逐笔吸收剩余请求
	for _, charge := range payment.Charges {
		remainder := charge.Remaining()
		if !amount.Positive(remainder) {
			continue
		}
		refund := remainder
		if !cancelAll {
			refund = amount.Min(toCancel, remainder)
		}
		cancellation, err := c.cancelCharge(ctx, payment, charge, refund)
		if err != nil {
			if skippableRejection(err) {
				continue
			}
			payment.MarkRemoteError()
			return created, err
		}
		created = append(created, cancellation)
		if !cancelAll {
			toCancel = toCancel.Sub(cancellation.Amount)
			if !amount.Positive(toCancel) {
				break
			}
		}
	}

	payment.ClearRemoteError()
	c.log.Infow("payment_cancel_allocated",
		"payment_id", payment.ID,
		"cancellations", len(created),
		"status", payment.Status(),
	)
	return created, nil
}

// CancelCharge 直接撤销单笔扣款（不经分摊）
func (c *Client) CancelCharge(ctx context.Context, charge *resources.Charge, value *decimal.Decimal) (*resources.Cancellation, error) {
	payment := charge.Payment()
	if payment == nil || payment.ID == "" {
		return nil, fmt.Errorf("%w: charge not attached to a persisted payment", resources.ErrInvalidState)
	}
	remainder := charge.Remaining()
	if !amount.Positive(remainder) {
		return nil, fmt.Errorf("%w: charge already fully canceled", resources.ErrInvalidState)
	}
	refund := remainder
	if value != nil {
		refund = amount.Min(*value, remainder)
	}
	return c.cancelCharge(ctx, payment, charge, refund)
}

func (c *Client) cancelAuthorization(ctx context.Context, payment *resources.Payment, value decimal.Decimal) (*resources.Cancellation, error) {
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, paymentPath(payment.ID, "authorize", "cancels"), map[string]interface{}{
		"amount": amount.Format(value),
	})
	if err != nil {
		return nil, err
	}
	cancellation := &resources.Cancellation{
		ID:       resp.ID,
		Amount:   value,
		Kind:     constants.TransactionTypeCancelAuthorize,
		TargetID: payment.Authorization.ID,
	}
	payment.Authorization.AddCancellation(cancellation)
	return cancellation, nil
}

func (c *Client) cancelCharge(ctx context.Context, payment *resources.Payment, charge *resources.Charge, value decimal.Decimal) (*resources.Cancellation, error) {
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, paymentPath(payment.ID, "charges", charge.ID, "cancels"), map[string]interface{}{
		"amount": amount.Format(value),
	})
	if err != nil {
		return nil, err
	}
	cancellation := &resources.Cancellation{
		ID:       resp.ID,
		Amount:   value,
		Kind:     constants.TransactionTypeCancelCharge,
		TargetID: charge.ID,
	}
	charge.AddCancellation(cancellation)
	return cancellation, nil
}
