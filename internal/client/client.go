package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/payrail-go/internal/constants"
	"github.com/payrail-go/internal/gateway"
	"github.com/payrail-go/internal/logger"
	"github.com/payrail-go/internal/resources"
)

// Client 支付网关 SDK 入口。单会话同步使用，并发调用方需自行
// 对同一 Payment 串行化操作。
type Client struct {
	cfg *gateway.Config
	log *zap.SugaredLogger
}

// New 创建 SDK 客户端
func New(cfg *gateway.Config, log *zap.Logger) (*Client, error) {
	if err := gateway.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Z()
	}
	return &Client{cfg: cfg, log: log.Sugar()}, nil
}

// CreatePaymentType 在网关注册支付方式并回填服务端 ID
func (c *Client) CreatePaymentType(ctx context.Context, paymentType resources.PaymentType) error {
	if paymentType == nil {
		return fmt.Errorf("%w: payment type", resources.ErrMissingResource)
	}
	path := constants.ResourcePathTypes + "/" + paymentType.TypeName()
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, path, paymentType.Payload())
	if err != nil {
		return err
	}
	paymentType.SetTypeID(resp.ID)
	c.log.Infow("payment_type_created", "type", paymentType.TypeName(), "type_id", resp.ID)
	return nil
}

// FetchPaymentType 按 ID 拉取支付方式
func (c *Client) FetchPaymentType(ctx context.Context, id string) (resources.PaymentType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: payment type id", resources.ErrMissingResource)
	}
	resp, err := gateway.Fetch(ctx, c.cfg, constants.ResourcePathTypes+"/"+id)
	if err != nil {
		return nil, err
	}
	return paymentTypeFromName(resp.Method, resp.ID)
}

// CreateCustomer 在网关注册客户并回填服务端 ID
func (c *Client) CreateCustomer(ctx context.Context, customer *resources.Customer) error {
	if customer == nil {
		return fmt.Errorf("%w: customer", resources.ErrMissingResource)
	}
	resp, err := gateway.Send(ctx, c.cfg, http.MethodPost, constants.ResourcePathCustomer, customer.Payload())
	if err != nil {
		return err
	}
	customer.ID = resp.ID
	return nil
}

// ensurePaymentType 未注册的支付方式先注册再使用
func (c *Client) ensurePaymentType(ctx context.Context, paymentType resources.PaymentType) error {
	if paymentType == nil {
		return fmt.Errorf("%w: payment type", resources.ErrMissingResource)
	}
	if paymentType.TypeID() != "" {
		return nil
	}
	return c.CreatePaymentType(ctx, paymentType)
}

// ensureCustomer 未注册的客户先注册再使用
func (c *Client) ensureCustomer(ctx context.Context, customer *resources.Customer) error {
	if customer == nil || customer.ID != "" {
		return nil
	}
	return c.CreateCustomer(ctx, customer)
}

func paymentTypeFromName(name, id string) (resources.PaymentType, error) {
	var paymentType resources.PaymentType
	switch strings.TrimSpace(name) {
	case constants.PaymentTypeCard:
		paymentType = &resources.Card{}
	case constants.PaymentTypeInvoice:
		paymentType = &resources.Invoice{}
	case constants.PaymentTypeInvoiceGuaranteed:
		paymentType = &resources.InvoiceGuaranteed{}
	case constants.PaymentTypeIdeal:
		paymentType = &resources.Ideal{}
	default:
		return nil, fmt.Errorf("%w: unknown payment type %q", gateway.ErrResponseInvalid, name)
	}
	paymentType.SetTypeID(id)
	return paymentType, nil
}

func paymentPath(paymentID string, segments ...string) string {
	parts := append([]string{constants.ResourcePathPayments, paymentID}, segments...)
	return strings.Join(parts, "/")
}

func linkedResources(paymentType resources.PaymentType, customer *resources.Customer) map[string]interface{} {
	linked := map[string]interface{}{"typeId": paymentType.TypeID()}
	if customer != nil {
		linked["customerId"] = customer.ID
	}
	return linked
}

// skippableRejection 网关返回“已撤销/已拒付”时跳过该笔继续分摊
func skippableRejection(err error) bool {
	var remoteErr *gateway.RemoteError
	if !errors.As(err, &remoteErr) {
		return false
	}
	switch remoteErr.Code {
	case constants.APICodeAlreadyCanceled, constants.APICodeAlreadyChargedBack:
		return true
	}
	return false
}
