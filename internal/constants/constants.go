package constants

// 支付状态常量
const (
	PaymentStatusPending    = "pending"
	PaymentStatusCompleted  = "completed"
	PaymentStatusPartlyPaid = "partly_paid"
	PaymentStatusCanceled   = "canceled"
	PaymentStatusChargeback = "chargeback"
	PaymentStatusError      = "error"
)

// 交易类型常量（网关 transactions 列表中的 type 字段）
const (
	TransactionTypeAuthorize       = "authorize"
	TransactionTypeCharge          = "charge"
	TransactionTypeCancelAuthorize = "cancel-authorize"
	TransactionTypeCancelCharge    = "cancel-charge"
	TransactionTypeShipment        = "shipment"
	TransactionTypeChargeback      = "chargeback"
)

// 支付方式常量
const (
	PaymentTypeCard              = "card"
	PaymentTypeInvoice           = "invoice"
	PaymentTypeInvoiceGuaranteed = "invoice-guaranteed"
	PaymentTypeIdeal             = "ideal"
)

// 资源路径常量
const (
	ResourcePathPayments = "payments"
	ResourcePathTypes    = "types"
	ResourcePathCustomer = "customers"
)

// 网关错误码常量
const (
	APICodeAlreadyCanceled    = "API.340.100.018"
	APICodeAlreadyChargedBack = "API.340.100.024"
	APICodeInsufficientFunds  = "API.340.100.004"
)

// 回调事件常量
const (
	WebhookEventPaymentPending    = "payment.pending"
	WebhookEventPaymentCompleted  = "payment.completed"
	WebhookEventPaymentCanceled   = "payment.canceled"
	WebhookEventPaymentPartlyPaid = "payment.partly_paid"
	WebhookEventPaymentChargeback = "payment.chargeback"
)
