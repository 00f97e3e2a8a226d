package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/payrail-go/internal/constants"
)

var (
	ErrEventInvalid = errors.New("payrail webhook event invalid")
	ErrVerifyFailed = errors.New("payrail webhook verify failed")
)

// SignatureHeader 回调签名头（body 的 HMAC-SHA256 十六进制）。
const SignatureHeader = "Payrail-Signature"

// Event 网关回调事件。
type Event struct {
	ID         string                 `json:"id"`
	EventType  string                 `json:"event"`
	CreateTime string                 `json:"createTime"`
	Resource   map[string]interface{} `json:"resource"`
	Raw        map[string]interface{}
}

// VerifySignature 校验回调签名。secret 为空时不校验。
func VerifySignature(secret string, headers http.Header, body []byte) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	signature := strings.TrimSpace(headers.Get(SignatureHeader))
	if signature == "" {
		return fmt.Errorf("%w: missing %s header", ErrVerifyFailed, SignatureHeader)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return fmt.Errorf("%w: signature mismatch", ErrVerifyFailed)
	}
	return nil
}

// ParseEvent 解析回调事件。
func ParseEvent(body []byte) (*Event, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrEventInvalid)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: body is not json", ErrEventInvalid)
	}
	event := &Event{
		ID:         strings.TrimSpace(readString(raw, "id")),
		EventType:  strings.TrimSpace(readString(raw, "event")),
		CreateTime: strings.TrimSpace(readString(raw, "createTime")),
		Raw:        raw,
	}
	if resource, ok := raw["resource"].(map[string]interface{}); ok {
		event.Resource = resource
	} else {
		event.Resource = map[string]interface{}{}
	}
	if event.EventType == "" {
		return nil, fmt.Errorf("%w: event is missing", ErrEventInvalid)
	}
	return event, nil
}

// PaymentID 提取关联的支付号。
func (e *Event) PaymentID() string {
	if e == nil {
		return ""
	}
	if val := strings.TrimSpace(readString(e.Resource, "paymentId")); val != "" {
		return val
	}
	return strings.TrimSpace(readString(e.Raw, "paymentId"))
}

// OccurredAt 提取事件时间。
func (e *Event) OccurredAt() *time.Time {
	if e == nil || e.CreateTime == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, e.CreateTime)
	if err != nil {
		return nil
	}
	return &parsed
}

// ToPaymentStatus 映射回调事件到支付状态。
func ToPaymentStatus(eventType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case constants.WebhookEventPaymentCompleted:
		return constants.PaymentStatusCompleted, true
	case constants.WebhookEventPaymentPending:
		return constants.PaymentStatusPending, true
	case constants.WebhookEventPaymentPartlyPaid:
		return constants.PaymentStatusPartlyPaid, true
	case constants.WebhookEventPaymentCanceled:
		return constants.PaymentStatusCanceled, true
	case constants.WebhookEventPaymentChargeback:
		return constants.PaymentStatusChargeback, true
	}
	return "", false
}

func readString(raw map[string]interface{}, path ...string) string {
	if raw == nil {
		return ""
	}
	var current interface{} = raw
	for _, seg := range path {
		if idx, err := strconv.Atoi(seg); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return ""
			}
			current = arr[idx]
			continue
		}
		next, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next[seg]
	}
	if current == nil {
		return ""
	}
	switch val := current.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
