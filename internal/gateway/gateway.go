package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("payrail config invalid")
	ErrRequestFailed   = errors.New("payrail request failed")
	ErrResponseInvalid = errors.New("payrail response invalid")
	ErrRemoteRejected  = errors.New("payrail gateway rejected operation")
)

const defaultTimeout = 12 * time.Second

// Config 网关接入配置
type Config struct {
	APIBase    string `json:"api_base"`    // 网关地址
	PrivateKey string `json:"private_key"` // 商户私钥（basic auth 用户名）
	TimeoutMS  int    `json:"timeout_ms"`  // 单次请求超时
}

// RemoteError 网关显式拒绝，携带服务端错误码
type RemoteError struct {
	Code    string
	Message string
}

// Error 实现 error 接口
func (e *RemoteError) Error() string {
	return fmt.Sprintf("payrail gateway rejected: %s %s", e.Code, e.Message)
}

// Is 支持 errors.Is(err, ErrRemoteRejected) 匹配
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}

// Transaction 响应中的交易条目
type Transaction struct {
	Type     string          `json:"type"`
	ID       string          `json:"id"`
	ParentID string          `json:"parentId"`
	Amount   decimal.Decimal `json:"amount"`
}

// Response 网关结构化响应
type Response struct {
	ID           string                 `json:"id"`
	Method       string                 `json:"method"`
	OrderID      string                 `json:"orderId"`
	Amount       decimal.Decimal        `json:"amount"`
	Currency     string                 `json:"currency"`
	RedirectURL  string                 `json:"redirectUrl"`
	Resources    map[string]string      `json:"resources"`
	Transactions []Transaction          `json:"transactions"`
	Raw          map[string]interface{} `json:"-"`
}

// Resource 读取关联资源 ID，缺失时显式失败
func (r *Response) Resource(name string) (string, error) {
	value := strings.TrimSpace(r.Resources[name])
	if value == "" {
		return "", fmt.Errorf("%w: missing linked resource %q", ErrResponseInvalid, name)
	}
	return value, nil
}

// ValidateConfig 校验网关配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIBase) == "" {
		return fmt.Errorf("%w: api_base is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.APIBase)); err != nil {
		return fmt.Errorf("%w: api_base is invalid", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return fmt.Errorf("%w: private_key is required", ErrConfigInvalid)
	}
	return nil
}

// Send 发送一次网关请求并解析响应
func Send(ctx context.Context, cfg *Config, method, path string, payload map[string]interface{}) (*Response, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := withDefaultTimeout(ctx, cfg)
	defer cancel()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
		}
		body = bytes.NewReader(encoded)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(strings.TrimSpace(cfg.PrivateKey), "")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeRejection(respBody, resp.StatusCode)
	}
	return decodeResponse(respBody)
}

// Fetch 从网关拉取资源（刷新本地状态用）
func Fetch(ctx context.Context, cfg *Config, path string) (*Response, error) {
	return Send(ctx, cfg, http.MethodGet, path, nil)
}

func decodeResponse(body []byte) (*Response, error) {
	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal(body, &raw)
	parsed.Raw = raw
	if parsed.Resources == nil {
		parsed.Resources = map[string]string{}
	}
	return &parsed, nil
}

func decodeRejection(body []byte, statusCode int) error {
	var parsed struct {
		Errors []struct {
			Code            string `json:"code"`
			MerchantMessage string `json:"merchantMessage"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return &RemoteError{
			Code:    strings.TrimSpace(parsed.Errors[0].Code),
			Message: strings.TrimSpace(parsed.Errors[0].MerchantMessage),
		}
	}
	return fmt.Errorf("%w: status %d", ErrResponseInvalid, statusCode)
}

func withDefaultTimeout(ctx context.Context, cfg *Config) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return context.WithTimeout(ctx, timeout)
}
