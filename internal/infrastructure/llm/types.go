// Package llm 提供 AI 提供商目录与统一的对话补全网关
package llm

import (
	"errors"
	"fmt"

	apperrors "dev-advisor-api/pkg/errors"
)

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 对话消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage Token 用量统计
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response 对话补全结果（已抹平各厂商差异）
type Response struct {
	Content  string `json:"content"`
	Usage    *Usage `json:"usage,omitempty"`
	Model    string `json:"model,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// CallConfig 单次调用的运行时配置
// 会话启动时解析一次，之后只读；APIKey 打日志前必须脱敏。
type CallConfig struct {
	Provider    string  `json:"provider"`
	APIKey      string  `json:"-"`
	Model       string  `json:"model,omitempty"`
	Endpoint    string  `json:"endpoint,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// ErrCancelled 调用方主动取消，与其他传输失败区分
var ErrCancelled = errors.New("llm: request was cancelled")

// ErrNoEndpoint 厂商未登记且未提供自定义 endpoint
var ErrNoEndpoint = errors.New("llm: no endpoint configured")

// VendorError 厂商返回非 2xx 响应
type VendorError struct {
	Status     int
	StatusText string
	Body       map[string]any
}

// Error 实现 error 接口
func (e *VendorError) Error() string {
	return fmt.Sprintf("llm: vendor returned %d %s", e.Status, e.StatusText)
}

// MalformedResponseError 响应缺少预期字段
type MalformedResponseError struct {
	Reason string
}

// Error 实现 error 接口
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("llm: malformed vendor response: %s", e.Reason)
}

// Classify 将调用失败归类到对应的业务错误码
func Classify(err error) apperrors.ErrorCode {
	var vendorErr *VendorError
	var malformedErr *MalformedResponseError
	switch {
	case errors.Is(err, ErrCancelled):
		return apperrors.CodeCallCancelled
	case errors.Is(err, ErrNoEndpoint):
		return apperrors.CodeUnknownProvider
	case errors.As(err, &vendorErr):
		return apperrors.CodeVendorError
	case errors.As(err, &malformedErr):
		return apperrors.CodeMalformedResponse
	default:
		return apperrors.CodeTransportFailure
	}
}
