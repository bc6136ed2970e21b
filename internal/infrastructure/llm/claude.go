package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// anthropicVersion Anthropic Messages API 版本头，取值固定
const anthropicVersion = "2023-06-01"

// claudeDialect Anthropic Messages 方言
// system 角色消息被提取为顶层 system 字段，不出现在 messages 数组中；
// 认证使用 x-api-key 头。
type claudeDialect struct{}

type claudeChatRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
}

type claudeChatResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (claudeDialect) newRequest(ctx context.Context, desc ProviderDescriptor, endpoint, model string, cfg *CallConfig, messages []Message) (*http.Request, error) {
	var system string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem && system == "" {
			system = m.Content
			continue
		}
		rest = append(rest, m)
	}

	body, err := json.Marshal(claudeChatRequest{
		Model:       model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		System:      system,
		Messages:    rest,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (claudeDialect) parseResponse(data []byte, fallbackModel string) (*Response, error) {
	var parsed claudeChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedResponseError{Reason: "response is not valid JSON"}
	}
	if len(parsed.Content) == 0 {
		return nil, &MalformedResponseError{Reason: "missing content[0].text"}
	}

	resp := &Response{
		Content: parsed.Content[0].Text,
		Model:   parsed.Model,
	}
	if resp.Model == "" {
		resp.Model = fallbackModel
	}
	if parsed.Usage != nil {
		resp.Usage = &Usage{
			PromptTokens:     parsed.Usage.InputTokens,
			CompletionTokens: parsed.Usage.OutputTokens,
			TotalTokens:      parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
		}
	}
	return resp, nil
}
