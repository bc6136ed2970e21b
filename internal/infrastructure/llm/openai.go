package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// openAIDialect OpenAI 兼容方言
// 适用于 openai / deepseek / deepseek-coder / azure-openai / gemini，
// 也是未知厂商的兜底方言。azure-openai 通过描述符的 AuthHeader 改用 api-key 头。
type openAIDialect struct{}

type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type openAIChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (openAIDialect) newRequest(ctx context.Context, desc ProviderDescriptor, endpoint, model string, cfg *CallConfig, messages []Message) (*http.Request, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if desc.AuthHeader != "" {
		req.Header.Set(desc.AuthHeader, cfg.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}
	return req, nil
}

func (openAIDialect) parseResponse(data []byte, fallbackModel string) (*Response, error) {
	var parsed openAIChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedResponseError{Reason: "response is not valid JSON"}
	}
	if len(parsed.Choices) == 0 {
		return nil, &MalformedResponseError{Reason: "missing choices[0].message.content"}
	}

	resp := &Response{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
	}
	if resp.Model == "" {
		resp.Model = fallbackModel
	}
	if parsed.Usage != nil {
		resp.Usage = &Usage{
			PromptTokens:     parsed.Usage.PromptTokens,
			CompletionTokens: parsed.Usage.CompletionTokens,
			TotalTokens:      parsed.Usage.TotalTokens,
		}
	}
	return resp, nil
}
