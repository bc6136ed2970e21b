package dto

import "dev-advisor-api/internal/infrastructure/llm"

// ProviderInfo AI 提供商信息（不含鉴权细节）
type ProviderInfo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	APIEndpoint       string `json:"api_endpoint"`
	Model             string `json:"model"`
	Enabled           bool   `json:"enabled"`
	SupportsStreaming bool   `json:"supports_streaming"`
}

// FromDescriptor 转换提供商描述
func FromDescriptor(d llm.ProviderDescriptor) ProviderInfo {
	return ProviderInfo{
		ID:                d.ID,
		Name:              d.Name,
		APIEndpoint:       d.APIEndpoint,
		Model:             d.Model,
		Enabled:           d.Enabled,
		SupportsStreaming: d.SupportsStreaming,
	}
}

// TestConnectionRequest 连通性测试请求
type TestConnectionRequest struct {
	Provider string `json:"provider" binding:"required,max=32"`
	APIKey   string `json:"api_key" binding:"required"`
	Model    string `json:"model" binding:"max=64"`
	Endpoint string `json:"endpoint" binding:"max=256,omitempty,url"`
}
