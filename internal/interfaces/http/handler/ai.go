package handler

import (
	"github.com/gin-gonic/gin"

	"dev-advisor-api/internal/infrastructure/llm"
	"dev-advisor-api/internal/interfaces/http/dto"
)

// AIHandler AI 提供商处理器
type AIHandler struct {
	catalog *llm.Catalog
	gateway *llm.Gateway
}

// NewAIHandler 创建 AI 提供商处理器
func NewAIHandler(catalog *llm.Catalog, gateway *llm.Gateway) *AIHandler {
	return &AIHandler{catalog: catalog, gateway: gateway}
}

// ListProviders 列出可用的 AI 提供商
// @Summary 列出 AI 提供商
// @Tags AI
// @Produce json
// @Success 200 {object} dto.Response[[]dto.ProviderInfo]
// @Router /v1/ai/providers [get]
func (h *AIHandler) ListProviders(c *gin.Context) {
	descriptors := h.catalog.All()
	providers := make([]dto.ProviderInfo, 0, len(descriptors))
	for _, d := range descriptors {
		providers = append(providers, dto.FromDescriptor(d))
	}
	dto.Success(c, providers)
}

// TestConnection 测试 AI 提供商配置连通性
// @Summary 测试 AI 连通性
// @Tags AI
// @Accept json
// @Produce json
// @Param request body dto.TestConnectionRequest true "提供商配置"
// @Success 200 {object} dto.Response[llm.TestResult]
// @Router /v1/ai/test [post]
func (h *AIHandler) TestConnection(c *gin.Context) {
	var req dto.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	result := h.gateway.TestConnection(c.Request.Context(), &llm.CallConfig{
		Provider: req.Provider,
		APIKey:   req.APIKey,
		Model:    req.Model,
		Endpoint: req.Endpoint,
	})
	dto.Success(c, result)
}
