package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"dev-advisor-api/internal/application/advisor"
	"dev-advisor-api/internal/domain/entity"
	"dev-advisor-api/internal/infrastructure/persistence/redis"
	"dev-advisor-api/internal/interfaces/http/dto"
	"dev-advisor-api/pkg/logger"
)

// 启发式结果确定性，同一需求可安全缓存
const analysisCacheTTL = 10 * time.Minute

// AnalysisCache 分析结果缓存端口
type AnalysisCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// AnalysisHandler 项目分析处理器
type AnalysisHandler struct {
	orchestrator *advisor.Orchestrator
	history      *redis.HistoryStore
	cache        AnalysisCache
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(orchestrator *advisor.Orchestrator, history *redis.HistoryStore, cache AnalysisCache) *AnalysisHandler {
	return &AnalysisHandler{
		orchestrator: orchestrator,
		history:      history,
		cache:        cache,
	}
}

// Analyze 分析项目需求
// @Summary 分析项目需求
// @Description 基于规则引擎生成技术栈建议与开发规划，可选 AI 增强
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "项目需求"
// @Success 200 {object} dto.Response[dto.AnalyzeResponse]
// @Router /v1/analysis [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	requirement := req.ToEntity()
	result := h.analyze(ctx, requirement, req.UseAI)

	record := entity.NewSearchHistory(*requirement, *result)
	ctx = logger.WithContext(ctx, logger.AnalysisIDKey, record.ID)

	// 历史保存失败不影响分析结果返回
	if h.history != nil {
		if err := h.history.Save(ctx, record); err != nil {
			logger.Warn(ctx, "failed to save analysis history", "error", err)
		}
	}

	dto.Success(c, dto.AnalyzeResponse{
		ID:        record.ID,
		Result:    result,
		Timestamp: record.Timestamp,
	})
}

// analyze 执行分析，纯启发式路径走 Read-Through 缓存
// AI 增强结果依赖外部状态，不缓存；缓存任何故障都退回直接计算。
func (h *AnalysisHandler) analyze(ctx context.Context, requirement *entity.ProjectRequirement, useAI bool) *entity.AnalysisResult {
	if useAI || h.cache == nil {
		return h.orchestrator.Analyze(ctx, requirement, useAI)
	}

	data, err := h.cache.GetOrLoadSafe(ctx, analysisCacheKey(requirement), analysisCacheTTL, func() (interface{}, error) {
		return h.orchestrator.Analyze(ctx, requirement, false), nil
	})
	if err == nil {
		var cached entity.AnalysisResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	logger.Warn(ctx, "analysis cache unavailable, computing directly", "error", err)
	return h.orchestrator.Analyze(ctx, requirement, false)
}

// analysisCacheKey 以需求内容的摘要作为缓存键
func analysisCacheKey(requirement *entity.ProjectRequirement) string {
	data, _ := json.Marshal(requirement)
	sum := sha256.Sum256(data)
	return "advisor:analysis:cache:" + hex.EncodeToString(sum[:])
}
