package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dev-advisor-api/internal/domain/entity"
	"dev-advisor-api/internal/infrastructure/llm"
	"dev-advisor-api/pkg/logger"
	"dev-advisor-api/pkg/metrics"
)

// 分析模式（指标用）
const (
	modeHeuristic   = "heuristic"
	modeAIAugmented = "ai_augmented"
	modeAIFallback  = "ai_fallback"
)

const systemPersona = "你是一位经验丰富的软件架构师，擅长为各种规模的项目设计技术方案。" +
	"请基于给出的项目信息，结合行业最佳实践，给出具体、可落地的建议。"

// ChatClient 对话补全客户端端口
type ChatClient interface {
	Call(ctx context.Context, cfg *llm.CallConfig, messages []llm.Message) (*llm.Response, error)
}

// Orchestrator 分析编排器
// 启发式路径始终执行且不会失败；AI 增强是可选的单次尝试，
// 任何失败都被吸收并退回启发式结果（显式两路状态机，而非异常控制流）。
type Orchestrator struct {
	source llm.Source
	client ChatClient
}

// NewOrchestrator 创建编排器
func NewOrchestrator(source llm.Source, client ChatClient) *Orchestrator {
	return &Orchestrator{
		source: source,
		client: client,
	}
}

// RunHeuristic 执行纯启发式分析路径
func RunHeuristic(req *entity.ProjectRequirement) (*entity.AnalysisResult, entity.ComplexityAssessment) {
	complexity := ScoreComplexity(req)
	result := &entity.AnalysisResult{
		AIPrompt:          SynthesizePrompt(req, complexity),
		TechStack:         RecommendTechStack(req, complexity),
		DevelopmentAdvice: PlanDevelopment(req, complexity),
	}
	return result, complexity
}

// Analyze 执行一次完整分析
// useAI 为 false、无可用配置、或 AI 调用失败时，返回的都是结构完整的启发式结果；
// 本方法在正常运行下不返回错误。
func (o *Orchestrator) Analyze(ctx context.Context, req *entity.ProjectRequirement, useAI bool) *entity.AnalysisResult {
	start := time.Now()

	result, complexity := RunHeuristic(req)
	metrics.ComplexityScore.WithLabelValues(req.Category).Observe(float64(complexity.Score))

	mode := modeHeuristic
	if useAI {
		switch outcome := o.attemptAugmentation(ctx, result.AIPrompt); {
		case outcome.skipped:
			logger.Info(ctx, "ai augmentation requested but no provider configured, using heuristic result")
		case outcome.err != nil:
			mode = modeAIFallback
			logger.Warn(ctx, "ai augmentation failed, falling back to heuristic result",
				"reason", outcome.err.Error(),
				"error_code", string(llm.Classify(outcome.err)),
				"cancelled", errors.Is(outcome.err, llm.ErrCancelled))
		default:
			mode = modeAIAugmented
			mergeAugmentation(result, complexity, outcome.resp)
		}
	}

	metrics.AnalysisTotal.WithLabelValues(string(complexity.Level), mode).Inc()
	metrics.AnalysisDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	logger.Info(ctx, "analysis completed",
		"project", req.ProjectName,
		"complexity_level", complexity.Level,
		"complexity_score", complexity.Score,
		"mode", mode,
	)
	return result
}

// augmentOutcome AI 增强尝试的结果
type augmentOutcome struct {
	skipped bool
	resp    *llm.Response
	err     error
}

// attemptAugmentation 尝试一次 AI 增强调用（不重试）
func (o *Orchestrator) attemptAugmentation(ctx context.Context, bundle entity.AIPromptBundle) augmentOutcome {
	cfg := o.source.Resolve(ctx)
	if cfg == nil {
		return augmentOutcome{skipped: true}
	}

	ctx = logger.WithContext(ctx, logger.ProviderKey, cfg.Provider)
	logger.Debug(ctx, "attempting ai augmentation",
		"model", cfg.Model,
		"api_key", logger.RedactKey(cfg.APIKey))

	resp, err := o.client.Call(ctx, cfg, buildAugmentationMessages(bundle))
	if err != nil {
		return augmentOutcome{err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return augmentOutcome{err: fmt.Errorf("ai response content is empty")}
	}
	return augmentOutcome{resp: resp}
}

// buildAugmentationMessages 构建固定的两条消息
func buildAugmentationMessages(bundle entity.AIPromptBundle) []llm.Message {
	var b strings.Builder
	b.WriteString(bundle.Prompt)
	b.WriteString("\n\n请依次就以下五个方面作答：\n")
	for i, s := range promptRequestSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPersona},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// mergeAugmentation 将 AI 叙述文本合并进启发式结果
// 仅追加到 suggestions 与 additional_notes，不改动技术选型与阶段规划。
func mergeAugmentation(result *entity.AnalysisResult, complexity entity.ComplexityAssessment, resp *llm.Response) {
	banner := fmt.Sprintf("—— AI 增强建议（%s / %s）——", resp.Provider, resp.Model)

	result.AIPrompt.Suggestions = append(result.AIPrompt.Suggestions, banner, resp.Content)
	if resp.Usage != nil {
		result.AIPrompt.Suggestions = append(result.AIPrompt.Suggestions,
			fmt.Sprintf("本次调用 Token 用量：prompt %d / completion %d / total %d",
				resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens))
	}

	result.AdditionalNotes = append(result.AdditionalNotes,
		banner,
		fmt.Sprintf("复杂度评估：%s（评分 %d），主要因素：%s",
			complexity.Level, complexity.Score, strings.Join(complexity.Factors, "、")),
	)
}
