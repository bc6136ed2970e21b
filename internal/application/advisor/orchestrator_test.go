package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev-advisor-api/internal/domain/entity"
	"dev-advisor-api/internal/infrastructure/llm"
)

type stubSource struct {
	cfg *llm.CallConfig
}

func (s *stubSource) Resolve(ctx context.Context) *llm.CallConfig {
	return s.cfg
}

type stubClient struct {
	resp  *llm.Response
	err   error
	calls int
}

func (c *stubClient) Call(ctx context.Context, cfg *llm.CallConfig, messages []llm.Message) (*llm.Response, error) {
	c.calls++
	return c.resp, c.err
}

func sampleRequirement() *entity.ProjectRequirement {
	return &entity.ProjectRequirement{
		ProjectName:    "在线商城",
		Description:    "面向中小商家的在线商城",
		Category:       "电商平台",
		TargetPlatform: []string{"Web"},
		Features:       []string{"商品管理", "在线支付"},
	}
}

func TestRunHeuristic_CompleteResult(t *testing.T) {
	result, complexity := RunHeuristic(sampleRequirement())

	require.NotNil(t, result)
	assert.NotEmpty(t, result.AIPrompt.Prompt)
	assert.NotEmpty(t, result.AIPrompt.Context)
	assert.NotEmpty(t, result.AIPrompt.Suggestions)
	assert.NotEmpty(t, result.TechStack)
	assert.Len(t, result.DevelopmentAdvice, 6)
	assert.Greater(t, complexity.Score, 0)
}

func TestAnalyze_WithoutAI(t *testing.T) {
	client := &stubClient{}
	o := NewOrchestrator(&stubSource{}, client)

	result := o.Analyze(context.Background(), sampleRequirement(), false)

	require.NotNil(t, result)
	assert.Zero(t, client.calls, "未开启 AI 时不应调用客户端")
}

func TestAnalyze_NoProviderConfigured(t *testing.T) {
	// Resolve 返回 nil 表示没有可用配置，静默退回启发式
	client := &stubClient{}
	o := NewOrchestrator(&stubSource{cfg: nil}, client)

	result := o.Analyze(context.Background(), sampleRequirement(), true)

	require.NotNil(t, result)
	assert.Zero(t, client.calls)

	heuristic, _ := RunHeuristic(sampleRequirement())
	assert.Equal(t, heuristic, result)
}

func TestAnalyze_AugmentationSuccess(t *testing.T) {
	client := &stubClient{
		resp: &llm.Response{
			Provider: "deepseek",
			Model:    "deepseek-chat",
			Content:  "建议采用前后端分离架构。",
			Usage:    &llm.Usage{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200},
		},
	}
	o := NewOrchestrator(&stubSource{cfg: &llm.CallConfig{Provider: "deepseek", APIKey: "sk-test"}}, client)

	result := o.Analyze(context.Background(), sampleRequirement(), true)

	require.NotNil(t, result)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, result.AIPrompt.Suggestions, "建议采用前后端分离架构。")
	assert.NotEmpty(t, result.AdditionalNotes)

	// 启发式骨架不被 AI 结果改动
	heuristic, _ := RunHeuristic(sampleRequirement())
	assert.Equal(t, heuristic.TechStack, result.TechStack)
	assert.Equal(t, heuristic.DevelopmentAdvice, result.DevelopmentAdvice)
}

func TestAnalyze_FallbackOnError(t *testing.T) {
	for name, callErr := range map[string]error{
		"传输失败": errors.New("connection refused"),
		"厂商错误": &llm.VendorError{Status: 429, StatusText: "Too Many Requests", Body: map[string]any{}},
		"响应畸形": &llm.MalformedResponseError{Reason: "missing choices[0].message.content"},
		"调用取消": llm.ErrCancelled,
	} {
		t.Run(name, func(t *testing.T) {
			client := &stubClient{err: callErr}
			o := NewOrchestrator(&stubSource{cfg: &llm.CallConfig{Provider: "openai", APIKey: "sk-test"}}, client)

			result := o.Analyze(context.Background(), sampleRequirement(), true)

			// 失败被吸收，结果与纯启发式完全一致
			require.NotNil(t, result)
			heuristic, _ := RunHeuristic(sampleRequirement())
			assert.Equal(t, heuristic, result)
		})
	}
}

func TestAnalyze_EmptyContentTreatedAsFailure(t *testing.T) {
	client := &stubClient{resp: &llm.Response{Provider: "openai", Model: "gpt-4o", Content: "   "}}
	o := NewOrchestrator(&stubSource{cfg: &llm.CallConfig{Provider: "openai", APIKey: "sk-test"}}, client)

	result := o.Analyze(context.Background(), sampleRequirement(), true)

	heuristic, _ := RunHeuristic(sampleRequirement())
	assert.Equal(t, heuristic, result)
}

func TestBuildAugmentationMessages(t *testing.T) {
	bundle := entity.AIPromptBundle{Prompt: "# 项目开发咨询"}

	messages := buildAugmentationMessages(bundle)

	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, systemPersona, messages[0].Content)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "# 项目开发咨询")
	assert.Contains(t, messages[1].Content, "1. ")
	assert.Contains(t, messages[1].Content, "5. ")
}
