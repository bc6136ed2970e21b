package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev-advisor-api/internal/application/advisor"
	"dev-advisor-api/internal/domain/entity"
	"dev-advisor-api/internal/infrastructure/llm"
	"dev-advisor-api/internal/interfaces/http/dto"
)

// nopSource 永远返回 nil 配置，分析固定走启发式路径
type nopSource struct{}

func (nopSource) Resolve(ctx context.Context) *llm.CallConfig { return nil }

// countingCache 内存缓存，统计加载次数
type countingCache struct {
	data  map[string][]byte
	loads int
}

func newCountingCache() *countingCache {
	return &countingCache{data: map[string][]byte{}}
}

func (c *countingCache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if val, ok := c.data[key]; ok {
		return val, nil
	}
	c.loads++
	v, err := loader()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.data[key] = data
	return data, nil
}

func newAnalysisRouter(cache AnalysisCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	orchestrator := advisor.NewOrchestrator(nopSource{}, nil)
	h := NewAnalysisHandler(orchestrator, nil, cache)

	r := gin.New()
	r.POST("/v1/analysis", h.Analyze)
	return r
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	r := newAnalysisRouter(nil)

	body, _ := json.Marshal(dto.AnalyzeRequest{
		ProjectName:    "在线商城",
		Description:    "面向中小商家的在线商城",
		Category:       "电商平台",
		TargetPlatform: []string{"Web"},
		Features:       []string{"商品管理", "在线支付"},
		UseAI:          true, // 无配置时静默退回启发式
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[dto.AnalyzeResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.NotEmpty(t, resp.Data.ID)
	require.NotNil(t, resp.Data.Result)
	assert.NotEmpty(t, resp.Data.Result.AIPrompt.Prompt)
	assert.NotEmpty(t, resp.Data.Result.TechStack)
	assert.Len(t, resp.Data.Result.DevelopmentAdvice, 6)
	assert.False(t, resp.Data.Timestamp.IsZero())
}

func TestAnalysisHandler_ValidationErrors(t *testing.T) {
	r := newAnalysisRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{"空请求体", ``},
		{"缺少项目名称", `{"description":"d","category":"工具","target_platform":["Web"],"features":["f"]}`},
		{"平台列表为空", `{"project_name":"p","description":"d","category":"工具","target_platform":[],"features":["f"]}`},
		{"功能列表为空", `{"project_name":"p","description":"d","category":"工具","target_platform":["Web"],"features":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/analysis", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAnalyzeRequest_ToEntity(t *testing.T) {
	req := dto.AnalyzeRequest{
		ProjectName:          "p",
		Description:          "d",
		Category:             "工具",
		TargetPlatform:       []string{"Web"},
		Features:             []string{"f"},
		UserStory:            "s",
		TechnicalConstraints: "c",
		UseAI:                true,
	}

	got := req.ToEntity()
	assert.Equal(t, &entity.ProjectRequirement{
		ProjectName:          "p",
		Description:          "d",
		Category:             "工具",
		TargetPlatform:       []string{"Web"},
		Features:             []string{"f"},
		UserStory:            "s",
		TechnicalConstraints: "c",
	}, got)
}

func TestAnalysisHandler_HeuristicResultCached(t *testing.T) {
	cache := newCountingCache()
	r := newAnalysisRouter(cache)

	body, _ := json.Marshal(dto.AnalyzeRequest{
		ProjectName:    "记账工具",
		Description:    "个人记账",
		Category:       "工具应用",
		TargetPlatform: []string{"Web"},
		Features:       []string{"记一笔"},
	})

	post := func() dto.Response[dto.AnalyzeResponse] {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/analysis", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response[dto.AnalyzeResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	first := post()
	second := post()

	// 相同需求命中缓存，只计算一次
	assert.Equal(t, 1, cache.loads)
	assert.Equal(t, first.Data.Result, second.Data.Result)
	// 每次请求仍生成独立的记录 ID
	assert.NotEqual(t, first.Data.ID, second.Data.ID)

	// 需求内容变化后缓存键不同，重新计算
	other, _ := json.Marshal(dto.AnalyzeRequest{
		ProjectName:    "记账工具",
		Description:    "个人记账",
		Category:       "工具应用",
		TargetPlatform: []string{"Web"},
		Features:       []string{"记一笔", "月度报表"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analysis", bytes.NewReader(other))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, cache.loads)
}
