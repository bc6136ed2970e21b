package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev-advisor-api/internal/infrastructure/llm"
	"dev-advisor-api/internal/interfaces/http/dto"
)

func newAIRouter(catalog *llm.Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAIHandler(catalog, llm.NewGateway(catalog, 5*time.Second))

	r := gin.New()
	r.GET("/v1/ai/providers", h.ListProviders)
	r.POST("/v1/ai/test", h.TestConnection)
	return r
}

func TestAIHandler_ListProviders(t *testing.T) {
	r := newAIRouter(llm.DefaultCatalog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ai/providers", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[[]dto.ProviderInfo]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 6)
	assert.Equal(t, "openai", resp.Data[0].ID)
	assert.Equal(t, "OpenAI", resp.Data[0].Name)

	// 响应中不包含鉴权细节
	assert.NotContains(t, w.Body.String(), "api-key")
	assert.NotContains(t, w.Body.String(), "x-api-key")
}

func TestAIHandler_TestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"model": "m", "choices": [{"message": {"content": "连接成功"}}]}`))
	}))
	defer srv.Close()

	catalog := llm.NewCatalog(llm.ProviderDescriptor{
		ID: "openai", Name: "OpenAI", APIEndpoint: srv.URL, Model: "m",
		Dialect: llm.DialectOpenAI, Enabled: true,
	})
	r := newAIRouter(catalog)

	body, _ := json.Marshal(dto.TestConnectionRequest{Provider: "openai", APIKey: "sk-test"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/test", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response[llm.TestResult]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Success)
	assert.Contains(t, resp.Data.Message, "连接成功")
}

func TestAIHandler_TestConnectionValidation(t *testing.T) {
	r := newAIRouter(llm.DefaultCatalog())

	// 缺少 api_key
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/test", bytes.NewBufferString(`{"provider":"openai"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
