package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dev-advisor-api/pkg/metrics"
)

var gatewayTracer = otel.Tracer("llm.gateway")

// wireDialect 单个厂商方言的封包/解包策略
type wireDialect interface {
	newRequest(ctx context.Context, desc ProviderDescriptor, endpoint, model string, cfg *CallConfig, messages []Message) (*http.Request, error)
	parseResponse(data []byte, fallbackModel string) (*Response, error)
}

// dialects 闭集：新增厂商只需在目录注册并指向已有方言
var dialects = map[Dialect]wireDialect{
	DialectOpenAI: openAIDialect{},
	DialectClaude: claudeDialect{},
}

// Gateway 对话补全网关
// 只发起一次调用，不做重试；重试策略（如需要）由调用方决定。
type Gateway struct {
	catalog    *Catalog
	httpClient *http.Client
}

// NewGateway 创建网关
func NewGateway(catalog *Catalog, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gateway{
		catalog: catalog,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Call 发起一次对话补全
// 目录中未登记的厂商按 OpenAI 兼容方言兜底（需配置自定义 endpoint）。
// 取消通过 ctx 传递，映射为 ErrCancelled 以便与其他传输失败区分。
func (g *Gateway) Call(ctx context.Context, cfg *CallConfig, messages []Message) (*Response, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm: call config is nil")
	}

	desc, ok := g.catalog.Get(cfg.Provider)
	if !ok {
		desc = ProviderDescriptor{ID: cfg.Provider, Dialect: DialectOpenAI}
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = desc.APIEndpoint
	}
	if endpoint == "" {
		return nil, fmt.Errorf("%w for provider %s", ErrNoEndpoint, cfg.Provider)
	}
	model := cfg.Model
	if model == "" {
		model = desc.Model
	}

	ctx, span := gatewayTracer.Start(ctx, "llm.Call",
		trace.WithAttributes(
			attribute.String("llm.provider", cfg.Provider),
			attribute.String("llm.model", model),
			attribute.String("llm.dialect", string(desc.Dialect)),
		))
	defer span.End()

	d, ok := dialects[desc.Dialect]
	if !ok {
		d = dialects[DialectOpenAI]
	}

	req, err := d.newRequest(ctx, desc, endpoint, model, cfg, messages)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("llm: failed to build request: %w", err)
	}

	start := time.Now()
	httpResp, err := g.httpClient.Do(req)
	metrics.LLMCallDuration.WithLabelValues(cfg.Provider, model).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(cfg.Provider, model, "error").Inc()
		if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		return nil, fmt.Errorf("llm: transport failure: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(cfg.Provider, model, "error").Inc()
		if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		return nil, fmt.Errorf("llm: failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// 错误体本身解析失败时退化为 {}，不产生二次错误
		errBody := map[string]any{}
		_ = json.Unmarshal(data, &errBody)
		vendorErr := &VendorError{
			Status:     httpResp.StatusCode,
			StatusText: http.StatusText(httpResp.StatusCode),
			Body:       errBody,
		}
		span.RecordError(vendorErr)
		span.SetAttributes(attribute.Int("llm.status", httpResp.StatusCode))
		metrics.LLMCallTotal.WithLabelValues(cfg.Provider, model, strconv.Itoa(httpResp.StatusCode)).Inc()
		return nil, vendorErr
	}

	resp, err := d.parseResponse(data, model)
	if err != nil {
		span.RecordError(err)
		metrics.LLMCallTotal.WithLabelValues(cfg.Provider, model, "malformed").Inc()
		return nil, err
	}
	resp.Provider = cfg.Provider

	metrics.LLMCallTotal.WithLabelValues(cfg.Provider, model, "ok").Inc()
	if resp.Usage != nil {
		metrics.LLMTokensUsed.WithLabelValues(cfg.Provider, model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(cfg.Provider, model, "completion").Add(float64(resp.Usage.CompletionTokens))
		span.SetAttributes(attribute.Int("llm.total_tokens", resp.Usage.TotalTokens))
	}

	return resp, nil
}

// TestResult 连通性测试结果
type TestResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// TestConnection 发送一条固定问候语测试配置连通性
// 任何错误都转换为 {success:false, message, error_code}，不向上传播。
func (g *Gateway) TestConnection(ctx context.Context, cfg *CallConfig) TestResult {
	resp, err := g.Call(ctx, cfg, []Message{
		{Role: RoleUser, Content: "你好，请回复「连接成功」。"},
	})
	if err != nil {
		return TestResult{
			Success:   false,
			Message:   err.Error(),
			ErrorCode: string(Classify(err)),
		}
	}
	return TestResult{
		Success: true,
		Message: fmt.Sprintf("连接成功（%s / %s）", resp.Provider, resp.Model),
	}
}
