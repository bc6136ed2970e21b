package llm

import (
	"context"
	"strings"

	"dev-advisor-api/internal/config"
	"dev-advisor-api/pkg/logger"
)

// Dialect 厂商接口方言
type Dialect string

const (
	// DialectOpenAI OpenAI 兼容方言（亦是未知厂商的兜底方言）
	DialectOpenAI Dialect = "openai"
	// DialectClaude Anthropic Messages 方言
	DialectClaude Dialect = "claude"
)

// ProviderDescriptor 厂商描述（静态只读目录条目）
type ProviderDescriptor struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	APIEndpoint       string  `json:"api_endpoint"`
	Model             string  `json:"model"`
	Dialect           Dialect `json:"-"`
	AuthHeader        string  `json:"-"` // 为空时使用 Authorization: Bearer
	Enabled           bool    `json:"enabled"`
	SupportsStreaming bool    `json:"supports_streaming,omitempty"`
}

// Catalog 不可变的厂商目录
// 以依赖注入方式传入，测试可替换为假目录而无需改动全局状态。
type Catalog struct {
	providers map[string]ProviderDescriptor
	order     []string
}

// NewCatalog 按注册顺序创建目录
func NewCatalog(descriptors ...ProviderDescriptor) *Catalog {
	c := &Catalog{
		providers: make(map[string]ProviderDescriptor, len(descriptors)),
		order:     make([]string, 0, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := c.providers[d.ID]; exists {
			continue
		}
		c.providers[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c
}

// DefaultCatalog 内置的厂商目录
func DefaultCatalog() *Catalog {
	return NewCatalog(
		ProviderDescriptor{
			ID:                "openai",
			Name:              "OpenAI",
			APIEndpoint:       "https://api.openai.com/v1/chat/completions",
			Model:             "gpt-4o-mini",
			Dialect:           DialectOpenAI,
			Enabled:           true,
			SupportsStreaming: true,
		},
		ProviderDescriptor{
			ID:                "deepseek",
			Name:              "DeepSeek",
			APIEndpoint:       "https://api.deepseek.com/v1/chat/completions",
			Model:             "deepseek-chat",
			Dialect:           DialectOpenAI,
			Enabled:           true,
			SupportsStreaming: true,
		},
		ProviderDescriptor{
			ID:          "deepseek-coder",
			Name:        "DeepSeek Coder",
			APIEndpoint: "https://api.deepseek.com/v1/chat/completions",
			Model:       "deepseek-coder",
			Dialect:     DialectOpenAI,
			Enabled:     true,
		},
		ProviderDescriptor{
			ID:                "claude",
			Name:              "Anthropic Claude",
			APIEndpoint:       "https://api.anthropic.com/v1/messages",
			Model:             "claude-3-5-sonnet-20241022",
			Dialect:           DialectClaude,
			Enabled:           true,
			SupportsStreaming: true,
		},
		ProviderDescriptor{
			ID:          "azure-openai",
			Name:        "Azure OpenAI",
			APIEndpoint: "", // 必须通过 endpoint 覆盖指定部署地址
			Model:       "gpt-4o",
			Dialect:     DialectOpenAI,
			AuthHeader:  "api-key",
			Enabled:     true,
		},
		ProviderDescriptor{
			ID:          "gemini",
			Name:        "Google Gemini",
			APIEndpoint: "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
			Model:       "gemini-1.5-flash",
			Dialect:     DialectOpenAI,
			Enabled:     true,
		},
	)
}

// All 按注册顺序返回全部厂商
func (c *Catalog) All() []ProviderDescriptor {
	out := make([]ProviderDescriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.providers[id])
	}
	return out
}

// Get 按 ID 查找厂商，不存在时返回 false
func (c *Catalog) Get(id string) (ProviderDescriptor, bool) {
	d, ok := c.providers[id]
	return d, ok
}

// Source 外部配置读取端口
// 解析失败（未配置、厂商未知）时返回 nil，永不返回错误。
type Source interface {
	Resolve(ctx context.Context) *CallConfig
}

// StaticSource 基于已加载配置文件的配置源
type StaticSource struct {
	cfg     config.AIConfig
	catalog *Catalog
}

// NewStaticSource 创建配置文件来源的配置源
func NewStaticSource(cfg config.AIConfig, catalog *Catalog) *StaticSource {
	return &StaticSource{cfg: cfg, catalog: catalog}
}

// Resolve 解析配置；provider 或 api_key 缺失返回 nil（关闭 AI 增强，非错误）
func (s *StaticSource) Resolve(ctx context.Context) *CallConfig {
	provider := strings.TrimSpace(s.cfg.Provider)
	apiKey := strings.TrimSpace(s.cfg.APIKey)
	if provider == "" || apiKey == "" {
		return nil
	}
	if _, ok := s.catalog.Get(provider); !ok {
		logger.Warn(ctx, "configured ai provider not in catalog, ai augmentation disabled",
			"provider", provider)
		return nil
	}
	return &CallConfig{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       strings.TrimSpace(s.cfg.Model),
		Endpoint:    strings.TrimSpace(s.cfg.Endpoint),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}
}

// EnvSource 基于环境变量查找函数的配置源
// lookup 可注入以便测试，不直接触碰进程环境。
type EnvSource struct {
	catalog *Catalog
	lookup  func(string) (string, bool)
}

// 环境变量名
const (
	EnvProvider = "AI_PROVIDER"
	EnvAPIKey   = "AI_API_KEY"
	EnvModel    = "AI_MODEL"
	EnvEndpoint = "AI_API_ENDPOINT"
)

// NewEnvSource 创建环境变量来源的配置源
func NewEnvSource(catalog *Catalog, lookup func(string) (string, bool)) *EnvSource {
	return &EnvSource{catalog: catalog, lookup: lookup}
}

// Resolve 解析配置；provider 或 api_key 缺失返回 nil
func (s *EnvSource) Resolve(ctx context.Context) *CallConfig {
	get := func(key string) string {
		v, _ := s.lookup(key)
		return strings.TrimSpace(v)
	}
	provider := get(EnvProvider)
	apiKey := get(EnvAPIKey)
	if provider == "" || apiKey == "" {
		return nil
	}
	if _, ok := s.catalog.Get(provider); !ok {
		logger.Warn(ctx, "configured ai provider not in catalog, ai augmentation disabled",
			"provider", provider)
		return nil
	}
	return &CallConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    get(EnvModel),
		Endpoint: get(EnvEndpoint),
	}
}

// ChainSource 依序组合多个配置源，返回第一个可解析的配置
// 全部解析失败返回 nil，保持 Source 端口的静默降级语义。
type ChainSource struct {
	sources []Source
}

// NewChainSource 组合配置源，排在前面的优先
func NewChainSource(sources ...Source) *ChainSource {
	return &ChainSource{sources: sources}
}

// Resolve 逐个解析直到命中
func (s *ChainSource) Resolve(ctx context.Context) *CallConfig {
	for _, src := range s.sources {
		if cfg := src.Resolve(ctx); cfg != nil {
			return cfg
		}
	}
	return nil
}
