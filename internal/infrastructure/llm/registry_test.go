package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev-advisor-api/internal/config"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	all := catalog.All()
	require.Len(t, all, 6)
	// 注册顺序稳定
	assert.Equal(t, "openai", all[0].ID)
	assert.Equal(t, "deepseek", all[1].ID)

	claude, ok := catalog.Get("claude")
	require.True(t, ok)
	assert.Equal(t, DialectClaude, claude.Dialect)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", claude.APIEndpoint)

	azure, ok := catalog.Get("azure-openai")
	require.True(t, ok)
	assert.Equal(t, DialectOpenAI, azure.Dialect)
	assert.Equal(t, "api-key", azure.AuthHeader)
	assert.Empty(t, azure.APIEndpoint, "azure 必须由调用方指定部署地址")

	_, ok = catalog.Get("unknown")
	assert.False(t, ok)
}

func TestNewCatalog_DuplicateIDKeepsFirst(t *testing.T) {
	catalog := NewCatalog(
		ProviderDescriptor{ID: "p", Name: "第一个"},
		ProviderDescriptor{ID: "p", Name: "第二个"},
	)

	assert.Len(t, catalog.All(), 1)
	d, _ := catalog.Get("p")
	assert.Equal(t, "第一个", d.Name)
}

func TestStaticSource_Resolve(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name string
		cfg  config.AIConfig
		want *CallConfig
	}{
		{
			name: "完整配置",
			cfg: config.AIConfig{
				Provider: "deepseek", APIKey: "sk-abc", Model: "deepseek-chat",
				Temperature: 0.7, MaxTokens: 2000,
			},
			want: &CallConfig{
				Provider: "deepseek", APIKey: "sk-abc", Model: "deepseek-chat",
				Temperature: 0.7, MaxTokens: 2000,
			},
		},
		{
			name: "缺少 provider",
			cfg:  config.AIConfig{APIKey: "sk-abc"},
			want: nil,
		},
		{
			name: "缺少 api_key",
			cfg:  config.AIConfig{Provider: "deepseek"},
			want: nil,
		},
		{
			name: "目录外的 provider",
			cfg:  config.AIConfig{Provider: "no-such-vendor", APIKey: "sk-abc"},
			want: nil,
		},
		{
			name: "空白字符视为缺失",
			cfg:  config.AIConfig{Provider: "  ", APIKey: "sk-abc"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewStaticSource(tt.cfg, catalog).Resolve(context.Background())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvSource_Resolve(t *testing.T) {
	catalog := DefaultCatalog()

	env := map[string]string{
		EnvProvider: "claude",
		EnvAPIKey:   "sk-ant-test",
		EnvModel:    "claude-3-5-sonnet-20241022",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	got := NewEnvSource(catalog, lookup).Resolve(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "claude", got.Provider)
	assert.Equal(t, "sk-ant-test", got.APIKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", got.Model)

	// 缺失 key 返回 nil
	delete(env, EnvAPIKey)
	assert.Nil(t, NewEnvSource(catalog, lookup).Resolve(context.Background()))
}

func TestChainSource_Resolve(t *testing.T) {
	catalog := DefaultCatalog()
	static := NewStaticSource(config.AIConfig{}, catalog)
	env := NewEnvSource(catalog, func(key string) (string, bool) {
		vals := map[string]string{
			EnvProvider: "deepseek",
			EnvAPIKey:   "sk-env",
		}
		v, ok := vals[key]
		return v, ok
	})

	// 前序源无配置时落到后续源
	got := NewChainSource(static, env).Resolve(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "deepseek", got.Provider)
	assert.Equal(t, "sk-env", got.APIKey)

	// 前序源可解析时优先生效
	primary := NewStaticSource(config.AIConfig{Provider: "openai", APIKey: "sk-file"}, catalog)
	got = NewChainSource(primary, env).Resolve(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "sk-file", got.APIKey)

	// 全部落空返回 nil
	empty := NewEnvSource(catalog, func(string) (string, bool) { return "", false })
	assert.Nil(t, NewChainSource(static, empty).Resolve(context.Background()))
}
