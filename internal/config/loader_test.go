package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ADVISOR_TEST_VAR", "from-env")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"环境变量已定义", "value: ${ADVISOR_TEST_VAR:fallback}", "value: from-env"},
		{"使用默认值", "value: ${ADVISOR_TEST_MISSING:fallback}", "value: fallback"},
		{"空默认值", "value: ${ADVISOR_TEST_MISSING:}", "value: "},
		{"无默认值且未定义时原样保留", "value: ${ADVISOR_TEST_MISSING}", "value: ${ADVISOR_TEST_MISSING}"},
		{"无占位符", "value: plain", "value: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.input))
		})
	}
}

func TestExpandEnv_DefinedEmptyVar(t *testing.T) {
	// 已定义但为空的变量优先于默认值
	t.Setenv("ADVISOR_TEST_EMPTY", "")
	assert.Equal(t, "value: ", expandEnv("value: ${ADVISOR_TEST_EMPTY:fallback}"))
}
