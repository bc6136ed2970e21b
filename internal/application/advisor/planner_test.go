package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev-advisor-api/internal/domain/entity"
)

var phaseOrder = []string{"需求分析", "架构设计", "开发实现", "测试验证", "部署上线", "维护迭代"}

func TestPlanDevelopment_AlwaysSixPhasesInOrder(t *testing.T) {
	reqs := []*entity.ProjectRequirement{
		{Category: "工具", TargetPlatform: []string{"Web"}, Features: []string{"功能"}},
		{Category: "电商平台", TargetPlatform: []string{"Web", "移动端"}, Features: []string{"商品", "订单", "支付", "购物车", "会员", "优惠券"}},
		{Category: "企业级管理系统", TargetPlatform: []string{"Web", "iOS", "Android"},
			Features:             make([]string, 12),
			TechnicalConstraints: strings.Repeat("约束", 30)},
	}

	for _, req := range reqs {
		phases := PlanDevelopment(req, ScoreComplexity(req))
		require.Len(t, phases, 6)
		for i, p := range phases {
			assert.Equal(t, phaseOrder[i], p.Phase)
			assert.NotEmpty(t, p.Tasks)
			assert.NotEmpty(t, p.EstimatedTime)
		}
	}
}

func TestPlanDevelopment_ImplementationEstimateByLevel(t *testing.T) {
	tests := []struct {
		name string
		req  *entity.ProjectRequirement
		want string
	}{
		{
			"simple",
			&entity.ProjectRequirement{Category: "工具", TargetPlatform: []string{"Web"}, Features: []string{"功能"}},
			"4-6周",
		},
		{
			"enterprise",
			&entity.ProjectRequirement{
				Category:             "企业级管理系统",
				TargetPlatform:       []string{"Web", "iOS", "Android"},
				Features:             make([]string, 12),
				TechnicalConstraints: strings.Repeat("约束", 30),
			},
			"16-24周",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phases := PlanDevelopment(tt.req, ScoreComplexity(tt.req))
			assert.Equal(t, tt.want, phases[2].EstimatedTime)
		})
	}
}

func TestPlanDevelopment_PaymentFeatureAddsTask(t *testing.T) {
	req := &entity.ProjectRequirement{
		Category:       "电商平台",
		TargetPlatform: []string{"Web"},
		Features:       []string{"支付下单"},
	}
	phases := PlanDevelopment(req, ScoreComplexity(req))

	assert.Contains(t, phases[2].Tasks, "接入支付渠道并完成对账流程")
}

func TestPlanDevelopment_SimpleOmitsFullstackRole(t *testing.T) {
	simple := &entity.ProjectRequirement{Category: "工具", TargetPlatform: []string{"Web"}, Features: []string{"功能"}}
	phases := PlanDevelopment(simple, ScoreComplexity(simple))
	assert.NotContains(t, phases[2].Resources, "全栈工程师")

	moderate := &entity.ProjectRequirement{
		Category:       "电商平台",
		TargetPlatform: []string{"Web", "移动端"},
		Features:       []string{"a", "b", "c", "d", "e", "f"},
	}
	phases = PlanDevelopment(moderate, ScoreComplexity(moderate))
	assert.Contains(t, phases[2].Resources, "全栈工程师")
}

func TestPlanDevelopment_EnterpriseExtras(t *testing.T) {
	req := &entity.ProjectRequirement{
		Category:             "企业级管理系统",
		TargetPlatform:       []string{"Web", "iOS", "Android"},
		Features:             make([]string, 12),
		TechnicalConstraints: strings.Repeat("约束", 30),
	}
	complexity := ScoreComplexity(req)
	require.Equal(t, entity.ComplexityEnterprise, complexity.Level)

	phases := PlanDevelopment(req, complexity)

	assert.Contains(t, phases[1].Tasks, "规划微服务边界与服务治理方案")
	assert.Contains(t, phases[3].Tasks, "执行性能压测与安全扫描")
	assert.Contains(t, phases[3].Resources, "安全工程师")
	assert.Contains(t, phases[4].Tasks, "制定回滚预案")
}

func TestPlanDevelopment_MaintenanceIsOngoing(t *testing.T) {
	req := &entity.ProjectRequirement{Category: "工具", TargetPlatform: []string{"Web"}, Features: []string{"功能"}}
	phases := PlanDevelopment(req, ScoreComplexity(req))

	assert.Equal(t, "持续进行", phases[5].EstimatedTime)
}
