package advisor

import (
	"strings"

	"dev-advisor-api/internal/domain/entity"
)

// 六个固定阶段，顺序不可变
const (
	phaseRequirements = "需求分析"
	phaseArchitecture = "架构设计"
	phaseImplement    = "开发实现"
	phaseTesting      = "测试验证"
	phaseDeployment   = "部署上线"
	phaseMaintenance  = "维护迭代"
)

// PlanDevelopment 生成分阶段开发计划
// 纯函数；始终返回恰好 6 个阶段，顺序固定。
// 任务清单与工期估算由复杂度等级决定，功能关键词追加阶段性任务。
func PlanDevelopment(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) []entity.DevelopmentPhase {
	level := complexity.Level
	features := strings.Join(req.Features, " ")

	phases := make([]entity.DevelopmentPhase, 0, 6)

	// 阶段一：需求分析
	phases = append(phases, entity.DevelopmentPhase{
		Phase: phaseRequirements,
		Tasks: []string{
			"梳理业务目标与核心用户场景",
			"输出功能清单与优先级排序",
			"确认技术约束与验收标准",
		},
		EstimatedTime: pickByLevel(level, "3-5天", "1-2周", "2-3周", "3-4周"),
		Resources:     filterRoles("产品经理", "业务分析师"),
	})

	// 阶段二：架构设计
	archTasks := []string{
		"设计系统整体架构与模块划分",
		"确定技术栈与第三方服务选型",
		"设计数据模型与接口契约",
	}
	if level == entity.ComplexityEnterprise {
		archTasks = append(archTasks, "规划微服务边界与服务治理方案")
	}
	phases = append(phases, entity.DevelopmentPhase{
		Phase:         phaseArchitecture,
		Tasks:         archTasks,
		EstimatedTime: pickByLevel(level, "3-5天", "1-2周", "2-4周", "4-6周"),
		Resources:     filterRoles("架构师", conditionalRole(level != entity.ComplexitySimple, "技术负责人")),
	})

	// 阶段三：开发实现
	implTasks := []string{
		"搭建项目脚手架与基础设施",
		"按模块迭代开发核心功能",
		"代码评审与持续集成",
	}
	if strings.Contains(features, "支付") {
		implTasks = append(implTasks, "接入支付渠道并完成对账流程")
	}
	if strings.Contains(features, "实时") || strings.Contains(features, "消息") {
		implTasks = append(implTasks, "实现实时通信链路与断线重连")
	}
	if strings.Contains(features, "上传") || strings.Contains(features, "文件") {
		implTasks = append(implTasks, "实现文件上传与存储方案")
	}
	phases = append(phases, entity.DevelopmentPhase{
		Phase:         phaseImplement,
		Tasks:         implTasks,
		EstimatedTime: pickByLevel(level, "4-6周", "8-12周", "12-16周", "16-24周"),
		Resources: filterRoles(
			"前端工程师",
			"后端工程师",
			conditionalRole(level != entity.ComplexitySimple, "全栈工程师"),
		),
	})

	// 阶段四：测试验证
	testTasks := []string{
		"编写单元测试与集成测试",
		"执行功能测试与回归测试",
		"修复缺陷并验证",
	}
	if level == entity.ComplexityComplex || level == entity.ComplexityEnterprise {
		testTasks = append(testTasks, "执行性能压测与安全扫描")
	}
	phases = append(phases, entity.DevelopmentPhase{
		Phase:         phaseTesting,
		Tasks:         testTasks,
		EstimatedTime: pickByLevel(level, "1周", "2-3周", "3-4周", "4-6周"),
		Resources:     filterRoles("测试工程师", conditionalRole(level == entity.ComplexityEnterprise, "安全工程师")),
	})

	// 阶段五：部署上线
	deployTasks := []string{
		"配置生产环境与域名证书",
		"执行上线发布与冒烟验证",
	}
	if level == entity.ComplexityComplex || level == entity.ComplexityEnterprise {
		deployTasks = append(deployTasks, "配置监控告警与日志采集", "制定回滚预案")
	}
	phases = append(phases, entity.DevelopmentPhase{
		Phase:         phaseDeployment,
		Tasks:         deployTasks,
		EstimatedTime: pickByLevel(level, "1-2天", "3-5天", "1周", "1-2周"),
		Resources:     filterRoles("运维工程师"),
	})

	// 阶段六：维护迭代
	phases = append(phases, entity.DevelopmentPhase{
		Phase: phaseMaintenance,
		Tasks: []string{
			"收集用户反馈并排期迭代",
			"监控线上问题并及时修复",
			"定期升级依赖与安全补丁",
		},
		EstimatedTime: "持续进行",
		Resources:     filterRoles("开发团队", "产品经理"),
	})

	return phases
}

// pickByLevel 按复杂度等级选择估算值
func pickByLevel(level entity.ComplexityLevel, simple, moderate, complexVal, enterprise string) string {
	switch level {
	case entity.ComplexitySimple:
		return simple
	case entity.ComplexityModerate:
		return moderate
	case entity.ComplexityComplex:
		return complexVal
	default:
		return enterprise
	}
}

// conditionalRole 条件成立时返回角色名，否则返回空串（由 filterRoles 过滤）
func conditionalRole(cond bool, role string) string {
	if cond {
		return role
	}
	return ""
}

// filterRoles 过滤空角色
func filterRoles(roles ...string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
