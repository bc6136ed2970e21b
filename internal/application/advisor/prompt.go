package advisor

import (
	"fmt"
	"strings"

	"dev-advisor-api/internal/domain/entity"
)

// 五个固定的请求小节，AI 增强与提示词文档共用
var promptRequestSections = []string{
	"架构设计建议：给出适合该项目的整体架构方案与模块划分",
	"技术栈选型理由：逐项说明推荐技术的取舍依据",
	"开发流程规划：给出分阶段的落地路线与里程碑",
	"风险评估：列出主要技术风险与规避措施",
	"成本与时间估算：给出人力投入与工期的量级判断",
}

// SynthesizePrompt 合成 AI 提示词包
// 纯函数；产出结构化 Markdown 提示词、一段式上下文摘要与按复杂度分支的建议列表。
func SynthesizePrompt(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) entity.AIPromptBundle {
	return entity.AIPromptBundle{
		Prompt:      buildPromptDocument(req, complexity),
		Context:     buildContextSummary(req, complexity),
		Suggestions: buildSuggestions(req, complexity),
	}
}

// buildPromptDocument 构建 Markdown 提示词文档
func buildPromptDocument(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) string {
	var b strings.Builder

	b.WriteString("# 项目开发咨询\n\n")
	b.WriteString("## 项目概况\n\n")
	fmt.Fprintf(&b, "- 项目名称：%s\n", req.ProjectName)
	fmt.Fprintf(&b, "- 项目描述：%s\n", req.Description)
	fmt.Fprintf(&b, "- 项目类型：%s\n", req.Category)
	fmt.Fprintf(&b, "- 目标平台：%s\n", strings.Join(req.TargetPlatform, "、"))
	fmt.Fprintf(&b, "- 复杂度评估：%s（评分 %d）\n", complexity.Level, complexity.Score)

	b.WriteString("\n## 功能需求\n\n")
	if len(req.Features) == 0 {
		b.WriteString("（未提供具体功能清单）\n")
	}
	for _, f := range req.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	if strings.TrimSpace(req.UserStory) != "" {
		b.WriteString("\n## 用户故事\n\n")
		b.WriteString(req.UserStory)
		b.WriteString("\n")
	}

	if strings.TrimSpace(req.TechnicalConstraints) != "" {
		b.WriteString("\n## 技术约束\n\n")
		b.WriteString(req.TechnicalConstraints)
		b.WriteString("\n")
	}

	b.WriteString("\n## 复杂度因素\n\n")
	for _, f := range complexity.Factors {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString("\n## 请求内容\n\n")
	b.WriteString("请作为经验丰富的软件架构师，针对以上项目给出：\n\n")
	for i, s := range promptRequestSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return b.String()
}

// buildContextSummary 构建一段式上下文摘要
func buildContextSummary(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) string {
	return fmt.Sprintf(
		"项目「%s」是一个%s，目标平台为 %s，共 %d 项功能需求，复杂度评估为 %s（评分 %d）。%s",
		req.ProjectName,
		req.Category,
		strings.Join(req.TargetPlatform, "、"),
		len(req.Features),
		complexity.Level,
		complexity.Score,
		req.Description,
	)
}

// buildSuggestions 按复杂度等级与关键词生成建议列表
func buildSuggestions(req *entity.ProjectRequirement, complexity entity.ComplexityAssessment) []string {
	suggestions := make([]string, 0, 8)

	switch complexity.Level {
	case entity.ComplexityEnterprise, entity.ComplexityComplex:
		suggestions = append(suggestions,
			"建议采用微服务或模块化架构，按业务域拆分服务边界",
			"从第一天起搭建 CI/CD 流水线，保证可重复交付",
			"引入完整的可观测性方案（日志、指标、链路追踪）",
			"重视安全设计：认证授权、数据加密、依赖审计",
			"使用 CDN 与多级缓存优化访问性能",
		)
	case entity.ComplexityModerate:
		suggestions = append(suggestions,
			"建议采用模块化单体架构，保留后续拆分的可能性",
			"搭建基础 CI/CD，自动化测试与部署",
			"使用 Docker 统一开发与生产环境",
			"为核心业务逻辑编写单元测试",
			"引入 Redis 缓存热点数据",
		)
	default:
		suggestions = append(suggestions,
			"建议快速原型验证，优先交付核心流程",
			"使用托管平台部署，避免过早投入运维",
			"选择轻量级技术栈，控制学习与维护成本",
		)
	}

	if platformMatches(req.TargetPlatform, "移动", "mobile", "ios", "android") {
		suggestions = append(suggestions, "移动端建议使用跨端框架，降低双平台维护成本")
	}
	if platformMatches(req.TargetPlatform, "web") {
		suggestions = append(suggestions, "Web 端可考虑 PWA 方案，提供离线能力与安装体验")
	}

	features := strings.Join(req.Features, " ")
	if strings.Contains(features, "实时") || strings.Contains(features, "消息") || strings.Contains(features, "聊天") {
		suggestions = append(suggestions, "实时类功能建议使用 WebSocket，并设计好心跳与重连机制")
	}

	return suggestions
}
