// Package advisor 实现需求分析引擎：复杂度评估、技术选型、开发规划与提示词合成
package advisor

import (
	"strings"

	"dev-advisor-api/internal/domain/entity"
)

// ScoreComplexity 计算项目复杂度
// 纯函数：相同输入恒产出相同输出，任何合法输入都不会失败。
// 加分项同时累计分数并追加人类可读的因素说明，最低分为 1。
func ScoreComplexity(req *entity.ProjectRequirement) entity.ComplexityAssessment {
	score := 0
	factors := make([]string, 0, 5)

	// 功能数量
	switch {
	case len(req.Features) > 10:
		score += 3
		factors = append(factors, "功能数量较多")
	case len(req.Features) > 5:
		score += 2
		factors = append(factors, "功能数量中等")
	default:
		score += 1
		factors = append(factors, "功能数量较少")
	}

	// 目标平台数量
	switch {
	case len(req.TargetPlatform) >= 3:
		score += 3
		factors = append(factors, "需要支持多个平台")
	case len(req.TargetPlatform) == 2:
		score += 2
		factors = append(factors, "需要支持两个平台")
	}

	// 项目类型关键词
	if strings.Contains(req.Category, "企业") || strings.Contains(req.Category, "全栈") {
		score += 3
		factors = append(factors, "企业级或全栈应用")
	} else if strings.Contains(req.Category, "电商") || strings.Contains(req.Category, "社交") {
		score += 2
		factors = append(factors, "业务场景较复杂")
	}

	// 技术约束
	if len([]rune(req.TechnicalConstraints)) > 50 {
		score += 2
		factors = append(factors, "技术约束较多")
	}

	// 用户故事
	if len([]rune(req.UserStory)) > 100 {
		score += 1
		factors = append(factors, "用户故事描述详细")
	}

	return entity.ComplexityAssessment{
		Level:   entity.BucketComplexity(score),
		Score:   score,
		Factors: factors,
	}
}
