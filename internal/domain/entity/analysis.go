package entity

// ComplexityLevel 复杂度等级
type ComplexityLevel string

const (
	ComplexitySimple     ComplexityLevel = "simple"
	ComplexityModerate   ComplexityLevel = "moderate"
	ComplexityComplex    ComplexityLevel = "complex"
	ComplexityEnterprise ComplexityLevel = "enterprise"
)

// BucketComplexity 按分数划分复杂度等级
// 边界固定为 {3, 6, 9}，等级随分数单调不减。
func BucketComplexity(score int) ComplexityLevel {
	switch {
	case score <= 3:
		return ComplexitySimple
	case score <= 6:
		return ComplexityModerate
	case score <= 9:
		return ComplexityComplex
	default:
		return ComplexityEnterprise
	}
}

// ComplexityAssessment 复杂度评估结果
// 每次分析重新计算，不做持久化。
type ComplexityAssessment struct {
	Level   ComplexityLevel `json:"level"`
	Score   int             `json:"score"`
	Factors []string        `json:"factors"`
}

// TechStackPriority 技术选型优先级
type TechStackPriority string

const (
	PriorityMustHave    TechStackPriority = "must-have"
	PriorityRecommended TechStackPriority = "recommended"
	PriorityOptional    TechStackPriority = "optional"
)

// TechStackEntry 单项技术选型建议
type TechStackEntry struct {
	Category string            `json:"category"`
	Name     string            `json:"name"`
	Version  string            `json:"version,omitempty"`
	Reason   string            `json:"reason"`
	Priority TechStackPriority `json:"priority"`
}

// DevelopmentPhase 开发阶段
// 六个阶段固定顺序：需求分析 → 架构设计 → 开发实现 → 测试 → 部署上线 → 维护迭代。
type DevelopmentPhase struct {
	Phase         string   `json:"phase"`
	Tasks         []string `json:"tasks"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
	Resources     []string `json:"resources,omitempty"`
}

// AIPromptBundle AI 提示词包
type AIPromptBundle struct {
	Prompt      string   `json:"prompt"`
	Context     string   `json:"context"`
	Suggestions []string `json:"suggestions"`
}

// AnalysisResult 分析结果
// 返回给调用方的完整建议包；AI 增强失败时结构保持完整，仅缺少增强文本。
type AnalysisResult struct {
	AIPrompt          AIPromptBundle     `json:"ai_prompt"`
	TechStack         []TechStackEntry   `json:"tech_stack"`
	DevelopmentAdvice []DevelopmentPhase `json:"development_advice"`
	AdditionalNotes   []string           `json:"additional_notes,omitempty"`
}
