package dto

import (
	"time"

	"dev-advisor-api/internal/domain/entity"
)

// AnalyzeRequest 项目分析请求
type AnalyzeRequest struct {
	ProjectName          string   `json:"project_name" binding:"required,max=100"`
	Description          string   `json:"description" binding:"required,max=5000"`
	Category             string   `json:"category" binding:"required,max=50"`
	TargetPlatform       []string `json:"target_platform" binding:"required,min=1"`
	Features             []string `json:"features" binding:"required,min=1"`
	UserStory            string   `json:"user_story" binding:"max=5000"`
	TechnicalConstraints string   `json:"technical_constraints" binding:"max=2000"`
	UseAI                bool     `json:"use_ai"`
}

// ToEntity 转换为领域实体
func (r *AnalyzeRequest) ToEntity() *entity.ProjectRequirement {
	return &entity.ProjectRequirement{
		ProjectName:          r.ProjectName,
		Description:          r.Description,
		Category:             r.Category,
		TargetPlatform:       r.TargetPlatform,
		Features:             r.Features,
		UserStory:            r.UserStory,
		TechnicalConstraints: r.TechnicalConstraints,
	}
}

// AnalyzeResponse 项目分析响应
type AnalyzeResponse struct {
	ID        string                 `json:"id"`
	Result    *entity.AnalysisResult `json:"result"`
	Timestamp time.Time              `json:"timestamp"`
}
