// Package entity 定义领域实体
package entity

// ProjectRequirement 项目需求
// 由调用方（表单向导）收集并校验必填项，传入后视为不可变。
type ProjectRequirement struct {
	ProjectName          string   `json:"project_name"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	TargetPlatform       []string `json:"target_platform"`
	Features             []string `json:"features"`
	UserStory            string   `json:"user_story,omitempty"`
	TechnicalConstraints string   `json:"technical_constraints,omitempty"`
}
