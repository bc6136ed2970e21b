package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketComplexity(t *testing.T) {
	tests := []struct {
		score int
		want  ComplexityLevel
	}{
		{0, ComplexitySimple},
		{1, ComplexitySimple},
		{3, ComplexitySimple},
		{4, ComplexityModerate},
		{6, ComplexityModerate},
		{7, ComplexityComplex},
		{9, ComplexityComplex},
		{10, ComplexityEnterprise},
		{100, ComplexityEnterprise},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketComplexity(tt.score), "score=%d", tt.score)
	}
}

func TestNewSearchHistory(t *testing.T) {
	req := ProjectRequirement{ProjectName: "测试项目"}
	result := AnalysisResult{}

	record := NewSearchHistory(req, result)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "测试项目", record.Requirements.ProjectName)
	assert.False(t, record.Favorite)
	assert.False(t, record.Timestamp.IsZero())

	// ID 不可重复
	other := NewSearchHistory(req, result)
	assert.NotEqual(t, record.ID, other.ID)
}
