package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchHistory 分析历史记录
// 最多保留最近 50 条，最新的在前。
type SearchHistory struct {
	ID           string             `json:"id"`
	Requirements ProjectRequirement `json:"requirements"`
	Result       AnalysisResult     `json:"result"`
	Timestamp    time.Time          `json:"timestamp"`
	Favorite     bool               `json:"favorite"`
}

// NewSearchHistory 创建历史记录
func NewSearchHistory(req ProjectRequirement, result AnalysisResult) *SearchHistory {
	return &SearchHistory{
		ID:           uuid.New().String(),
		Requirements: req,
		Result:       result,
		Timestamp:    time.Now().UTC(),
		Favorite:     false,
	}
}
