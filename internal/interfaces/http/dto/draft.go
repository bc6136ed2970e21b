package dto

import "encoding/json"

// SaveDraftRequest 草稿保存请求
// Data 为调用方自定义的表单状态，服务端不解释其内容。
type SaveDraftRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

// DraftResponse 草稿响应
type DraftResponse struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}
