package dto

// ListHistoryQuery 历史列表查询参数
type ListHistoryQuery struct {
	Favorite bool `form:"favorite"`
	Page     int  `form:"page,default=1" binding:"min=1"`
	PageSize int  `form:"page_size,default=20" binding:"min=1,max=50"`
}

// FavoriteRequest 收藏标记请求
type FavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}
