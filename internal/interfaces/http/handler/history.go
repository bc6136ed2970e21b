package handler

import (
	"github.com/gin-gonic/gin"

	"dev-advisor-api/internal/domain/entity"
	"dev-advisor-api/internal/infrastructure/persistence/redis"
	"dev-advisor-api/internal/interfaces/http/dto"
)

// HistoryHandler 分析历史处理器
type HistoryHandler struct {
	store *redis.HistoryStore
}

// NewHistoryHandler 创建历史处理器
func NewHistoryHandler(store *redis.HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List 列出历史记录，最新在前
// @Summary 列出分析历史
// @Tags History
// @Produce json
// @Param favorite query bool false "只看收藏"
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.Response[[]entity.SearchHistory]
// @Router /v1/analysis/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	var query dto.ListHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	records, err := h.store.List(c.Request.Context(), query.Favorite)
	if err != nil {
		handleError(c, err)
		return
	}

	total := len(records)
	start := (query.Page - 1) * query.PageSize
	if start > total {
		start = total
	}
	end := start + query.PageSize
	if end > total {
		end = total
	}

	page := records[start:end]
	if page == nil {
		page = []*entity.SearchHistory{}
	}
	dto.SuccessWithPage(c, page, dto.NewPageMeta(query.Page, query.PageSize, total))
}

// Get 按 ID 获取历史记录
// @Summary 获取历史记录
// @Tags History
// @Produce json
// @Param hid path string true "历史记录 ID"
// @Success 200 {object} dto.Response[entity.SearchHistory]
// @Router /v1/analysis/history/{hid} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("hid"))
	if err != nil {
		handleError(c, err)
		return
	}
	dto.Success(c, record)
}

// SetFavorite 设置收藏标记
// @Summary 设置收藏标记
// @Tags History
// @Accept json
// @Produce json
// @Param hid path string true "历史记录 ID"
// @Param request body dto.FavoriteRequest true "收藏标记"
// @Success 200 {object} dto.Response[entity.SearchHistory]
// @Router /v1/analysis/history/{hid}/favorite [put]
func (h *HistoryHandler) SetFavorite(c *gin.Context) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	record, err := h.store.SetFavorite(c.Request.Context(), c.Param("hid"), *req.Favorite)
	if err != nil {
		handleError(c, err)
		return
	}
	dto.Success(c, record)
}

// Delete 删除单条历史记录
// @Summary 删除历史记录
// @Tags History
// @Param hid path string true "历史记录 ID"
// @Success 204
// @Router /v1/analysis/history/{hid} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("hid")); err != nil {
		handleError(c, err)
		return
	}
	dto.NoContent(c)
}

// Clear 清空全部历史
// @Summary 清空分析历史
// @Tags History
// @Success 204
// @Router /v1/analysis/history [delete]
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	dto.NoContent(c)
}
