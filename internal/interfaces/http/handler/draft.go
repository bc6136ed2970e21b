package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"dev-advisor-api/internal/infrastructure/persistence/redis"
	"dev-advisor-api/internal/interfaces/http/dto"
	"dev-advisor-api/pkg/errors"
)

const draftKeyPrefix = "advisor:draft:"

// DraftHandler 需求草稿处理器
// 草稿是调用方保存的表单状态，按 ID 覆盖写入，到期自动清理。
type DraftHandler struct {
	kv  *redis.KVStore
	ttl time.Duration
}

// NewDraftHandler 创建草稿处理器
func NewDraftHandler(kv *redis.KVStore, ttl time.Duration) *DraftHandler {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &DraftHandler{kv: kv, ttl: ttl}
}

// Get 获取草稿
// @Summary 获取需求草稿
// @Tags Draft
// @Produce json
// @Param did path string true "草稿 ID"
// @Success 200 {object} dto.Response[dto.DraftResponse]
// @Router /v1/drafts/{did} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	did := c.Param("did")
	data, err := h.kv.Get(c.Request.Context(), draftKeyPrefix+did)
	if err != nil {
		if redis.IsNil(err) {
			handleError(c, errors.ErrDraftNotFound)
			return
		}
		handleError(c, errors.Wrap(err, errors.CodeCacheError, "failed to load draft"))
		return
	}
	dto.Success(c, dto.DraftResponse{ID: did, Data: json.RawMessage(data)})
}

// Save 保存草稿（覆盖写入）
// @Summary 保存需求草稿
// @Tags Draft
// @Accept json
// @Produce json
// @Param did path string true "草稿 ID"
// @Param request body dto.SaveDraftRequest true "草稿内容"
// @Success 200 {object} dto.Response[dto.DraftResponse]
// @Router /v1/drafts/{did} [put]
func (h *DraftHandler) Save(c *gin.Context) {
	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	did := c.Param("did")
	if err := h.kv.Set(c.Request.Context(), draftKeyPrefix+did, req.Data, h.ttl); err != nil {
		handleError(c, errors.Wrap(err, errors.CodeCacheError, "failed to save draft"))
		return
	}
	dto.Success(c, dto.DraftResponse{ID: did, Data: req.Data})
}

// Delete 删除草稿
// @Summary 删除需求草稿
// @Tags Draft
// @Param did path string true "草稿 ID"
// @Success 204
// @Router /v1/drafts/{did} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	did := c.Param("did")
	if err := h.kv.Remove(c.Request.Context(), draftKeyPrefix+did); err != nil {
		handleError(c, errors.Wrap(err, errors.CodeCacheError, "failed to delete draft"))
		return
	}
	dto.NoContent(c)
}
