package handler

import (
	"errors"
	"net/http"

	"trendz_backend/internal/domain/reaction/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	service service.ReactionService
}

func NewReactionHandler(s service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: s}
}

// ReactInput 反应类型，空则默认 LIKE
type ReactInput struct {
	Type string `json:"type"`
}

// React 对帖子表态
// @Summary 创建或修改反应
// @Tags Reaction
// @Param id path string true "帖子ID"
// @Param data body ReactInput true "反应类型"
// @Success 200 {object} response.Response
// @Router /posts/{id}/reactions [put]
func (h *ReactionHandler) React(c *gin.Context) {
	// body 可以整个省略，默认 LIKE
	var input ReactInput
	_ = c.ShouldBindJSON(&input)

	reaction, err := h.service.React(middleware.GetUserID(c), c.Param("id"), input.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, response.ErrPostNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidType):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, reaction)
}

// Unreact 撤销反应
// @Summary 删除反应
// @Tags Reaction
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/reactions [delete]
func (h *ReactionHandler) Unreact(c *gin.Context) {
	if err := h.service.Unreact(middleware.GetUserID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrReactionNotFound):
			response.NotFound(c, response.ErrReactionNotFound, "Không tìm thấy cảm xúc để xóa")
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, response.ErrPostNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, "success")
}

// ListByPost 某帖子的全部反应
// @Summary 获取帖子的反应列表
// @Tags Reaction
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/reactions [get]
func (h *ReactionHandler) ListByPost(c *gin.Context) {
	reactions, err := h.service.ListByPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, reactions)
}

// GetOwn 当前用户对某帖子的反应
// @Summary 获取自己的反应
// @Tags Reaction
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/reactions/me [get]
func (h *ReactionHandler) GetOwn(c *gin.Context) {
	reaction, err := h.service.GetOwn(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReactionNotFound) {
			// 没有反应不算错误，前端据此渲染未表态状态
			response.Success(c, nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"type": reaction.Type})
}
