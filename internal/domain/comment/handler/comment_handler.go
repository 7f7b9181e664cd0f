package handler

import (
	"errors"
	"net/http"

	"trendz_backend/internal/domain/comment/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// CommentInput 评论内容
type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// Create 发评论
// @Summary 创建评论
// @Tags Comment
// @Param id path string true "帖子ID"
// @Param data body CommentInput true "评论内容"
// @Success 200 {object} response.Response
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.Create(middleware.GetUserID(c), c.Param("id"), input.Content)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, "Bài đăng không tồn tại")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, comment)
}

// Update 改评论
// @Summary 更新评论
// @Tags Comment
// @Param id path string true "评论ID"
// @Param data body CommentInput true "评论内容"
// @Success 200 {object} response.Response
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.Update(c.Param("id"), middleware.GetUserID(c), input.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			response.NotFound(c, response.ErrCommentNotFound, "Bình luận không tồn tại")
		case errors.Is(err, service.ErrNotCommentOwner):
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, comment)
}

// Get 评论详情
// @Summary 获取评论
// @Tags Comment
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.NotFound(c, response.ErrCommentNotFound, "Bình luận không tồn tại")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, comment)
}

// ListByPost 某帖子的评论
// @Summary 按帖子获取评论
// @Tags Comment
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.service.ListByPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, "Bài đăng không tồn tại")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, comments)
}

// Delete 删评论（本人或管理员）
// @Summary 删除评论
// @Tags Comment
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Param("id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			response.NotFound(c, response.ErrCommentNotFound, "Bình luận không tồn tại")
		case errors.Is(err, service.ErrNotCommentOwner):
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, "success")
}
