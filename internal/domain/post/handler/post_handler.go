package handler

import (
	"errors"
	"net/http"

	"trendz_backend/internal/domain/post/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/uploader"
	"trendz_backend/pkg/response"
	"trendz_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// PostInput 发帖/改帖输入 (multipart 表单，image/video 互斥)
type PostInput struct {
	Title        string `form:"title"`
	Content      string `form:"content"`
	TrendTopicID string `form:"trendTopicId"`
}

// resolveMedia 从表单解出媒体 URL，image 优先于 video
func resolveMedia(c *gin.Context) (imageURL, videoURL string, err error) {
	if uploader.GlobalUploader == nil {
		return "", "", nil
	}
	if file, ferr := c.FormFile("image"); ferr == nil {
		url, uerr := uploader.GlobalUploader.UploadFile("post-images", file)
		if uerr != nil {
			return "", "", uerr
		}
		return url, "", nil
	}
	if file, ferr := c.FormFile("video"); ferr == nil {
		url, uerr := uploader.GlobalUploader.UploadFile("post-videos", file)
		if uerr != nil {
			return "", "", uerr
		}
		return "", url, nil
	}
	return "", "", nil
}

// Create 发帖
// @Summary 创建帖子
// @Tags Post
// @Accept multipart/form-data
// @Success 200 {object} response.Response
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	imageURL, videoURL, err := resolveMedia(c)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+err.Error())
		return
	}

	svcInput := service.CreatePostInput{
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: imageURL,
		VideoURL: videoURL,
	}
	if input.TrendTopicID != "" {
		svcInput.TrendTopicID = &input.TrendTopicID
	}

	post, err := h.service.Create(middleware.GetUserID(c), svcInput)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// Update 改帖
// @Summary 更新帖子
// @Tags Post
// @Accept multipart/form-data
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	imageURL, videoURL, err := resolveMedia(c)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+err.Error())
		return
	}

	svcInput := service.UpdatePostInput{
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: imageURL,
		VideoURL: videoURL,
	}
	if input.TrendTopicID != "" {
		svcInput.TrendTopicID = &input.TrendTopicID
	}

	post, err := h.service.Update(c.Param("id"), svcInput)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// List 分页拉取帖子流
// @Summary 帖子列表
// @Tags Post
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} response.Response
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.List(&p)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, result)
}

// Get 帖子详情
// @Summary 获取帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// ListByUser 某用户的帖子
// @Summary 按用户获取帖子
// @Tags Post
// @Param userId path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /posts/user/{userId} [get]
func (h *PostHandler) ListByUser(c *gin.Context) {
	posts, err := h.service.ListByUser(c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, posts)
}

// ListByTrendTopic 按话题获取帖子
// @Summary 按趋势话题获取帖子
// @Tags Post
// @Param topicId path string true "话题ID"
// @Success 200 {object} response.Response
// @Router /posts/trend-topic/{topicId} [get]
func (h *PostHandler) ListByTrendTopic(c *gin.Context) {
	posts, err := h.service.ListByTrendTopic(c.Param("topicId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, posts)
}

// Delete 删帖
// @Summary 删除帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// Ban 封禁帖子 (管理员)
// @Summary 封禁帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/ban [patch]
func (h *PostHandler) Ban(c *gin.Context) {
	post, err := h.service.Ban(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, response.ErrPostNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// Share 分享帖子
// @Summary 分享帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/share [post]
func (h *PostHandler) Share(c *gin.Context) {
	if err := h.service.Share(middleware.GetUserID(c), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, response.ErrPostNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyShared):
			response.Conflict(c, response.ErrAlreadyShared, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, "success")
}

// Unshare 取消分享
// @Summary 取消分享帖子
// @Tags Post
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Router /posts/{id}/share [delete]
func (h *PostHandler) Unshare(c *gin.Context) {
	if err := h.service.Unshare(middleware.GetUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			response.NotFound(c, response.ErrShareNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "Hủy chia sẻ bài viết thành công"})
}

// ListShared 某用户分享过的帖子（被删帖子以墓碑占位）
// @Summary 获取用户分享的帖子
// @Tags Post
// @Param userId path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /posts/shared/{userId} [get]
func (h *PostHandler) ListShared(c *gin.Context) {
	shared, err := h.service.ListSharedByUser(c.Param("userId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, shared)
}
