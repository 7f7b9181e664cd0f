package handler

import (
	"errors"
	"net/http"

	"trendz_backend/internal/domain/trend/service"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TrendHandler struct {
	service service.TrendService
}

func NewTrendHandler(s service.TrendService) *TrendHandler {
	return &TrendHandler{service: s}
}

// TopicInput 话题输入
type TopicInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Create 创建话题 (管理员)
// @Summary 创建趋势话题
// @Tags Trend
// @Accept json
// @Param input body TopicInput true "话题"
// @Success 200 {object} response.Response
// @Router /trend-topics [post]
func (h *TrendHandler) Create(c *gin.Context) {
	var input TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	topic, err := h.service.Create(input.Title, input.Description)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, topic)
}

// Update 更新话题 (管理员)
// @Summary 更新趋势话题
// @Tags Trend
// @Param id path string true "话题ID"
// @Success 200 {object} response.Response
// @Router /trend-topics/{id} [patch]
func (h *TrendHandler) Update(c *gin.Context) {
	var input TopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	topic, err := h.service.Update(c.Param("id"), input.Title, input.Description)
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.NotFound(c, response.ErrTopicNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, topic)
}

// List 全部话题
// @Summary 话题列表
// @Tags Trend
// @Success 200 {object} response.Response
// @Router /trend-topics [get]
func (h *TrendHandler) List(c *gin.Context) {
	topics, err := h.service.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, topics)
}

// Search 关键字搜索
// @Summary 搜索话题
// @Tags Trend
// @Param keyword query string true "关键字"
// @Success 200 {object} response.Response
// @Router /trend-topics/search [get]
func (h *TrendHandler) Search(c *gin.Context) {
	topics, err := h.service.Search(c.Query("keyword"))
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.NotFound(c, response.ErrTopicNotFound, "Không tìm thấy xu hướng phù hợp")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, topics)
}

// Get 话题详情
// @Summary 获取话题
// @Tags Trend
// @Param id path string true "话题ID"
// @Success 200 {object} response.Response
// @Router /trend-topics/{id} [get]
func (h *TrendHandler) Get(c *gin.Context) {
	topic, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.NotFound(c, response.ErrTopicNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, topic)
}

// Delete 删除话题 (管理员)
// @Summary 删除话题
// @Tags Trend
// @Param id path string true "话题ID"
// @Success 200 {object} response.Response
// @Router /trend-topics/{id} [delete]
func (h *TrendHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			response.NotFound(c, response.ErrTopicNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}
