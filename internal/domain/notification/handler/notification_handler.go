package handler

import (
	"errors"
	"io"
	"net/http"

	"trendz_backend/internal/domain/notification/service"
	"trendz_backend/internal/pkg/live"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
	broker  *live.Broker
}

func NewNotificationHandler(s service.NotificationService, broker *live.Broker) *NotificationHandler {
	return &NotificationHandler{service: s, broker: broker}
}

// MarkReadInput 批量已读输入
type MarkReadInput struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// List 当前用户的通知（倒序）
// @Summary 获取通知列表
// @Tags Notification
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.service.ListByUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, list)
}

// MarkRead 批量标记已读
// @Summary 标记通知已读
// @Tags Notification
// @Accept json
// @Param input body MarkReadInput true "通知ID列表"
// @Success 200 {object} response.Response
// @Router /notifications/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var input MarkReadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.MarkRead(input.IDs); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, response.ErrNotificationNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// Delete 删除通知
// @Summary 删除通知
// @Tags Notification
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, response.ErrNotificationNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// Stream SSE 实时通知流
// 断线期间的通知不回放，客户端重连后通过 GET /notifications 补齐
// @Summary 订阅实时通知 (SSE)
// @Tags Notification
// @Produce text/event-stream
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	sub := h.broker.Subscribe(live.NotifyChannel(middleware.GetUserID(c)))
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
