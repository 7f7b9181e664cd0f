package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"trendz_backend/internal/domain/chat/service"
	"trendz_backend/internal/pkg/live"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service service.ChatService
	broker  *live.Broker
}

func NewChatHandler(s service.ChatService, broker *live.Broker) *ChatHandler {
	return &ChatHandler{service: s, broker: broker}
}

// CreateBoxInput 会话对象
type CreateBoxInput struct {
	PartnerID string `json:"partnerId" binding:"required"`
}

// MessageInput 消息内容
type MessageInput struct {
	Content string `json:"content" binding:"required"`
}

func (h *ChatHandler) respondChatErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChatBoxNotFound):
		response.NotFound(c, response.ErrChatBoxNotFound, "Chatbox không tồn tại")
	case errors.Is(err, service.ErrChatSelf):
		response.Error(c, http.StatusBadRequest, response.ErrChatSelf, "Không thể tạo chatBox với bản thân")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, response.ErrUserNotFound, "User không tồn tại")
	case errors.Is(err, service.ErrNotChatMember):
		response.Error(c, http.StatusForbidden, response.ErrNotChatMember, err.Error())
	case errors.Is(err, service.ErrMessageNotFound):
		response.NotFound(c, response.ErrMessageNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// CreateOrGet 获取或创建与某人的会话
// @Summary 创建或获取会话
// @Tags Chat
// @Param data body CreateBoxInput true "对方用户ID"
// @Success 200 {object} response.Response
// @Router /chatboxes [post]
func (h *ChatHandler) CreateOrGet(c *gin.Context) {
	var input CreateBoxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	box, err := h.service.CreateOrGet(middleware.GetUserID(c), input.PartnerID)
	if err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, box)
}

// ListBoxes 当前用户的全部会话
// @Summary 会话列表
// @Tags Chat
// @Success 200 {object} response.Response
// @Router /chatboxes [get]
func (h *ChatHandler) ListBoxes(c *gin.Context) {
	boxes, err := h.service.ListBoxes(middleware.GetUserID(c))
	if err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, boxes)
}

// GetBox 会话详情
// @Summary 获取会话
// @Tags Chat
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response
// @Router /chatboxes/{id} [get]
func (h *ChatHandler) GetBox(c *gin.Context) {
	box, err := h.service.GetBox(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, box)
}

// DeleteBox 删除会话
// @Summary 删除会话
// @Tags Chat
// @Param id path string true "会话ID"
// @Success 200 {object} response.Response
// @Router /chatboxes/{id} [delete]
func (h *ChatHandler) DeleteBox(c *gin.Context) {
	if err := h.service.DeleteBox(c.Param("id"), middleware.GetUserID(c)); err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, "success")
}

// PostMessage 发消息
// @Summary 发送消息
// @Tags Chat
// @Param id path string true "会话ID"
// @Param data body MessageInput true "消息内容"
// @Success 200 {object} response.Response
// @Router /chatboxes/{id}/messages [post]
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	msg, err := h.service.PostMessage(c.Param("id"), middleware.GetUserID(c), input.Content)
	if err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, msg)
}

// ListMessages 倒序分页拉历史
// @Summary 消息历史
// @Tags Chat
// @Param id path string true "会话ID"
// @Param skip query int false "跳过条数"
// @Param limit query int false "返回条数"
// @Success 200 {object} response.Response
// @Router /chatboxes/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	msgs, err := h.service.ListMessages(c.Param("id"), middleware.GetUserID(c), skip, limit)
	if err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, msgs)
}

// DeleteMessage 删自己的消息
// @Summary 删除消息
// @Tags Chat
// @Param messageId path string true "消息ID"
// @Success 200 {object} response.Response
// @Router /chatboxes/messages/{messageId} [delete]
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	if err := h.service.DeleteMessage(c.Param("messageId"), middleware.GetUserID(c)); err != nil {
		h.respondChatErr(c, err)
		return
	}
	response.Success(c, "success")
}

// Stream SSE 实时消息流，订阅前校验会话成员身份
// 断线期间的消息不回放，重连后通过消息历史接口补齐
// @Summary 订阅会话实时消息 (SSE)
// @Tags Chat
// @Produce text/event-stream
// @Param id path string true "会话ID"
// @Router /chatboxes/{id}/stream [get]
func (h *ChatHandler) Stream(c *gin.Context) {
	boxID := c.Param("id")
	if err := h.service.CheckMember(boxID, middleware.GetUserID(c)); err != nil {
		h.respondChatErr(c, err)
		return
	}

	sub := h.broker.Subscribe(live.ChatChannel(boxID))
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
			c.SSEvent("message", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
