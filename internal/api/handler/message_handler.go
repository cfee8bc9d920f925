package handler

import (
	"Parley/internal/api/dto"
	"Parley/internal/api/middleware"
	"Parley/internal/pkg/response"
	"Parley/internal/pkg/util"
	"Parley/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// List 按范围分页拉取历史消息
// channel_id / conversation_id / parent_message_id 三选一
func (s *MessageHandler) List(c *gin.Context) {
	workspaceID, err := strconv.ParseUint(c.Query("workspace_id"), 10, 64)
	if err != nil || workspaceID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	channelID, _ := strconv.ParseUint(c.Query("channel_id"), 10, 64)
	conversationID, _ := strconv.ParseUint(c.Query("conversation_id"), 10, 64)

	query := &service.MessageQuery{
		WorkspaceID:     workspaceID,
		ChannelID:       channelID,
		ConversationID:  conversationID,
		ParentMessageID: c.Query("parent_message_id"),
		Cursor:          c.Query("cursor"),
	}

	result, err := s.messageSvc.GetMessages(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MessageHandler) Info(c *gin.Context) {
	result, err := s.messageSvc.GetMessageInfo(c.Request.Context(), middleware.GetUserID(c), c.Param("message_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MessageHandler) Create(c *gin.Context) {
	var createDTO dto.CreateMessageDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.messageSvc.CreateMessage(c.Request.Context(), middleware.GetUserID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MessageHandler) Update(c *gin.Context) {
	var updateDTO dto.UpdateMessageDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	err := s.messageSvc.UpdateMessage(c.Request.Context(), middleware.GetUserID(c), c.Param("message_id"), updateDTO.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MessageHandler) Delete(c *gin.Context) {
	err := s.messageSvc.DeleteMessage(c.Request.Context(), middleware.GetUserID(c), c.Param("message_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MessageHandler) ToggleReaction(c *gin.Context) {
	var reactionDTO dto.ToggleReactionDTO
	if err := c.ShouldBind(&reactionDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&reactionDTO); err != nil {
		response.Error(c, err)
		return
	}

	err := s.messageSvc.ToggleReaction(c.Request.Context(), middleware.GetUserID(c), c.Param("message_id"), reactionDTO.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
