package handler

import (
	"Parley/internal/api/dto"
	"Parley/internal/api/middleware"
	"Parley/internal/pkg/response"
	"Parley/internal/pkg/util"
	"Parley/internal/service"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversationSvc service.ConversationService
}

func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

func (s *ConversationHandler) GetOrCreate(c *gin.Context) {
	var createDTO dto.GetOrCreateConversationDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.conversationSvc.GetOrCreateConversation(c.Request.Context(), middleware.GetUserID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ConversationHandler) Info(c *gin.Context) {
	conversationID, err := parseIDParam(c, "conversation_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.conversationSvc.GetConversationInfo(c.Request.Context(), middleware.GetUserID(c), conversationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
