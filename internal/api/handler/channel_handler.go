package handler

import (
	"Parley/internal/api/dto"
	"Parley/internal/api/middleware"
	"Parley/internal/pkg/response"
	"Parley/internal/pkg/util"
	"Parley/internal/service"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelSvc service.ChannelService
}

func NewChannelHandler(channelSvc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelSvc: channelSvc}
}

func (s *ChannelHandler) Create(c *gin.Context) {
	var createDTO dto.CreateChannelDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.channelSvc.CreateChannel(c.Request.Context(), middleware.GetUserID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ChannelHandler) List(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.channelSvc.GetChannels(c.Request.Context(), middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ChannelHandler) Info(c *gin.Context) {
	channelID, err := parseIDParam(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.channelSvc.GetChannelInfo(c.Request.Context(), middleware.GetUserID(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ChannelHandler) Rename(c *gin.Context) {
	channelID, err := parseIDParam(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var renameDTO dto.RenameChannelDTO
	if err = c.ShouldBind(&renameDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&renameDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.channelSvc.RenameChannel(c.Request.Context(), middleware.GetUserID(c), channelID, renameDTO.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ChannelHandler) Delete(c *gin.Context) {
	channelID, err := parseIDParam(c, "channel_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.channelSvc.DeleteChannel(c.Request.Context(), middleware.GetUserID(c), channelID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
