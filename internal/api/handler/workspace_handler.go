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

type WorkspaceHandler struct {
	workspaceSvc service.WorkspaceService
}

func NewWorkspaceHandler(workspaceSvc service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceSvc: workspaceSvc}
}

func (s *WorkspaceHandler) Create(c *gin.Context) {
	var createDTO dto.CreateWorkspaceDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.workspaceSvc.CreateWorkspace(c.Request.Context(), middleware.GetUserID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) List(c *gin.Context) {
	result, err := s.workspaceSvc.GetWorkspaces(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) Info(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.workspaceSvc.GetWorkspaceInfo(c.Request.Context(), middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) Rename(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var renameDTO dto.RenameWorkspaceDTO
	if err = c.ShouldBind(&renameDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&renameDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.workspaceSvc.RenameWorkspace(c.Request.Context(), middleware.GetUserID(c), workspaceID, renameDTO.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *WorkspaceHandler) Delete(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.workspaceSvc.DeleteWorkspace(c.Request.Context(), middleware.GetUserID(c), workspaceID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *WorkspaceHandler) ResetJoinCode(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	joinCode, err := s.workspaceSvc.ResetJoinCode(c.Request.Context(), middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"join_code": joinCode})
}

func (s *WorkspaceHandler) Join(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var joinDTO dto.JoinWorkspaceDTO
	if err = c.ShouldBind(&joinDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&joinDTO); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.workspaceSvc.JoinWorkspace(c.Request.Context(), middleware.GetUserID(c), workspaceID, joinDTO.JoinCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) Members(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.workspaceSvc.GetMembers(c.Request.Context(), middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) CurrentMember(c *gin.Context) {
	workspaceID, err := parseIDParam(c, "workspace_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.workspaceSvc.GetCurrentMember(c.Request.Context(), middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
	memberID, err := parseIDParam(c, "member_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var roleDTO dto.UpdateMemberRoleDTO
	if err = c.ShouldBind(&roleDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&roleDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.workspaceSvc.UpdateMemberRole(c.Request.Context(), middleware.GetUserID(c), memberID, roleDTO.Role); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *WorkspaceHandler) RemoveMember(c *gin.Context) {
	memberID, err := parseIDParam(c, "member_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.workspaceSvc.RemoveMember(c.Request.Context(), middleware.GetUserID(c), memberID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}
