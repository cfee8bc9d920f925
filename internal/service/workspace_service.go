package service

import (
	"Parley/internal/api/dto"
	"Parley/internal/model"
	"Parley/internal/pkg/consts"
	"Parley/internal/pkg/minio"
	pkgmongo "Parley/internal/pkg/mongo"
	"Parley/internal/pkg/redis"
	"Parley/internal/pkg/util"
	"Parley/internal/repository"
	"context"
	"strconv"

	"github.com/jinzhu/copier"
)

type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, userID uint64, createDTO *dto.CreateWorkspaceDTO) (*dto.WorkspaceDTO, error)
	GetWorkspaces(ctx context.Context, userID uint64) ([]*dto.WorkspaceDTO, error)
	GetWorkspaceInfo(ctx context.Context, userID, workspaceID uint64) (*dto.WorkspaceDTO, error)
	RenameWorkspace(ctx context.Context, userID, workspaceID uint64, name string) error
	DeleteWorkspace(ctx context.Context, userID, workspaceID uint64) error
	ResetJoinCode(ctx context.Context, userID, workspaceID uint64) (string, error)
	JoinWorkspace(ctx context.Context, userID, workspaceID uint64, joinCode string) (*dto.MemberDTO, error)
	GetMembers(ctx context.Context, userID, workspaceID uint64) ([]*dto.MemberDTO, error)
	GetCurrentMember(ctx context.Context, userID, workspaceID uint64) (*dto.MemberDTO, error)
	UpdateMemberRole(ctx context.Context, userID, memberID uint64, role string) error
	RemoveMember(ctx context.Context, userID, memberID uint64) error
}

type WorkspaceServiceImpl struct {
	workspaceRepo repository.WorkspaceRepo
	memberRepo    repository.MemberRepo
	messageRepo   pkgmongo.MessageRepo
}

func NewWorkspaceService(workspaceRepo repository.WorkspaceRepo, memberRepo repository.MemberRepo, messageRepo pkgmongo.MessageRepo) WorkspaceService {
	return &WorkspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		messageRepo:   messageRepo,
	}
}

func (s *WorkspaceServiceImpl) CreateWorkspace(ctx context.Context, userID uint64, createDTO *dto.CreateWorkspaceDTO) (*dto.WorkspaceDTO, error) {
	workspace := &model.Workspace{
		Name:     createDTO.Name,
		UserID:   userID,
		JoinCode: util.RandomJoinCode(consts.JoinCodeLength),
	}

	if err := s.workspaceRepo.CreateWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	return s.toWorkspaceDTO(workspace, true), nil
}

func (s *WorkspaceServiceImpl) GetWorkspaces(ctx context.Context, userID uint64) ([]*dto.WorkspaceDTO, error) {
	workspaces, err := s.workspaceRepo.GetWorkspacesByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.WorkspaceDTO, 0, len(workspaces))
	for _, workspace := range workspaces {
		result = append(result, s.toWorkspaceDTO(workspace, false))
	}
	return result, nil
}

// GetWorkspaceInfo 查询工作区信息，加入码只回给管理员
func (s *WorkspaceServiceImpl) GetWorkspaceInfo(ctx context.Context, userID, workspaceID uint64) (*dto.WorkspaceDTO, error) {
	member, err := s.requireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetWorkspaceById(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return s.toWorkspaceDTO(workspace, member.Role == consts.RoleAdmin), nil
}

func (s *WorkspaceServiceImpl) RenameWorkspace(ctx context.Context, userID, workspaceID uint64, name string) error {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return err
	}
	return s.workspaceRepo.UpdateWorkspaceName(ctx, workspaceID, name)
}

func (s *WorkspaceServiceImpl) DeleteWorkspace(ctx context.Context, userID, workspaceID uint64) error {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return err
	}

	// 级联删除工作区内全部消息，最后清理它们引用的图片
	images, err := s.messageRepo.DeleteByWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if err = s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	for _, image := range images {
		_ = minio.DeleteFile(ctx, minio.MainBucket, image)
	}
	_ = redis.Delete(ctx, consts.WorkspaceJoinCodeKey+strconv.FormatUint(workspaceID, 10))
	return nil
}

// ResetJoinCode 重新生成加入码，旧码立即失效
func (s *WorkspaceServiceImpl) ResetJoinCode(ctx context.Context, userID, workspaceID uint64) (string, error) {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return "", err
	}

	joinCode := util.RandomJoinCode(consts.JoinCodeLength)
	if err := s.workspaceRepo.UpdateJoinCode(ctx, workspaceID, joinCode); err != nil {
		return "", err
	}
	_ = redis.Delete(ctx, consts.WorkspaceJoinCodeKey+strconv.FormatUint(workspaceID, 10))
	return joinCode, nil
}

func (s *WorkspaceServiceImpl) JoinWorkspace(ctx context.Context, userID, workspaceID uint64, joinCode string) (*dto.MemberDTO, error) {
	workspace, err := s.workspaceRepo.GetWorkspaceById(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}
	if workspace.JoinCode != joinCode {
		return nil, ErrJoinCodeIncorrect
	}

	existing, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberExist
	}

	member := &model.Member{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        consts.RoleMember,
	}
	if err = s.memberRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	created, err := s.memberRepo.GetMemberById(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	return s.toMemberDTO(created), nil
}

func (s *WorkspaceServiceImpl) GetMembers(ctx context.Context, userID, workspaceID uint64) ([]*dto.MemberDTO, error) {
	if _, err := s.requireMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.GetMembersByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MemberDTO, 0, len(members))
	for _, member := range members {
		result = append(result, s.toMemberDTO(member))
	}
	return result, nil
}

func (s *WorkspaceServiceImpl) GetCurrentMember(ctx context.Context, userID, workspaceID uint64) (*dto.MemberDTO, error) {
	member, err := s.requireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	return s.toMemberDTO(member), nil
}

func (s *WorkspaceServiceImpl) UpdateMemberRole(ctx context.Context, userID, memberID uint64, role string) error {
	target, err := s.memberRepo.GetMemberById(ctx, memberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}

	operator, err := s.requireAdmin(ctx, userID, target.WorkspaceID)
	if err != nil {
		return err
	}
	if operator.ID == target.ID {
		return ErrAdminSelfDemote
	}

	return s.memberRepo.UpdateMemberRole(ctx, memberID, role)
}

// RemoveMember 管理员移除成员，或成员自己退出工作区
func (s *WorkspaceServiceImpl) RemoveMember(ctx context.Context, userID, memberID uint64) error {
	target, err := s.memberRepo.GetMemberById(ctx, memberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}

	operator, err := s.requireMember(ctx, userID, target.WorkspaceID)
	if err != nil {
		return err
	}

	if operator.ID == target.ID {
		if operator.Role == consts.RoleAdmin {
			return ErrAdminSelfLeave
		}
		return s.memberRepo.DeleteMember(ctx, memberID)
	}

	if operator.Role != consts.RoleAdmin {
		return UnauthorizedError
	}
	return s.memberRepo.DeleteMember(ctx, memberID)
}

func (s *WorkspaceServiceImpl) requireMember(ctx context.Context, userID, workspaceID uint64) (*model.Member, error) {
	member, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *WorkspaceServiceImpl) requireAdmin(ctx context.Context, userID, workspaceID uint64) (*model.Member, error) {
	member, err := s.requireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if member.Role != consts.RoleAdmin {
		return nil, UnauthorizedError
	}
	return member, nil
}

func (s *WorkspaceServiceImpl) toWorkspaceDTO(workspace *model.Workspace, withJoinCode bool) *dto.WorkspaceDTO {
	workspaceDTO := &dto.WorkspaceDTO{}
	_ = copier.Copy(workspaceDTO, workspace)
	if !withJoinCode {
		workspaceDTO.JoinCode = ""
	}
	return workspaceDTO
}

func (s *WorkspaceServiceImpl) toMemberDTO(member *model.Member) *dto.MemberDTO {
	memberDTO := &dto.MemberDTO{
		ID:          member.ID,
		UserID:      member.UserID,
		WorkspaceID: member.WorkspaceID,
		Role:        member.Role,
		Name:        member.User.Name,
		Image:       member.User.Image,
	}
	return memberDTO
}
