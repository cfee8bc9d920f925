package repository

import (
	"Parley/internal/model"
	"Parley/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

type WorkspaceRepo interface {
	GetWorkspaceById(ctx context.Context, id uint64) (*model.Workspace, error)
	GetWorkspacesByUserId(ctx context.Context, userID uint64) ([]*model.Workspace, error)
	CreateWorkspace(ctx context.Context, workspace *model.Workspace) error
	UpdateWorkspaceName(ctx context.Context, id uint64, name string) error
	UpdateJoinCode(ctx context.Context, id uint64, joinCode string) error
	DeleteWorkspace(ctx context.Context, id uint64) error
}

type WorkspaceRepoImpl struct {
	db *gorm.DB
}

func NewWorkspaceRepo(db *gorm.DB) WorkspaceRepo {
	return &WorkspaceRepoImpl{db: db}
}

func (s *WorkspaceRepoImpl) GetWorkspaceById(ctx context.Context, id uint64) (*model.Workspace, error) {
	workspace := &model.Workspace{}
	result := s.db.WithContext(ctx).First(workspace, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return workspace, nil
}

// GetWorkspacesByUserId 查询用户作为成员加入的全部工作区
func (s *WorkspaceRepoImpl) GetWorkspacesByUserId(ctx context.Context, userID uint64) ([]*model.Workspace, error) {
	workspaces := make([]*model.Workspace, 0)
	result := s.db.WithContext(ctx).
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Find(&workspaces)
	if result.Error != nil {
		return nil, result.Error
	}
	return workspaces, nil
}

// CreateWorkspace 创建工作区，同时让创建者以管理员身份入驻并建立默认频道
func (s *WorkspaceRepoImpl) CreateWorkspace(ctx context.Context, workspace *model.Workspace) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(workspace); result.Error != nil {
			return result.Error
		}

		member := &model.Member{
			UserID:      workspace.UserID,
			WorkspaceID: workspace.ID,
			Role:        consts.RoleAdmin,
		}
		if result := tx.Create(member); result.Error != nil {
			return result.Error
		}

		channel := &model.Channel{
			WorkspaceID: workspace.ID,
			Name:        "general",
		}
		if result := tx.Create(channel); result.Error != nil {
			return result.Error
		}

		return nil
	})
}

func (s *WorkspaceRepoImpl) UpdateWorkspaceName(ctx context.Context, id uint64, name string) error {
	return s.db.WithContext(ctx).
		Model(&model.Workspace{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (s *WorkspaceRepoImpl) UpdateJoinCode(ctx context.Context, id uint64, joinCode string) error {
	return s.db.WithContext(ctx).
		Model(&model.Workspace{}).
		Where("id = ?", id).
		Update("join_code", joinCode).Error
}

// DeleteWorkspace 删除工作区及其成员、频道、会话
func (s *WorkspaceRepoImpl) DeleteWorkspace(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("workspace_id = ?", id).Delete(&model.Member{}); result.Error != nil {
			return result.Error
		}
		if result := tx.Where("workspace_id = ?", id).Delete(&model.Channel{}); result.Error != nil {
			return result.Error
		}
		if result := tx.Where("workspace_id = ?", id).Delete(&model.Conversation{}); result.Error != nil {
			return result.Error
		}
		return tx.Delete(&model.Workspace{}, id).Error
	})
}
