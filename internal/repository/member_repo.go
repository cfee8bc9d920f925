package repository

import (
	"Parley/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type MemberRepo interface {
	GetMemberById(ctx context.Context, id uint64) (*model.Member, error)
	GetMemberByUserAndWorkspace(ctx context.Context, userID, workspaceID uint64) (*model.Member, error)
	GetMembersByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Member, error)
	CreateMember(ctx context.Context, member *model.Member) error
	UpdateMemberRole(ctx context.Context, id uint64, role string) error
	DeleteMember(ctx context.Context, id uint64) error
}

type MemberRepoImpl struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepo {
	return &MemberRepoImpl{db: db}
}

func (s *MemberRepoImpl) GetMemberById(ctx context.Context, id uint64) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("User").
		First(member, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) GetMemberByUserAndWorkspace(ctx context.Context, userID, workspaceID uint64) (*model.Member, error) {
	member := &model.Member{}
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(member)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *MemberRepoImpl) GetMembersByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Member, error) {
	members := make([]*model.Member, 0)
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}

func (s *MemberRepoImpl) CreateMember(ctx context.Context, member *model.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *MemberRepoImpl) UpdateMemberRole(ctx context.Context, id uint64, role string) error {
	return s.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (s *MemberRepoImpl) DeleteMember(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Member{}, id).Error
}
