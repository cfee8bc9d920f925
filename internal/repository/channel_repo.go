package repository

import (
	"Parley/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ChannelRepo interface {
	GetChannelById(ctx context.Context, id uint64) (*model.Channel, error)
	GetChannelsByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Channel, error)
	CreateChannel(ctx context.Context, channel *model.Channel) error
	UpdateChannelName(ctx context.Context, id uint64, name string) error
	DeleteChannel(ctx context.Context, id uint64) error
}

type ChannelRepoImpl struct {
	db *gorm.DB
}

func NewChannelRepo(db *gorm.DB) ChannelRepo {
	return &ChannelRepoImpl{db: db}
}

func (s *ChannelRepoImpl) GetChannelById(ctx context.Context, id uint64) (*model.Channel, error) {
	channel := &model.Channel{}
	result := s.db.WithContext(ctx).First(channel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return channel, nil
}

func (s *ChannelRepoImpl) GetChannelsByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Channel, error) {
	channels := make([]*model.Channel, 0)
	result := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&channels)
	if result.Error != nil {
		return nil, result.Error
	}
	return channels, nil
}

func (s *ChannelRepoImpl) CreateChannel(ctx context.Context, channel *model.Channel) error {
	return s.db.WithContext(ctx).Create(channel).Error
}

func (s *ChannelRepoImpl) UpdateChannelName(ctx context.Context, id uint64, name string) error {
	return s.db.WithContext(ctx).
		Model(&model.Channel{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (s *ChannelRepoImpl) DeleteChannel(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Channel{}, id).Error
}
