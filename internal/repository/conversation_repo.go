package repository

import (
	"Parley/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ConversationRepo interface {
	GetConversationById(ctx context.Context, id uint64) (*model.Conversation, error)
	GetConversationByMemberKey(ctx context.Context, workspaceID uint64, memberKey string) (*model.Conversation, error)
	CreateConversation(ctx context.Context, conversation *model.Conversation) error
}

type ConversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &ConversationRepoImpl{db: db}
}

func (s *ConversationRepoImpl) GetConversationById(ctx context.Context, id uint64) (*model.Conversation, error) {
	conversation := &model.Conversation{}
	result := s.db.WithContext(ctx).First(conversation, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return conversation, nil
}

func (s *ConversationRepoImpl) GetConversationByMemberKey(ctx context.Context, workspaceID uint64, memberKey string) (*model.Conversation, error) {
	conversation := &model.Conversation{}
	result := s.db.WithContext(ctx).
		Where("workspace_id = ? AND member_key = ?", workspaceID, memberKey).
		First(conversation)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return conversation, nil
}

func (s *ConversationRepoImpl) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	return s.db.WithContext(ctx).Create(conversation).Error
}
