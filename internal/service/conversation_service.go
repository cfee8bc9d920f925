package service

import (
	"Parley/internal/api/dto"
	"Parley/internal/model"
	"Parley/internal/pkg/consts"
	"Parley/internal/pkg/redis"
	"Parley/internal/pkg/util"
	"Parley/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

type ConversationService interface {
	GetOrCreateConversation(ctx context.Context, userID uint64, createDTO *dto.GetOrCreateConversationDTO) (*dto.ConversationDTO, error)
	GetConversationInfo(ctx context.Context, userID, conversationID uint64) (*dto.ConversationDTO, error)
}

type ConversationServiceImpl struct {
	conversationRepo repository.ConversationRepo
	memberRepo       repository.MemberRepo
}

func NewConversationService(conversationRepo repository.ConversationRepo, memberRepo repository.MemberRepo) ConversationService {
	return &ConversationServiceImpl{
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
	}
}

// GetOrCreateConversation 获取当前成员与目标成员的会话，不存在则创建
// 加分布式锁避免并发请求同时建出两条会话
func (s *ConversationServiceImpl) GetOrCreateConversation(ctx context.Context, userID uint64, createDTO *dto.GetOrCreateConversationDTO) (*dto.ConversationDTO, error) {
	self, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, createDTO.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if self == nil {
		return nil, ErrMemberNotFound
	}
	if self.ID == createDTO.MemberID {
		return nil, ErrConversationSelf
	}

	target, err := s.memberRepo.GetMemberById(ctx, createDTO.MemberID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.WorkspaceID != createDTO.WorkspaceID {
		return nil, ErrMemberNotFound
	}

	memberKey := util.ConversationMemberKey(self.ID, target.ID)

	conversation, err := s.conversationRepo.GetConversationByMemberKey(ctx, createDTO.WorkspaceID, memberKey)
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		return s.toConversationDTO(conversation), nil
	}

	lockKey := consts.ConversationCreateLock + memberKey
	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, lockKey, lockValue, time.Second*5, 3)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	// 拿到锁后再查一次，对手可能已经建好了
	conversation, err = s.conversationRepo.GetConversationByMemberKey(ctx, createDTO.WorkspaceID, memberKey)
	if err != nil {
		return nil, err
	}
	if conversation != nil {
		return s.toConversationDTO(conversation), nil
	}

	conversation = &model.Conversation{
		WorkspaceID: createDTO.WorkspaceID,
		MemberOneID: self.ID,
		MemberTwoID: target.ID,
		MemberKey:   memberKey,
	}
	if err = s.conversationRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}

	return s.toConversationDTO(conversation), nil
}

func (s *ConversationServiceImpl) GetConversationInfo(ctx context.Context, userID, conversationID uint64) (*dto.ConversationDTO, error) {
	conversation, err := s.conversationRepo.GetConversationById(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	member, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, conversation.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if member.ID != conversation.MemberOneID && member.ID != conversation.MemberTwoID {
		return nil, UnauthorizedError
	}

	return s.toConversationDTO(conversation), nil
}

func (s *ConversationServiceImpl) toConversationDTO(conversation *model.Conversation) *dto.ConversationDTO {
	return &dto.ConversationDTO{
		ID:          conversation.ID,
		WorkspaceID: conversation.WorkspaceID,
		MemberOneID: conversation.MemberOneID,
		MemberTwoID: conversation.MemberTwoID,
	}
}
