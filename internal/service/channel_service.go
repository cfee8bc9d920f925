package service

import (
	"Parley/internal/api/dto"
	"Parley/internal/model"
	"Parley/internal/pkg/consts"
	"Parley/internal/pkg/minio"
	pkgmongo "Parley/internal/pkg/mongo"
	"Parley/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type ChannelService interface {
	CreateChannel(ctx context.Context, userID uint64, createDTO *dto.CreateChannelDTO) (*dto.ChannelDTO, error)
	GetChannels(ctx context.Context, userID, workspaceID uint64) ([]*dto.ChannelDTO, error)
	GetChannelInfo(ctx context.Context, userID, channelID uint64) (*dto.ChannelDTO, error)
	RenameChannel(ctx context.Context, userID, channelID uint64, name string) error
	DeleteChannel(ctx context.Context, userID, channelID uint64) error
}

type ChannelServiceImpl struct {
	channelRepo repository.ChannelRepo
	memberRepo  repository.MemberRepo
	messageRepo pkgmongo.MessageRepo
}

func NewChannelService(channelRepo repository.ChannelRepo, memberRepo repository.MemberRepo, messageRepo pkgmongo.MessageRepo) ChannelService {
	return &ChannelServiceImpl{
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		messageRepo: messageRepo,
	}
}

func (s *ChannelServiceImpl) CreateChannel(ctx context.Context, userID uint64, createDTO *dto.CreateChannelDTO) (*dto.ChannelDTO, error) {
	if err := s.requireAdmin(ctx, userID, createDTO.WorkspaceID); err != nil {
		return nil, err
	}

	channel := &model.Channel{
		WorkspaceID: createDTO.WorkspaceID,
		Name:        createDTO.Name,
	}
	if err := s.channelRepo.CreateChannel(ctx, channel); err != nil {
		return nil, err
	}

	channelDTO := &dto.ChannelDTO{}
	_ = copier.Copy(channelDTO, channel)
	return channelDTO, nil
}

func (s *ChannelServiceImpl) GetChannels(ctx context.Context, userID, workspaceID uint64) ([]*dto.ChannelDTO, error) {
	if err := s.requireMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	channels, err := s.channelRepo.GetChannelsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChannelDTO, 0, len(channels))
	for _, channel := range channels {
		channelDTO := &dto.ChannelDTO{}
		_ = copier.Copy(channelDTO, channel)
		result = append(result, channelDTO)
	}
	return result, nil
}

func (s *ChannelServiceImpl) GetChannelInfo(ctx context.Context, userID, channelID uint64) (*dto.ChannelDTO, error) {
	channel, err := s.channelRepo.GetChannelById(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	if err = s.requireMember(ctx, userID, channel.WorkspaceID); err != nil {
		return nil, err
	}

	channelDTO := &dto.ChannelDTO{}
	_ = copier.Copy(channelDTO, channel)
	return channelDTO, nil
}

func (s *ChannelServiceImpl) RenameChannel(ctx context.Context, userID, channelID uint64, name string) error {
	channel, err := s.channelRepo.GetChannelById(ctx, channelID)
	if err != nil {
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}
	if err = s.requireAdmin(ctx, userID, channel.WorkspaceID); err != nil {
		return err
	}
	return s.channelRepo.UpdateChannelName(ctx, channelID, name)
}

func (s *ChannelServiceImpl) DeleteChannel(ctx context.Context, userID, channelID uint64) error {
	channel, err := s.channelRepo.GetChannelById(ctx, channelID)
	if err != nil {
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}
	if err = s.requireAdmin(ctx, userID, channel.WorkspaceID); err != nil {
		return err
	}

	// 级联删除频道内消息与线程回复，最后清理它们引用的图片
	images, err := s.messageRepo.DeleteByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if err = s.channelRepo.DeleteChannel(ctx, channelID); err != nil {
		return err
	}
	for _, image := range images {
		_ = minio.DeleteFile(ctx, minio.MainBucket, image)
	}
	return nil
}

func (s *ChannelServiceImpl) requireMember(ctx context.Context, userID, workspaceID uint64) error {
	member, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return nil
}

func (s *ChannelServiceImpl) requireAdmin(ctx context.Context, userID, workspaceID uint64) error {
	member, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Role != consts.RoleAdmin {
		return UnauthorizedError
	}
	return nil
}
