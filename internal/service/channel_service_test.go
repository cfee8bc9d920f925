package service

import (
	"Parley/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newChannelServiceForTest() (*mockChannelRepo, *mockMemberRepo, *mockMessageRepo, ChannelService) {
	channelRepo := new(mockChannelRepo)
	memberRepo := new(mockMemberRepo)
	messageRepo := new(mockMessageRepo)
	svc := NewChannelService(channelRepo, memberRepo, messageRepo)
	return channelRepo, memberRepo, messageRepo, svc
}

// 删除频道时级联清理频道内的消息文档
func TestDeleteChannelCascadesMessages(t *testing.T) {
	channelRepo, memberRepo, messageRepo, svc := newChannelServiceForTest()
	ctx := context.Background()

	admin := memberFixture(7)
	admin.Role = "admin"
	channelRepo.On("GetChannelById", ctx, uint64(5)).Return(&model.Channel{ID: 5, WorkspaceID: 1}, nil)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, admin.UserID, uint64(1)).Return(admin, nil)
	messageRepo.On("DeleteByChannel", ctx, uint64(5)).Return(nil, nil)
	channelRepo.On("DeleteChannel", ctx, uint64(5)).Return(nil)

	err := svc.DeleteChannel(ctx, admin.UserID, 5)

	assert.NoError(t, err)
	messageRepo.AssertCalled(t, "DeleteByChannel", ctx, uint64(5))
	channelRepo.AssertCalled(t, "DeleteChannel", ctx, uint64(5))
}

// 消息级联失败时频道行保留，便于重试
func TestDeleteChannelCascadeFailureKeepsChannel(t *testing.T) {
	channelRepo, memberRepo, messageRepo, svc := newChannelServiceForTest()
	ctx := context.Background()

	admin := memberFixture(7)
	admin.Role = "admin"
	channelRepo.On("GetChannelById", ctx, uint64(5)).Return(&model.Channel{ID: 5, WorkspaceID: 1}, nil)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, admin.UserID, uint64(1)).Return(admin, nil)
	messageRepo.On("DeleteByChannel", ctx, uint64(5)).Return(nil, errors.New("mongo down"))

	err := svc.DeleteChannel(ctx, admin.UserID, 5)

	assert.Error(t, err)
	channelRepo.AssertNotCalled(t, "DeleteChannel", mock.Anything, mock.Anything)
}

func TestDeleteChannelRequiresAdmin(t *testing.T) {
	channelRepo, memberRepo, messageRepo, svc := newChannelServiceForTest()
	ctx := context.Background()

	member := memberFixture(7)
	channelRepo.On("GetChannelById", ctx, uint64(5)).Return(&model.Channel{ID: 5, WorkspaceID: 1}, nil)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, member.UserID, uint64(1)).Return(member, nil)

	err := svc.DeleteChannel(ctx, member.UserID, 5)

	assert.ErrorIs(t, err, UnauthorizedError)
	messageRepo.AssertNotCalled(t, "DeleteByChannel", mock.Anything, mock.Anything)
}
