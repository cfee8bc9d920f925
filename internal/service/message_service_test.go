package service

import (
	"Parley/internal/api/dto"
	"Parley/internal/model"
	pkgmongo "Parley/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Save(ctx context.Context, msg *pkgmongo.Message) (primitive.ObjectID, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*pkgmongo.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pkgmongo.Message), args.Error(1)
}

func (m *mockMessageRepo) GetPage(ctx context.Context, filter pkgmongo.ScopeFilter, cursor string, pageSize int) (*pkgmongo.MessagePage, error) {
	args := m.Called(ctx, filter, cursor, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pkgmongo.MessagePage), args.Error(1)
}

func (m *mockMessageRepo) UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error {
	return m.Called(ctx, id, body).Error(0)
}

func (m *mockMessageRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMessageRepo) DeleteByChannel(ctx context.Context, channelID uint64) ([]string, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockMessageRepo) DeleteByWorkspace(ctx context.Context, workspaceID uint64) ([]string, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockMessageRepo) ToggleReaction(ctx context.Context, id primitive.ObjectID, value string, memberID uint64) error {
	return m.Called(ctx, id, value, memberID).Error(0)
}

func (m *mockMessageRepo) GetReplyBrief(ctx context.Context, parentID primitive.ObjectID) (*pkgmongo.ReplyBrief, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pkgmongo.ReplyBrief), args.Error(1)
}

func (m *mockMessageRepo) HasImageRef(ctx context.Context, image string) (bool, error) {
	args := m.Called(ctx, image)
	return args.Bool(0), args.Error(1)
}

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) GetMemberById(ctx context.Context, id uint64) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) GetMemberByUserAndWorkspace(ctx context.Context, userID, workspaceID uint64) (*model.Member, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) GetMembersByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Member, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Member), args.Error(1)
}

func (m *mockMemberRepo) CreateMember(ctx context.Context, member *model.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) UpdateMemberRole(ctx context.Context, id uint64, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockMemberRepo) DeleteMember(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockChannelRepo struct {
	mock.Mock
}

func (m *mockChannelRepo) GetChannelById(ctx context.Context, id uint64) (*model.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Channel), args.Error(1)
}

func (m *mockChannelRepo) GetChannelsByWorkspace(ctx context.Context, workspaceID uint64) ([]*model.Channel, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Channel), args.Error(1)
}

func (m *mockChannelRepo) CreateChannel(ctx context.Context, channel *model.Channel) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *mockChannelRepo) UpdateChannelName(ctx context.Context, id uint64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockChannelRepo) DeleteChannel(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) GetConversationById(ctx context.Context, id uint64) (*model.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) GetConversationByMemberKey(ctx context.Context, workspaceID uint64, memberKey string) (*model.Conversation, error) {
	args := m.Called(ctx, workspaceID, memberKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *mockConversationRepo) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	return m.Called(ctx, conversation).Error(0)
}

func newMessageServiceForTest() (*mockMessageRepo, *mockMemberRepo, *mockChannelRepo, *mockConversationRepo, MessageService) {
	messageRepo := new(mockMessageRepo)
	memberRepo := new(mockMemberRepo)
	channelRepo := new(mockChannelRepo)
	conversationRepo := new(mockConversationRepo)
	svc := NewMessageService(messageRepo, memberRepo, channelRepo, conversationRepo)
	return messageRepo, memberRepo, channelRepo, conversationRepo, svc
}

func memberFixture(id uint64) *model.Member {
	return &model.Member{
		ID:          id,
		UserID:      100 + id,
		WorkspaceID: 1,
		Role:        "member",
		User:        model.User{Name: "raqtpie"},
	}
}

func TestCreateMessageInChannel(t *testing.T) {
	messageRepo, memberRepo, channelRepo, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	member := memberFixture(7)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, member.UserID, uint64(1)).Return(member, nil)
	channelRepo.On("GetChannelById", ctx, uint64(10)).Return(&model.Channel{ID: 10, WorkspaceID: 1}, nil)

	savedID := primitive.NewObjectID()
	messageRepo.On("Save", ctx, mock.MatchedBy(func(msg *pkgmongo.Message) bool {
		return msg.ChannelID == 10 && msg.MemberID == 7 && msg.MemberName == "raqtpie" && msg.Body == "hello"
	})).Return(savedID, nil)

	result, err := svc.CreateMessage(ctx, member.UserID, &dto.CreateMessageDTO{
		WorkspaceID: 1,
		ChannelID:   10,
		Body:        "  hello  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, savedID.Hex(), result.ID)
	assert.Equal(t, "hello", result.Body)
	messageRepo.AssertExpectations(t)
}

func TestCreateMessageEmpty(t *testing.T) {
	_, _, _, _, svc := newMessageServiceForTest()

	_, err := svc.CreateMessage(context.Background(), 1, &dto.CreateMessageDTO{
		WorkspaceID: 1,
		ChannelID:   10,
		Body:        "   ",
	})

	assert.ErrorIs(t, err, ErrMessageEmpty)
}

func TestCreateMessageWithoutScope(t *testing.T) {
	_, memberRepo, _, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	member := memberFixture(7)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, member.UserID, uint64(1)).Return(member, nil)

	_, err := svc.CreateMessage(ctx, member.UserID, &dto.CreateMessageDTO{
		WorkspaceID: 1,
		Body:        "hello",
	})

	assert.ErrorIs(t, err, ErrScopeInvalid)
}

func TestUpdateMessageByNonAuthor(t *testing.T) {
	messageRepo, memberRepo, _, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	msgID := primitive.NewObjectID()
	messageRepo.On("GetByID", ctx, msgID).Return(&pkgmongo.Message{
		ID:          msgID,
		WorkspaceID: 1,
		MemberID:    99,
		Body:        "original",
		CreatedAt:   time.Now(),
	}, nil)

	member := memberFixture(7)
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, member.UserID, uint64(1)).Return(member, nil)

	err := svc.UpdateMessage(ctx, member.UserID, msgID.Hex(), "edited")

	assert.ErrorIs(t, err, UnauthorizedError)
	messageRepo.AssertNotCalled(t, "UpdateBody", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteMessageAsAdmin(t *testing.T) {
	messageRepo, memberRepo, _, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	msgID := primitive.NewObjectID()
	messageRepo.On("GetByID", ctx, msgID).Return(&pkgmongo.Message{
		ID:          msgID,
		WorkspaceID: 1,
		MemberID:    99,
		CreatedAt:   time.Now(),
	}, nil)
	messageRepo.On("Delete", ctx, msgID).Return(nil)

	admin := memberFixture(7)
	admin.Role = "admin"
	memberRepo.On("GetMemberByUserAndWorkspace", ctx, admin.UserID, uint64(1)).Return(admin, nil)

	err := svc.DeleteMessage(ctx, admin.UserID, msgID.Hex())

	assert.NoError(t, err)
	messageRepo.AssertCalled(t, "Delete", ctx, msgID)
}

func TestToggleReactionMissingMessage(t *testing.T) {
	messageRepo, _, _, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	msgID := primitive.NewObjectID()
	messageRepo.On("GetByID", ctx, msgID).Return(nil, mongodriver.ErrNoDocuments)

	err := svc.ToggleReaction(ctx, 1, msgID.Hex(), "👍")

	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestGetMessagesRequiresMembership(t *testing.T) {
	_, memberRepo, _, _, svc := newMessageServiceForTest()
	ctx := context.Background()

	memberRepo.On("GetMemberByUserAndWorkspace", ctx, uint64(42), uint64(1)).Return(nil, nil)

	_, err := svc.GetMessages(ctx, 42, &MessageQuery{WorkspaceID: 1, ChannelID: 10})

	assert.ErrorIs(t, err, ErrMemberNotFound)
}
