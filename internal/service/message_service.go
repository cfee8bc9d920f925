package service

import (
	"Parley/internal/api/config"
	"Parley/internal/api/dto"
	"Parley/internal/model"
	"Parley/internal/pkg/consts"
	"Parley/internal/pkg/minio"
	pkgmongo "Parley/internal/pkg/mongo"
	"Parley/internal/pkg/redis"
	"Parley/internal/repository"
	"context"
	"strings"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageQuery 历史消息查询参数，三种范围互斥
type MessageQuery struct {
	WorkspaceID     uint64
	ChannelID       uint64
	ConversationID  uint64
	ParentMessageID string
	Cursor          string
}

type MessageService interface {
	GetMessages(ctx context.Context, userID uint64, query *MessageQuery) (*dto.MessagePageDTO, error)
	GetMessageInfo(ctx context.Context, userID uint64, messageID string) (*dto.MessageDTO, error)
	CreateMessage(ctx context.Context, userID uint64, createDTO *dto.CreateMessageDTO) (*dto.MessageDTO, error)
	UpdateMessage(ctx context.Context, userID uint64, messageID, body string) error
	DeleteMessage(ctx context.Context, userID uint64, messageID string) error
	ToggleReaction(ctx context.Context, userID uint64, messageID, value string) error
}

type MessageServiceImpl struct {
	messageRepo      pkgmongo.MessageRepo
	memberRepo       repository.MemberRepo
	channelRepo      repository.ChannelRepo
	conversationRepo repository.ConversationRepo
}

func NewMessageService(
	messageRepo pkgmongo.MessageRepo,
	memberRepo repository.MemberRepo,
	channelRepo repository.ChannelRepo,
	conversationRepo repository.ConversationRepo,
) MessageService {
	return &MessageServiceImpl{
		messageRepo:      messageRepo,
		memberRepo:       memberRepo,
		channelRepo:      channelRepo,
		conversationRepo: conversationRepo,
	}
}

// GetMessages 按范围分页查询历史消息，最新在前
// 频道与会话范围的消息会带上线程回复摘要
func (s *MessageServiceImpl) GetMessages(ctx context.Context, userID uint64, query *MessageQuery) (*dto.MessagePageDTO, error) {
	if _, err := s.requireMember(ctx, userID, query.WorkspaceID); err != nil {
		return nil, err
	}

	filter, err := s.resolveScope(ctx, query)
	if err != nil {
		return nil, err
	}

	pageSize := config.Cfg.Message.PageSize
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}

	page, err := s.messageRepo.GetPage(ctx, *filter, query.Cursor, pageSize)
	if err != nil {
		return nil, err
	}

	withReplies := query.ParentMessageID == ""
	messages := make([]*dto.MessageDTO, 0, len(page.Messages))
	for _, msg := range page.Messages {
		messageDTO := s.toMessageDTO(msg)
		if withReplies {
			if err = s.attachReplyBrief(ctx, msg.ID, messageDTO); err != nil {
				return nil, err
			}
		}
		messages = append(messages, messageDTO)
	}

	return &dto.MessagePageDTO{
		Messages:   messages,
		NextCursor: page.NextCursor,
		IsLast:     page.IsLast,
	}, nil
}

func (s *MessageServiceImpl) GetMessageInfo(ctx context.Context, userID uint64, messageID string) (*dto.MessageDTO, error) {
	msg, err := s.getMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err = s.requireMember(ctx, userID, msg.WorkspaceID); err != nil {
		return nil, err
	}

	messageDTO := s.toMessageDTO(msg)
	if msg.ParentMessageID.IsZero() {
		if err = s.attachReplyBrief(ctx, msg.ID, messageDTO); err != nil {
			return nil, err
		}
	}
	return messageDTO, nil
}

func (s *MessageServiceImpl) CreateMessage(ctx context.Context, userID uint64, createDTO *dto.CreateMessageDTO) (*dto.MessageDTO, error) {
	body := strings.TrimSpace(createDTO.Body)
	if body == "" && createDTO.Image == "" {
		return nil, ErrMessageEmpty
	}

	member, err := s.requireMember(ctx, userID, createDTO.WorkspaceID)
	if err != nil {
		return nil, err
	}

	msg := &pkgmongo.Message{
		WorkspaceID: createDTO.WorkspaceID,
		MemberID:    member.ID,
		MemberName:  member.User.Name,
		Body:        body,
		CreatedAt:   time.Now(),
	}

	switch {
	case createDTO.ParentMessageID != "":
		parent, err := s.getMessage(ctx, createDTO.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if parent.WorkspaceID != createDTO.WorkspaceID {
			return nil, ErrScopeInvalid
		}
		msg.ParentMessageID = parent.ID
	case createDTO.ChannelID != 0:
		channel, err := s.channelRepo.GetChannelById(ctx, createDTO.ChannelID)
		if err != nil {
			return nil, err
		}
		if channel == nil || channel.WorkspaceID != createDTO.WorkspaceID {
			return nil, ErrChannelNotFound
		}
		msg.ChannelID = createDTO.ChannelID
	case createDTO.ConversationID != 0:
		conversation, err := s.conversationRepo.GetConversationById(ctx, createDTO.ConversationID)
		if err != nil {
			return nil, err
		}
		if conversation == nil || conversation.WorkspaceID != createDTO.WorkspaceID {
			return nil, ErrConversationNotFound
		}
		if member.ID != conversation.MemberOneID && member.ID != conversation.MemberTwoID {
			return nil, UnauthorizedError
		}
		msg.ConversationID = createDTO.ConversationID
	default:
		return nil, ErrScopeInvalid
	}

	if createDTO.Image != "" {
		if err = s.promoteImage(ctx, createDTO.Image); err != nil {
			return nil, err
		}
		msg.Image = createDTO.Image
	}

	id, err := s.messageRepo.Save(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	return s.toMessageDTO(msg), nil
}

func (s *MessageServiceImpl) UpdateMessage(ctx context.Context, userID uint64, messageID, body string) error {
	msg, err := s.getMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err = s.requireAuthor(ctx, userID, msg); err != nil {
		return err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return ErrMessageEmpty
	}
	return s.messageRepo.UpdateBody(ctx, msg.ID, body)
}

// DeleteMessage 作者本人或工作区管理员可删
func (s *MessageServiceImpl) DeleteMessage(ctx context.Context, userID uint64, messageID string) error {
	msg, err := s.getMessage(ctx, messageID)
	if err != nil {
		return err
	}

	member, err := s.requireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return err
	}
	if member.ID != msg.MemberID && member.Role != consts.RoleAdmin {
		return UnauthorizedError
	}

	if err = s.messageRepo.Delete(ctx, msg.ID); err != nil {
		return err
	}
	if msg.Image != "" {
		_ = minio.DeleteFile(ctx, minio.MainBucket, msg.Image)
	}
	return nil
}

func (s *MessageServiceImpl) ToggleReaction(ctx context.Context, userID uint64, messageID, value string) error {
	msg, err := s.getMessage(ctx, messageID)
	if err != nil {
		return err
	}

	member, err := s.requireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return err
	}

	return s.messageRepo.ToggleReaction(ctx, msg.ID, value, member.ID)
}

func (s *MessageServiceImpl) resolveScope(ctx context.Context, query *MessageQuery) (*pkgmongo.ScopeFilter, error) {
	switch {
	case query.ParentMessageID != "":
		parent, err := s.getMessage(ctx, query.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if parent.WorkspaceID != query.WorkspaceID {
			return nil, ErrScopeInvalid
		}
		return &pkgmongo.ScopeFilter{ParentMessageID: parent.ID}, nil
	case query.ChannelID != 0:
		channel, err := s.channelRepo.GetChannelById(ctx, query.ChannelID)
		if err != nil {
			return nil, err
		}
		if channel == nil || channel.WorkspaceID != query.WorkspaceID {
			return nil, ErrChannelNotFound
		}
		return &pkgmongo.ScopeFilter{ChannelID: query.ChannelID}, nil
	case query.ConversationID != 0:
		conversation, err := s.conversationRepo.GetConversationById(ctx, query.ConversationID)
		if err != nil {
			return nil, err
		}
		if conversation == nil || conversation.WorkspaceID != query.WorkspaceID {
			return nil, ErrConversationNotFound
		}
		return &pkgmongo.ScopeFilter{ConversationID: query.ConversationID}, nil
	default:
		return nil, ErrScopeInvalid
	}
}

func (s *MessageServiceImpl) getMessage(ctx context.Context, messageID string) (*pkgmongo.Message, error) {
	id, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		if err == mongodriver.ErrNoDocuments {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (s *MessageServiceImpl) requireMember(ctx context.Context, userID, workspaceID uint64) (*model.Member, error) {
	member, err := s.memberRepo.GetMemberByUserAndWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *MessageServiceImpl) requireAuthor(ctx context.Context, userID uint64, msg *pkgmongo.Message) error {
	member, err := s.requireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return err
	}
	if member.ID != msg.MemberID {
		return UnauthorizedError
	}
	return nil
}

// promoteImage 校验临时媒体登记并把对象从临时桶转入主桶
func (s *MessageServiceImpl) promoteImage(ctx context.Context, fileKey string) error {
	allMedia, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		return err
	}
	if _, ok := allMedia[fileKey]; !ok {
		return ErrFileNotExist
	}

	if err = minio.CopyToMain(ctx, fileKey); err != nil {
		return err
	}
	_ = redis.HDel(ctx, consts.MediaTempKey, fileKey)
	return nil
}

func (s *MessageServiceImpl) attachReplyBrief(ctx context.Context, id primitive.ObjectID, messageDTO *dto.MessageDTO) error {
	brief, err := s.messageRepo.GetReplyBrief(ctx, id)
	if err != nil {
		return err
	}
	if brief.Count == 0 {
		return nil
	}

	ts := brief.LastTimestamp
	replies := &dto.ReplyBriefDTO{
		Count:         brief.Count,
		LastName:      brief.LastName,
		LastTimestamp: &ts,
	}
	if member, err := s.memberRepo.GetMemberById(ctx, brief.LastMemberID); err == nil && member != nil {
		replies.LastImage = member.User.Image
	}
	messageDTO.Replies = replies
	return nil
}

func (s *MessageServiceImpl) toMessageDTO(msg *pkgmongo.Message) *dto.MessageDTO {
	messageDTO := &dto.MessageDTO{
		ID:             msg.ID.Hex(),
		WorkspaceID:    msg.WorkspaceID,
		MemberID:       msg.MemberID,
		MemberName:     msg.MemberName,
		Body:           msg.Body,
		ChannelID:      msg.ChannelID,
		ConversationID: msg.ConversationID,
		Reactions:      make([]dto.ReactionDTO, 0, len(msg.Reactions)),
		CreatedAt:      msg.CreatedAt,
		UpdatedAt:      msg.UpdatedAt,
	}
	if !msg.ParentMessageID.IsZero() {
		messageDTO.ParentMessageID = msg.ParentMessageID.Hex()
	}
	if msg.Image != "" {
		messageDTO.Image = minio.GetPublicURL(msg.Image)
	}
	for _, reaction := range msg.Reactions {
		messageDTO.Reactions = append(messageDTO.Reactions, dto.ReactionDTO{
			Value:     reaction.Value,
			MemberIDs: reaction.MemberIDs,
		})
	}
	return messageDTO
}
