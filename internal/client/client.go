package client

import (
	"Parley/internal/api/dto"
	"Parley/internal/feed"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// ApiBackend 通过 REST 接口实现 feed.Backend
// 供命令行端或集成测试驱动同步引擎使用
type ApiBackend struct {
	httpClient *resty.Client
}

func NewApiBackend(baseURL, token string) *ApiBackend {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")

	return &ApiBackend{httpClient: httpClient}
}

// envelope 服务端统一响应体，Data 延迟解码
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *ApiBackend) FetchPage(ctx context.Context, scope feed.Scope, cursor string) (*feed.Page, error) {
	params := map[string]string{
		"workspace_id": strconv.FormatUint(scope.WorkspaceID, 10),
	}
	switch scope.Kind {
	case feed.ScopeChannel:
		params["channel_id"] = strconv.FormatUint(scope.ChannelID, 10)
	case feed.ScopeConversation:
		params["conversation_id"] = strconv.FormatUint(scope.ConversationID, 10)
	case feed.ScopeThread:
		params["parent_message_id"] = scope.ParentMessageID
	}
	if cursor != "" {
		params["cursor"] = cursor
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/message")
	if err != nil {
		return nil, err
	}

	var pageDTO dto.MessagePageDTO
	if err = decodeEnvelope(resp, &pageDTO); err != nil {
		return nil, err
	}

	page := &feed.Page{
		Messages:   make([]feed.Message, 0, len(pageDTO.Messages)),
		NextCursor: pageDTO.NextCursor,
		IsLast:     pageDTO.IsLast,
	}
	for _, messageDTO := range pageDTO.Messages {
		page.Messages = append(page.Messages, toFeedMessage(messageDTO))
	}
	return page, nil
}

func (s *ApiBackend) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", "upload"+extForContentType(contentType), bytes.NewReader(data)).
		Post("/api/media/upload")
	if err != nil {
		return "", err
	}

	var result dto.MediaUploadResultDTO
	if err = decodeEnvelope(resp, &result); err != nil {
		return "", err
	}
	return result.FileKey, nil
}

func (s *ApiBackend) CreateMessage(ctx context.Context, scope feed.Scope, body, image string) (string, error) {
	createDTO := dto.CreateMessageDTO{
		WorkspaceID: scope.WorkspaceID,
		Body:        body,
		Image:       image,
	}
	switch scope.Kind {
	case feed.ScopeChannel:
		createDTO.ChannelID = scope.ChannelID
	case feed.ScopeConversation:
		createDTO.ConversationID = scope.ConversationID
	case feed.ScopeThread:
		createDTO.ParentMessageID = scope.ParentMessageID
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(createDTO).
		Post("/api/message")
	if err != nil {
		return "", err
	}

	var messageDTO dto.MessageDTO
	if err = decodeEnvelope(resp, &messageDTO); err != nil {
		return "", err
	}
	return messageDTO.ID, nil
}

func (s *ApiBackend) UpdateMessage(ctx context.Context, id, body string) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(dto.UpdateMessageDTO{Body: body}).
		Put("/api/message/" + id)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

func (s *ApiBackend) DeleteMessage(ctx context.Context, id string) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Delete("/api/message/" + id)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

func (s *ApiBackend) ToggleReaction(ctx context.Context, id, value string) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(dto.ToggleReactionDTO{Value: value}).
		Post("/api/message/" + id + "/reaction")
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil)
}

func decodeEnvelope(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("响应解析失败: %w", err)
	}
	if env.Code != 200 {
		return fmt.Errorf("请求失败(%d): %s", env.Code, env.Message)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func toFeedMessage(messageDTO *dto.MessageDTO) feed.Message {
	msg := feed.Message{
		ID:              messageDTO.ID,
		WorkspaceID:     messageDTO.WorkspaceID,
		MemberID:        messageDTO.MemberID,
		MemberName:      messageDTO.MemberName,
		Body:            messageDTO.Body,
		Image:           messageDTO.Image,
		ChannelID:       messageDTO.ChannelID,
		ConversationID:  messageDTO.ConversationID,
		ParentMessageID: messageDTO.ParentMessageID,
		CreatedAt:       messageDTO.CreatedAt,
		Status:          feed.StatusSent,
	}
	if messageDTO.UpdatedAt != nil {
		msg.UpdatedAt = *messageDTO.UpdatedAt
	}
	for _, reaction := range messageDTO.Reactions {
		msg.Reactions = append(msg.Reactions, feed.Reaction{
			Value:     reaction.Value,
			MemberIDs: reaction.MemberIDs,
		})
	}
	if messageDTO.Replies != nil {
		msg.Replies = feed.ReplyBrief{
			Count:     int(messageDTO.Replies.Count),
			LastName:  messageDTO.Replies.LastName,
			LastImage: messageDTO.Replies.LastImage,
		}
		if messageDTO.Replies.LastTimestamp != nil {
			msg.Replies.LastTimestamp = messageDTO.Replies.LastTimestamp.UnixMilli()
		}
	}
	return msg
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
