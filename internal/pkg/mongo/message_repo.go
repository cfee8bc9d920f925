package mongo

import (
	"Parley/internal/pkg/util"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessagePage 一页消息（按时间降序）与后续游标
type MessagePage struct {
	Messages   []*Message
	NextCursor string
	IsLast     bool
}

// ReplyBrief 线程回复摘要
type ReplyBrief struct {
	Count         int64
	LastMemberID  uint64
	LastName      string
	LastTimestamp time.Time
}

type MessageRepo interface {
	Save(ctx context.Context, msg *Message) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error)
	GetPage(ctx context.Context, filter ScopeFilter, cursor string, pageSize int) (*MessagePage, error)
	UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByChannel(ctx context.Context, channelID uint64) ([]string, error)
	DeleteByWorkspace(ctx context.Context, workspaceID uint64) ([]string, error)
	ToggleReaction(ctx context.Context, id primitive.ObjectID, value string, memberID uint64) error
	GetReplyBrief(ctx context.Context, parentID primitive.ObjectID) (*ReplyBrief, error)
	HasImageRef(ctx context.Context, image string) (bool, error)
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{col: db.Collection(messageCollection)}
}

// Save 将消息存入 MongoDB 并返回生成的 ObjectID
func (s *messageRepoImpl) Save(ctx context.Context, msg *Message) (primitive.ObjectID, error) {
	if msg.Reactions == nil {
		msg.Reactions = []Reaction{}
	}
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert message")
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *messageRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Message, error) {
	var msg Message
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetPage 历史消息分页查询
// 结果按 (created_at, _id) 降序（最新在前）。游标编码了上一页最旧一条的排序键，
// 本页只取严格早于该键的消息；多取一条用于判断是否到头。
func (s *messageRepoImpl) GetPage(ctx context.Context, filter ScopeFilter, cursor string, pageSize int) (*MessagePage, error) {
	query := scopeQuery(filter)

	if cursor != "" {
		createdAt, id, err := decodeMessageCursor(cursor)
		if err != nil {
			return nil, errors.Wrap(err, "decode cursor")
		}
		query["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": createdAt}},
			bson.M{"created_at": createdAt, "_id": bson.M{"$lt": id}},
		}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(pageSize + 1))

	cur, err := s.col.Find(ctx, query, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find messages")
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var messages []*Message
	if err = cur.All(ctx, &messages); err != nil {
		return nil, errors.Wrap(err, "decode messages")
	}

	page := &MessagePage{IsLast: len(messages) <= pageSize}
	if !page.IsLast {
		messages = messages[:pageSize]
	}
	page.Messages = messages

	if n := len(messages); n > 0 {
		oldest := messages[n-1]
		page.NextCursor = util.EncodeCursor([]interface{}{oldest.CreatedAt.UnixMilli(), oldest.ID.Hex()})
	}
	return page, nil
}

// UpdateBody 更新消息正文并刷新更新时间
func (s *messageRepoImpl) UpdateBody(ctx context.Context, id primitive.ObjectID, body string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"body": body, "updated_at": time.Now()},
	})
	if err != nil {
		return errors.Wrap(err, "update message body")
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete 删除消息及其全部线程回复
func (s *messageRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(err, "delete message")
	}
	_, err := s.col.DeleteMany(ctx, bson.M{"parent_message_id": id})
	return errors.Wrap(err, "delete thread replies")
}

// DeleteByChannel 删除频道下全部消息及其线程回复，返回被删消息引用的图片对象键
// 回复文档只携带 parent_message_id，需要先取出频道内根消息的 ID 再级联
func (s *messageRepoImpl) DeleteByChannel(ctx context.Context, channelID uint64) ([]string, error) {
	rootQuery := bson.M{"channel_id": channelID}

	roots, err := s.listIDsAndImages(ctx, rootQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list channel messages")
	}
	if len(roots.ids) == 0 {
		return nil, nil
	}

	replyQuery := bson.M{"parent_message_id": bson.M{"$in": roots.ids}}
	replies, err := s.listIDsAndImages(ctx, replyQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list channel thread replies")
	}

	if _, err = s.col.DeleteMany(ctx, replyQuery); err != nil {
		return nil, errors.Wrap(err, "delete channel thread replies")
	}
	if _, err = s.col.DeleteMany(ctx, rootQuery); err != nil {
		return nil, errors.Wrap(err, "delete channel messages")
	}
	return append(roots.images, replies.images...), nil
}

// DeleteByWorkspace 删除工作区下全部消息，返回被删消息引用的图片对象键
// 线程回复同样携带 workspace_id，一次过滤即覆盖全部归属
func (s *messageRepoImpl) DeleteByWorkspace(ctx context.Context, workspaceID uint64) ([]string, error) {
	query := bson.M{"workspace_id": workspaceID}

	listed, err := s.listIDsAndImages(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list workspace messages")
	}
	if len(listed.ids) == 0 {
		return nil, nil
	}

	if _, err = s.col.DeleteMany(ctx, query); err != nil {
		return nil, errors.Wrap(err, "delete workspace messages")
	}
	return listed.images, nil
}

type idImageList struct {
	ids    []primitive.ObjectID
	images []string
}

func (s *messageRepoImpl) listIDsAndImages(ctx context.Context, query bson.M) (idImageList, error) {
	var out idImageList

	cur, err := s.col.Find(ctx, query, options.Find().SetProjection(bson.M{"image": 1}))
	if err != nil {
		return out, err
	}
	defer func() {
		_ = cur.Close(ctx)
	}()

	var docs []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Image string             `bson:"image"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return out, err
	}

	for _, doc := range docs {
		out.ids = append(out.ids, doc.ID)
		if doc.Image != "" {
			out.images = append(out.images, doc.Image)
		}
	}
	return out, nil
}

// ToggleReaction 在消息文档内切换成员对某表情值的标记
// 与客户端的切换算法保持同一语义：无则追加、有则移除、清空即删项
func (s *messageRepoImpl) ToggleReaction(ctx context.Context, id primitive.ObjectID, value string, memberID uint64) error {
	msg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	reactions := msg.Reactions
	applied := false
	for i := range reactions {
		if reactions[i].Value != value {
			continue
		}
		applied = true

		removed := false
		ids := reactions[i].MemberIDs[:0:0]
		for _, mid := range reactions[i].MemberIDs {
			if mid == memberID {
				removed = true
				continue
			}
			ids = append(ids, mid)
		}

		switch {
		case removed && len(ids) == 0:
			reactions = append(reactions[:i:i], reactions[i+1:]...)
		case removed:
			reactions[i].MemberIDs = ids
		default:
			reactions[i].MemberIDs = append(reactions[i].MemberIDs, memberID)
		}
		break
	}
	if !applied {
		reactions = append(reactions, Reaction{Value: value, MemberIDs: []uint64{memberID}})
	}

	_, err = s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reactions": reactions}})
	return errors.Wrap(err, "toggle reaction")
}

// GetReplyBrief 统计线程回复数并取最近一条回复
func (s *messageRepoImpl) GetReplyBrief(ctx context.Context, parentID primitive.ObjectID) (*ReplyBrief, error) {
	filter := bson.M{"parent_message_id": parentID}

	count, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count replies")
	}
	if count == 0 {
		return &ReplyBrief{}, nil
	}

	var last Message
	err = s.col.FindOne(ctx, filter, options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	).Decode(&last)
	if err != nil {
		return nil, errors.Wrap(err, "find last reply")
	}

	return &ReplyBrief{
		Count:         count,
		LastMemberID:  last.MemberID,
		LastName:      last.MemberName,
		LastTimestamp: last.CreatedAt,
	}, nil
}

// HasImageRef 判断对象键是否仍被任一消息引用，供清理任务使用
func (s *messageRepoImpl) HasImageRef(ctx context.Context, image string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"image": image}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count image refs")
	}
	return count > 0, nil
}

func scopeQuery(filter ScopeFilter) bson.M {
	switch {
	case filter.ChannelID != 0:
		return bson.M{"channel_id": filter.ChannelID}
	case filter.ConversationID != 0:
		return bson.M{"conversation_id": filter.ConversationID}
	default:
		return bson.M{"parent_message_id": filter.ParentMessageID}
	}
}

// decodeMessageCursor 游标为 [createdAtUnixMilli, objectIDHex]
func decodeMessageCursor(cursor string) (time.Time, primitive.ObjectID, error) {
	values, err := util.DecodeCursor(cursor)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}
	if len(values) != 2 {
		return time.Time{}, primitive.NilObjectID, errors.New("unexpected cursor shape")
	}

	ms, ok := values[0].(float64)
	if !ok {
		return time.Time{}, primitive.NilObjectID, errors.New("invalid cursor timestamp")
	}
	hex, ok := values[1].(string)
	if !ok {
		return time.Time{}, primitive.NilObjectID, errors.New("invalid cursor id")
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, err
	}
	return time.UnixMilli(int64(ms)), id, nil
}
