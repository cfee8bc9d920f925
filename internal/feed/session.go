package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrScopeNotReady = errors.New("作用域身份未确定")
	ErrEmptyDraft    = errors.New("消息内容为空")
)

// Identity 当前操作者的身份快照
type Identity struct {
	MemberID   uint64
	MemberName string
}

// Session 单个作用域的消息列表会话
// 持有分组列表与分页游标的唯一所有权；所有本地变更先于网络调用同步生效，
// 网络完成后按 ID 做定点修补，不同操作的完成顺序互不影响。
type Session struct {
	mu      sync.Mutex
	backend Backend
	scope   Scope
	self    Identity

	groups      GroupedList
	cursor      string
	done        bool
	loaded      bool
	loadingMore bool

	// gen 在 Reset 时递增，迟到的网络完成据此被丢弃
	gen uint64
}

// NewSession 构造一个作用域会话
func NewSession(backend Backend, scope Scope, self Identity) *Session {
	return &Session{backend: backend, scope: scope, self: self}
}

// NewChannelSession 频道消息会话
func NewChannelSession(backend Backend, workspaceID, channelID uint64, self Identity) *Session {
	return NewSession(backend, ChannelScope(workspaceID, channelID), self)
}

// NewConversationSession 私聊消息会话，conversationID 可先为 0 后续绑定
func NewConversationSession(backend Backend, workspaceID, conversationID uint64, self Identity) *Session {
	return NewSession(backend, ConversationScope(workspaceID, conversationID), self)
}

// NewThreadSession 线程回复会话
func NewThreadSession(backend Backend, workspaceID uint64, parentMessageID string, self Identity) *Session {
	return NewSession(backend, ThreadScope(workspaceID, parentMessageID), self)
}

// BindConversation 私聊会话创建成功后补绑会话 ID
func (s *Session) BindConversation(conversationID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope.Kind == ScopeConversation {
		s.scope.ConversationID = conversationID
	}
}

// Groups 返回分组列表的只读副本，供渲染层使用
func (s *Session) Groups() GroupedList {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(GroupedList, len(s.groups))
	for i, g := range s.groups {
		msgs := make([]Message, len(g.Messages))
		copy(msgs, g.Messages)
		out[i] = Group{DateKey: g.DateKey, Messages: msgs}
	}
	return out
}

// CanLoadMore 是否还有更旧的历史可以加载
func (s *Session) CanLoadMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && !s.done
}

// LoadingMore 是否有翻页请求在途
func (s *Session) LoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}

// Load 初始加载：拉取首页并重建分组列表
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if !s.scope.Ready() {
		s.mu.Unlock()
		return ErrScopeNotReady
	}
	gen, scope := s.gen, s.scope
	s.mu.Unlock()

	page, err := s.backend.FetchPage(ctx, scope, "")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	if err != nil {
		return err
	}

	s.groups = BucketPage(page.Messages)
	s.cursor = page.NextCursor
	s.done = page.IsLast
	s.loaded = true
	return nil
}

// LoadMore 向更早方向翻一页并合并
// 在途、已到头或作用域未就绪时直接忽略；拉取失败不做任何部分合并
func (s *Session) LoadMore(ctx context.Context, cb Callbacks) {
	s.mu.Lock()
	if s.loadingMore || s.done || !s.loaded || !s.scope.Ready() {
		s.mu.Unlock()
		return
	}
	s.loadingMore = true
	gen, scope, cursor := s.gen, s.scope, s.cursor
	s.mu.Unlock()

	page, err := s.backend.FetchPage(ctx, scope, cursor)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.loadingMore = false
	if err != nil {
		cb.fail(err)
		return
	}

	s.cursor = page.NextCursor
	s.done = page.IsLast
	if len(page.Messages) > 0 {
		s.groups = MergeOlderPage(s.groups, BucketPage(page.Messages))
	}
	cb.success()
}

// Send 乐观发送：先以临时 ID 插入列表，上传图片并创建消息后定点修补
// 图片上传失败作为错误抛给调用方，消息保持 sending；
// 创建请求失败只翻转状态为 failed，消息不会从列表移除。
// 返回值为本地临时 ID。
func (s *Session) Send(ctx context.Context, draft Draft, cb Callbacks) (string, error) {
	if draft.Body == "" && draft.Image == nil {
		return "", ErrEmptyDraft
	}

	s.mu.Lock()
	if !s.scope.Ready() {
		s.mu.Unlock()
		return "", ErrScopeNotReady
	}
	gen, scope := s.gen, s.scope

	msg := Message{
		ID:              "pending-" + uuid.NewString(),
		WorkspaceID:     scope.WorkspaceID,
		MemberID:        s.self.MemberID,
		MemberName:      s.self.MemberName,
		Body:            draft.Body,
		ChannelID:       scope.ChannelID,
		ConversationID:  scope.ConversationID,
		ParentMessageID: scope.ParentMessageID,
		Reactions:       []Reaction{},
		CreatedAt:       time.Now(),
		Status:          StatusSending,
	}
	if draft.Image != nil {
		msg.Image = draft.Image.Preview
	}

	// 新消息属于今天：追加到末尾分组，或新开一个尾部分组
	key := msg.DateKey()
	if n := len(s.groups); n > 0 && s.groups[n-1].DateKey == key {
		s.groups[n-1].Messages = append(s.groups[n-1].Messages, msg)
	} else {
		s.groups = append(s.groups, Group{DateKey: key, Messages: []Message{msg}})
	}
	tempID := msg.ID
	s.mu.Unlock()

	var imageRef string
	if draft.Image != nil {
		ref, err := s.backend.UploadImage(ctx, draft.Image.Data, draft.Image.ContentType)
		if err != nil {
			return tempID, err
		}
		imageRef = ref
	}

	serverID, err := s.backend.CreateMessage(ctx, scope, draft.Body, imageRef)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return tempID, nil
	}
	if m := s.groups.findMessage(key, tempID); m != nil {
		if err != nil {
			m.Status = StatusFailed
		} else {
			m.ID = serverID
			m.Status = StatusSent
			if imageRef != "" {
				m.Image = imageRef
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		cb.fail(err)
	} else {
		cb.success()
	}
	return tempID, nil
}

// Edit 乐观编辑：本地立即生效，网络失败不回滚
func (s *Session) Edit(ctx context.Context, target Message, newBody string, cb Callbacks) {
	s.mu.Lock()
	m := s.groups.findMessage(target.DateKey(), target.ID)
	if m == nil {
		s.mu.Unlock()
		return
	}
	m.Body = newBody
	m.UpdatedAt = time.Now()
	s.mu.Unlock()

	if err := s.backend.UpdateMessage(ctx, target.ID, newBody); err != nil {
		cb.fail(err)
		return
	}
	cb.success()
}

// Delete 乐观删除：本地先移除，网络失败后消息不会恢复
func (s *Session) Delete(ctx context.Context, id string, createdAt time.Time, cb Callbacks) {
	s.mu.Lock()
	gi := s.groups.findGroup(createdAt.Format(dateKeyLayout))
	if gi < 0 {
		s.mu.Unlock()
		return
	}
	msgs := s.groups[gi].Messages[:0:0]
	for _, m := range s.groups[gi].Messages {
		if m.ID != id {
			msgs = append(msgs, m)
		}
	}
	s.groups[gi].Messages = msgs
	s.mu.Unlock()

	if err := s.backend.DeleteMessage(ctx, id); err != nil {
		cb.fail(err)
		return
	}
	cb.success()
}

// React 乐观切换表情：本地先切换，网络失败不回滚
func (s *Session) React(ctx context.Context, target Message, value string, cb Callbacks) {
	s.mu.Lock()
	m := s.groups.findMessage(target.DateKey(), target.ID)
	if m == nil {
		s.mu.Unlock()
		return
	}
	m.Reactions = ToggleReaction(m.Reactions, value, s.self.MemberID)
	s.mu.Unlock()

	if err := s.backend.ToggleReaction(ctx, target.ID, value); err != nil {
		cb.fail(err)
		return
	}
	cb.success()
}

// Reset 离开作用域时丢弃全部状态，在途请求的结果到达后将被忽略
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.groups = nil
	s.cursor = ""
	s.done = false
	s.loaded = false
	s.loadingMore = false
}
