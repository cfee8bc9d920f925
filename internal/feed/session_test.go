package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockBackend 实现 Backend 接口用于测试
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) FetchPage(ctx context.Context, scope Scope, cursor string) (*Page, error) {
	args := m.Called(ctx, scope, cursor)
	if p, ok := args.Get(0).(*Page); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBackend) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) CreateMessage(ctx context.Context, scope Scope, body, image string) (string, error) {
	args := m.Called(ctx, scope, body, image)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) UpdateMessage(ctx context.Context, id, body string) error {
	return m.Called(ctx, id, body).Error(0)
}

func (m *mockBackend) DeleteMessage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBackend) ToggleReaction(ctx context.Context, id, value string) error {
	return m.Called(ctx, id, value).Error(0)
}

var self = Identity{MemberID: 42, MemberName: "raqtpie"}

func channelSession(backend Backend) *Session {
	return NewChannelSession(backend, 1, 10, self)
}

func TestSessionLoadThenMergeSameDay(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	first := &Page{
		Messages: []Message{
			msgAt("m5", day(1, 12)),
			msgAt("m4", day(1, 11)),
		},
		NextCursor: "c1",
	}
	older := &Page{
		Messages: []Message{
			msgAt("m3", day(1, 10)),
			msgAt("m2", day(1, 9)),
			msgAt("m1", day(1, 8)),
		},
		IsLast: true,
	}

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(first, nil).Once()
	backend.On("FetchPage", mock.Anything, mock.Anything, "c1").Return(older, nil).Once()

	assert.NoError(t, sess.Load(context.Background()))
	assert.True(t, sess.CanLoadMore())

	succeeded := false
	sess.LoadMore(context.Background(), Callbacks{OnSuccess: func() { succeeded = true }})

	groups := sess.Groups()
	assert.Len(t, groups, 1)
	assert.Equal(t, "2024-05-01", groups[0].DateKey)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5"}, messageIDs(groups[0]))
	assert.True(t, succeeded)
	assert.False(t, sess.CanLoadMore())

	// 已到头后再翻页不触发请求
	sess.LoadMore(context.Background(), Callbacks{})
	backend.AssertNumberOfCalls(t, "FetchPage", 2)
}

func TestSessionLoadMoreFailureKeepsState(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	first := &Page{Messages: []Message{msgAt("m2", day(2, 9))}, NextCursor: "c1"}
	older := &Page{Messages: []Message{msgAt("m1", day(1, 9))}, IsLast: true}

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(first, nil).Once()
	backend.On("FetchPage", mock.Anything, mock.Anything, "c1").Return(nil, errors.New("network down")).Once()
	backend.On("FetchPage", mock.Anything, mock.Anything, "c1").Return(older, nil).Once()

	assert.NoError(t, sess.Load(context.Background()))

	var gotErr error
	sess.LoadMore(context.Background(), Callbacks{OnError: func(err error) { gotErr = err }})

	// 失败后列表与游标原样保留，可重试
	assert.Error(t, gotErr)
	assert.Len(t, sess.Groups(), 1)
	assert.True(t, sess.CanLoadMore())

	sess.LoadMore(context.Background(), Callbacks{})
	assert.Len(t, sess.Groups(), 2)
	assert.False(t, sess.CanLoadMore())
}

func TestSessionSendSuccess(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(&Page{IsLast: true}, nil).Once()
	assert.NoError(t, sess.Load(context.Background()))

	// 创建请求在途时消息已以 sending 状态可见
	backend.On("CreateMessage", mock.Anything, mock.Anything, "hi", "").
		Run(func(args mock.Arguments) {
			groups := sess.Groups()
			assert.Len(t, groups, 1)
			assert.Equal(t, StatusSending, groups[0].Messages[0].Status)
		}).
		Return("srv-1", nil).Once()

	succeeded := false
	tempID, err := sess.Send(context.Background(), Draft{Body: "hi"}, Callbacks{OnSuccess: func() { succeeded = true }})

	assert.NoError(t, err)
	assert.Contains(t, tempID, "pending-")
	assert.True(t, succeeded)

	groups := sess.Groups()
	assert.Len(t, groups, 1)
	assert.Equal(t, "srv-1", groups[0].Messages[0].ID)
	assert.Equal(t, StatusSent, groups[0].Messages[0].Status)
	assert.Equal(t, self.MemberName, groups[0].Messages[0].MemberName)
}

func TestSessionSendFailureKeepsMessage(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(&Page{IsLast: true}, nil).Once()
	backend.On("CreateMessage", mock.Anything, mock.Anything, "offline", "").
		Return("", errors.New("connection refused")).Once()

	assert.NoError(t, sess.Load(context.Background()))

	var gotErr error
	tempID, err := sess.Send(context.Background(), Draft{Body: "offline"}, Callbacks{OnError: func(e error) { gotErr = e }})

	// 发送失败只翻转状态，消息保留在列表中
	assert.NoError(t, err)
	assert.Error(t, gotErr)

	groups := sess.Groups()
	assert.Len(t, groups, 1)
	assert.Equal(t, tempID, groups[0].Messages[0].ID)
	assert.Equal(t, StatusFailed, groups[0].Messages[0].Status)
}

func TestSessionSendUploadFailurePropagates(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(&Page{IsLast: true}, nil).Once()
	backend.On("UploadImage", mock.Anything, mock.Anything, "image/png").
		Return("", errors.New("upload refused")).Once()

	assert.NoError(t, sess.Load(context.Background()))

	draft := Draft{Image: &ImageAttachment{Data: []byte{1, 2}, ContentType: "image/png", Preview: "blob:local"}}
	_, err := sess.Send(context.Background(), draft, Callbacks{})

	// 上传失败作为错误抛出，状态停留在 sending，创建请求未发出
	assert.Error(t, err)
	groups := sess.Groups()
	assert.Equal(t, StatusSending, groups[0].Messages[0].Status)
	backend.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionSendEmptyDraft(t *testing.T) {
	sess := channelSession(new(mockBackend))

	_, err := sess.Send(context.Background(), Draft{}, Callbacks{})
	assert.ErrorIs(t, err, ErrEmptyDraft)
}

func TestSessionEditNoRollback(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	target := msgAt("m1", day(1, 8))
	backend.On("FetchPage", mock.Anything, mock.Anything, "").
		Return(&Page{Messages: []Message{target}, IsLast: true}, nil).Once()
	backend.On("UpdateMessage", mock.Anything, "m1", "edited").
		Return(errors.New("timeout")).Once()

	assert.NoError(t, sess.Load(context.Background()))

	var gotErr error
	sess.Edit(context.Background(), target, "edited", Callbacks{OnError: func(e error) { gotErr = e }})

	// 失败不回滚，本地内容保持已编辑
	assert.Error(t, gotErr)
	groups := sess.Groups()
	assert.Equal(t, "edited", groups[0].Messages[0].Body)
	assert.False(t, groups[0].Messages[0].UpdatedAt.IsZero())
}

func TestSessionDeleteNoRollback(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	target := msgAt("m1", day(1, 8))
	backend.On("FetchPage", mock.Anything, mock.Anything, "").
		Return(&Page{Messages: []Message{target, msgAt("m2", day(1, 9))}, IsLast: true}, nil).Once()
	backend.On("DeleteMessage", mock.Anything, "m1").Return(errors.New("timeout")).Once()

	assert.NoError(t, sess.Load(context.Background()))
	sess.Delete(context.Background(), "m1", target.CreatedAt, Callbacks{})

	groups := sess.Groups()
	assert.Equal(t, []string{"m2"}, messageIDs(groups[0]))
}

func TestSessionReactOptimistic(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	target := msgAt("m1", day(1, 8))
	backend.On("FetchPage", mock.Anything, mock.Anything, "").
		Return(&Page{Messages: []Message{target}, IsLast: true}, nil).Once()
	backend.On("ToggleReaction", mock.Anything, "m1", ":smile:").Return(errors.New("timeout")).Once()

	assert.NoError(t, sess.Load(context.Background()))
	sess.React(context.Background(), target, ":smile:", Callbacks{})

	// 失败不回滚，乐观结果即最终展示
	groups := sess.Groups()
	assert.Equal(t, []Reaction{{Value: ":smile:", MemberIDs: []uint64{self.MemberID}}}, groups[0].Messages[0].Reactions)
}

func TestSessionReactMissingTargetIsNoop(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	backend.On("FetchPage", mock.Anything, mock.Anything, "").Return(&Page{IsLast: true}, nil).Once()
	assert.NoError(t, sess.Load(context.Background()))

	sess.React(context.Background(), msgAt("ghost", day(1, 8)), ":smile:", Callbacks{})

	backend.AssertNotCalled(t, "ToggleReaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionConversationScopeBinding(t *testing.T) {
	backend := new(mockBackend)
	sess := NewConversationSession(backend, 1, 0, self)

	// 会话未创建前所有拉取入口都不可用
	assert.ErrorIs(t, sess.Load(context.Background()), ErrScopeNotReady)
	sess.LoadMore(context.Background(), Callbacks{})
	_, err := sess.Send(context.Background(), Draft{Body: "hi"}, Callbacks{})
	assert.ErrorIs(t, err, ErrScopeNotReady)
	backend.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything)

	sess.BindConversation(33)
	backend.On("FetchPage", mock.Anything, mock.MatchedBy(func(s Scope) bool {
		return s.Kind == ScopeConversation && s.ConversationID == 33
	}), "").Return(&Page{IsLast: true}, nil).Once()

	assert.NoError(t, sess.Load(context.Background()))
	backend.AssertExpectations(t)
}

func TestSessionResetDropsLateCompletion(t *testing.T) {
	backend := new(mockBackend)
	sess := channelSession(backend)

	backend.On("FetchPage", mock.Anything, mock.Anything, "").
		Return(&Page{Messages: []Message{msgAt("m2", day(2, 9))}, NextCursor: "c1"}, nil).Once()
	assert.NoError(t, sess.Load(context.Background()))

	release := make(chan struct{})
	entered := make(chan struct{})
	backend.On("FetchPage", mock.Anything, mock.Anything, "c1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&Page{Messages: []Message{msgAt("m1", day(1, 9))}, IsLast: true}, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sess.LoadMore(context.Background(), Callbacks{OnSuccess: func() {
			t.Error("导航离开后不应再回调")
		}})
	}()

	<-entered
	sess.Reset()
	close(release)
	wg.Wait()

	// 迟到的完成被丢弃，状态保持已重置
	assert.Empty(t, sess.Groups())
	assert.False(t, sess.CanLoadMore())
	assert.False(t, sess.LoadingMore())
}

func TestSessionThreadScope(t *testing.T) {
	backend := new(mockBackend)
	sess := NewThreadSession(backend, 1, "parent-1", self)

	backend.On("FetchPage", mock.Anything, mock.MatchedBy(func(s Scope) bool {
		return s.Kind == ScopeThread && s.ParentMessageID == "parent-1"
	}), "").Return(&Page{IsLast: true}, nil).Once()
	backend.On("CreateMessage", mock.Anything, mock.MatchedBy(func(s Scope) bool {
		return s.ParentMessageID == "parent-1"
	}), "reply", "").Return("srv-9", nil).Once()

	assert.NoError(t, sess.Load(context.Background()))
	_, err := sess.Send(context.Background(), Draft{Body: "reply"}, Callbacks{})
	assert.NoError(t, err)

	groups := sess.Groups()
	assert.Len(t, groups, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), groups[0].DateKey)
	backend.AssertExpectations(t)
}
