package feed

import "context"

// Page 一页消息（按时间降序）及其后续游标
type Page struct {
	Messages   []Message `json:"messages"`
	NextCursor string    `json:"next_cursor"`
	IsLast     bool      `json:"is_last"`
}

// ImageAttachment 待上传的图片附件
// Preview 为本地预览引用，在服务端存储键出现前先行展示
type ImageAttachment struct {
	Data        []byte
	ContentType string
	Preview     string
}

// Draft 待发送的消息内容，Body 与 Image 至少一项非空
type Draft struct {
	Body  string
	Image *ImageAttachment
}

// Backend 引擎依赖的网络协作方契约
// 服务端分页查询与增删改均在此边界之外实现
type Backend interface {
	FetchPage(ctx context.Context, scope Scope, cursor string) (*Page, error)
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
	CreateMessage(ctx context.Context, scope Scope, body, image string) (string, error)
	UpdateMessage(ctx context.Context, id, body string) error
	DeleteMessage(ctx context.Context, id string) error
	ToggleReaction(ctx context.Context, id, value string) error
}

// Callbacks 网络调用落定后的通知回调，字段可为 nil
type Callbacks struct {
	OnSuccess func()
	OnError   func(err error)
}

func (c Callbacks) success() {
	if c.OnSuccess != nil {
		c.OnSuccess()
	}
}

func (c Callbacks) fail(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}
