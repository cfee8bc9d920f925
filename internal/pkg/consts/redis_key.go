package consts

const (
	WorkspaceJoinCodeKey = "workspace:join:code:"
	MediaTempKey         = "media:temp"
)

const (
	ConversationCreateLock = "lock:conversation:create:"
)
