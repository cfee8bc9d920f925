package consts

const (
	MimePrefixImage = "image"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	JoinCodeLength = 6
)
