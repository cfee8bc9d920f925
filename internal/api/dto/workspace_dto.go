package dto

type CreateWorkspaceDTO struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

type RenameWorkspaceDTO struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

type JoinWorkspaceDTO struct {
	JoinCode string `json:"join_code" validate:"required,len=6"`
}

type WorkspaceDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	UserID   uint64 `json:"user_id"`
	JoinCode string `json:"join_code,omitempty"`
}

type MemberDTO struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	WorkspaceID uint64 `json:"workspace_id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
}

type UpdateMemberRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}
