package dto

type CreateChannelDTO struct {
	WorkspaceID uint64 `json:"workspace_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=64"`
}

type RenameChannelDTO struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

type ChannelDTO struct {
	ID          uint64 `json:"id"`
	WorkspaceID uint64 `json:"workspace_id"`
	Name        string `json:"name"`
}
