package dto

type GetOrCreateConversationDTO struct {
	WorkspaceID uint64 `json:"workspace_id" validate:"required"`
	MemberID    uint64 `json:"member_id" validate:"required"`
}

type ConversationDTO struct {
	ID          uint64 `json:"id"`
	WorkspaceID uint64 `json:"workspace_id"`
	MemberOneID uint64 `json:"member_one_id"`
	MemberTwoID uint64 `json:"member_two_id"`
}
