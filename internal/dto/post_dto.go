package dto

type CreatePostDTO struct {
	UserID   uint64  `json:"user_id" validate:"required"`
	ImageURL string  `json:"image_url" validate:"required,max=200"`
	Caption  *string `json:"caption,omitempty" validate:"omitempty,max=1000"`
}

type CreateCommentDTO struct {
	UserID uint64 `json:"user_id" validate:"required"`
	PostID uint64 `json:"post_id" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=500"`
}
