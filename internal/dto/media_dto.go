package dto

import "io"

// UploadMediaDTO 上传到对象存储的媒体
type UploadMediaDTO struct {
	UserID      uint64    `validate:"required"`
	PostID      uint64    `validate:"required"`
	FileName    string    `validate:"required"`
	ContentType string    `validate:"required,max=50"`
	Size        int64     `validate:"gt=0"`
	Reader      io.Reader `validate:"required"`
}

// AttachMediaDTO 记录已托管在外部的媒体地址
type AttachMediaDTO struct {
	UserID    uint64 `json:"user_id" validate:"required"`
	PostID    uint64 `json:"post_id" validate:"required"`
	MediaType string `json:"media_type" validate:"required,max=50"`
	MediaURL  string `json:"media_url" validate:"required,url,max=200"`
}
