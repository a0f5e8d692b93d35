package model

import (
	"time"
)

type Comment struct {
	ID          uint64    `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	UserID      uint64    `gorm:"not null;index:idx_comments_user_id" json:"user_id" validate:"required"`
	PostID      uint64    `gorm:"not null;index:idx_comments_post_id" json:"post_id" validate:"required"`
	Text        string    `gorm:"type:varchar(500);not null" json:"text" validate:"required,max=500"`
	CommentDate time.Time `gorm:"not null;autoCreateTime;<-:create" json:"comment_date"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Comment) TableName() string {
	return "comments"
}
