package model

import (
	"time"
)

type Like struct {
	ID       uint64    `gorm:"column:like_id;primaryKey;autoIncrement" json:"like_id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id" validate:"required"`
	PostID   uint64    `gorm:"not null;uniqueIndex:idx_likes_user_post;index:idx_likes_post_id" json:"post_id" validate:"required"`
	LikeDate time.Time `gorm:"not null;autoCreateTime;<-:create" json:"like_date"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Like) TableName() string {
	return "likes"
}
