package model

import (
	"time"
)

// Post 帖子，LikesCount/CommentsCount 为冗余计数，由写 likes/comments 的一方在同一事务内维护
type Post struct {
	ID            uint64    `gorm:"column:post_id;primaryKey;autoIncrement" json:"post_id"`
	UserID        uint64    `gorm:"not null;index:idx_posts_user_id" json:"user_id" validate:"required"`
	ImageURL      string    `gorm:"type:varchar(200);not null" json:"image_url" validate:"required,max=200"`
	Caption       *string   `gorm:"type:varchar(1000)" json:"caption" validate:"omitempty,max=1000"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count" validate:"gte=0"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count" validate:"gte=0"`
	PostDate      time.Time `gorm:"not null;autoCreateTime;<-:create" json:"post_date"`

	// 关联关系，只用于声明外键和按需 Preload
	User  *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
	Media *Media `gorm:"-" json:"media,omitempty" validate:"-"`
}

func (Post) TableName() string {
	return "posts"
}
