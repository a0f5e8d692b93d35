package model

import (
	"time"

	"github.com/goccy/go-json"
)

// Media 帖子的媒体文件，与 Post 一对一，post_id 上有唯一索引
type Media struct {
	ID         uint64    `gorm:"column:media_id;primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"not null;index:idx_media_user_id" validate:"required"`
	PostID     uint64    `gorm:"not null;uniqueIndex:idx_media_post_id" validate:"required"`
	MediaType  string    `gorm:"type:varchar(50);not null" validate:"required,max=50"`
	MediaURL   string    `gorm:"type:varchar(200);not null" validate:"required,max=200"`
	UploadDate time.Time `gorm:"not null;autoCreateTime;<-:create"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Media) TableName() string {
	return "media"
}

// ToMap 序列化为字段名到值的映射
func (m *Media) ToMap() map[string]any {
	return map[string]any{
		"media_id":    m.ID,
		"user_id":     m.UserID,
		"post_id":     m.PostID,
		"media_type":  m.MediaType,
		"media_url":   m.MediaURL,
		"upload_date": m.UploadDate,
	}
}

func (m Media) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}
