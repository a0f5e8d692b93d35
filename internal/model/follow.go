package model

import "time"

// Follow 关注关系，FollowerID 关注 FollowingID，同一方向只能有一条
type Follow struct {
	ID          uint64    `gorm:"column:follow_id;primaryKey;autoIncrement" json:"follow_id"`
	FollowerID  uint64    `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id" validate:"required"`
	FollowingID uint64    `gorm:"not null;uniqueIndex:idx_follows_pair;index:idx_follows_following_id" json:"following_id" validate:"required"`
	FollowDate  time.Time `gorm:"not null;autoCreateTime;<-:create" json:"follow_date"`

	Follower  *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" validate:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
