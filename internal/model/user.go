package model

import (
	"time"
)

type User struct {
	ID               uint64    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username         string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username" json:"username" validate:"required,max=50"`
	Email            string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email" json:"email" validate:"required,email,max=100"`
	Password         string    `gorm:"type:varchar(100);not null" json:"-" validate:"required,max=100"`
	ProfilePicture   *string   `gorm:"type:varchar(200)" json:"profile_picture" validate:"omitempty,max=200"`
	Bio              *string   `gorm:"type:varchar(500)" json:"bio" validate:"omitempty,max=500"`
	RegistrationDate time.Time `gorm:"not null;autoCreateTime;<-:create" json:"registration_date"`
}

func (User) TableName() string {
	return "users"
}
