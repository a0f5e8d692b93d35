package dto

type RegisterDTO struct {
	Username       string  `json:"username" validate:"required,min=1,max=50"`
	Email          string  `json:"email" validate:"required,email,max=100"`
	Password       string  `json:"password" validate:"required,min=1,max=72"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=200"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

type CredentialDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileDTO nil 字段不修改，空串清空
type UpdateProfileDTO struct {
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=200"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
