package model

// All 返回全部实体，父表在前
func All() []any {
	return []any{
		&User{},
		&Post{},
		&Comment{},
		&Follow{},
		&Like{},
		&Media{},
	}
}
