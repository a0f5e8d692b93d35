package util

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct 按 validate 标签校验结构体，失败时返回 validator.ValidationErrors
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

// ValidateVar 校验单个值
func ValidateVar(field any, tag string) error {
	return validate.Var(field, tag)
}
