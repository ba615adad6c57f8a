package validation

import (
	"strings"

	"github.com/user/seriestrack/internal/model"
)

// ValidateRegistration 校验注册信息，返回去除首尾空白、邮箱转小写后的结果
func ValidateRegistration(in model.RegisterInput) (model.RegisterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return model.RegisterInput{}, fieldError(err)
	}
	return in, nil
}

// ValidateCredentials 校验登录信息
func ValidateCredentials(in model.LoginInput) (model.LoginInput, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return model.LoginInput{}, fieldError(err)
	}
	return in, nil
}

// NormalizeEmail 邮箱统一小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
