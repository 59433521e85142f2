package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{2,63}$`)

// RegisterValidators 向 gin 的驗證器註冊自訂規則
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("username", validateUsername)
}

// validateUsername 3 到 64 個字元，英數字開頭，可含 . _ -
func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// validationMessage 將第一個驗證錯誤轉為使用者訊息
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request."
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "All fields are required."
	case "username":
		return "Username must be 3-64 letters, digits, dots, dashes or underscores."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	default:
		return "Invalid request."
	}
}
