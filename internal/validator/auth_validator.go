package validator

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"app/internal/usecase"
)

type authValidator struct{}

// Usecaseはinterfaceを依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, name, email, password, phoneNumber string) error {
	//必須チェック。欠けている項目はまとめて返す
	missing := []string{}
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(phoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if len(missing) > 0 {
		return usecase.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing fields: %s", strings.Join(missing, ", ")))
	}

	//email形式
	if !isEmailLike(strings.TrimSpace(email)) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	//パスワード最低文字数
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
