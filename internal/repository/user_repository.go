package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// ユーザーが見つからないことを統一して表す
var ErrUserNotFound = errors.New("user not found")

// emailのunique制約に当たったことを表す
var ErrDuplicateEmail = errors.New("duplicate email")

// ユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error

	// IDからユーザーを1件取得する
	FindByID(ctx context.Context, userID int64) (*model.User, error)

	//メールからユーザーを1件取得する
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//全ユーザー一覧（管理者用）
	List(ctx context.Context) ([]model.User, error)

	//ロールの変更
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
}
