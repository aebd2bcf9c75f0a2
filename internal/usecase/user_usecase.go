package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"

	"go.uber.org/zap"
)

type UserUsecase struct {
	users repository.UserRepository
	audit repository.AuditLogRepository
	log   *zap.Logger
}

func NewUserUsecase(
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	log *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		users: users,
		audit: audit,
		log:   log,
	}
}

type UserOutput struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// ListUsers は全ユーザー一覧（管理者用）
func (u *UserUsecase) ListUsers(ctx context.Context) ([]UserOutput, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		u.log.Error("list users failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	outs := make([]UserOutput, 0, len(users))
	for _, user := range users {
		outs = append(outs, UserOutput{
			UserID:      user.ID,
			Name:        user.Name,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			Role:        string(user.Role),
		})
	}
	return outs, nil
}

// UpdateRole はロール変更（管理者用）。user/admin以外は拒否
func (u *UserUsecase) UpdateRole(ctx context.Context, adminUserID int64, targetUserID int64, newRole model.Role) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if !newRole.IsValid() {
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	//変更前のロール（監査ログ用）
	target, err := u.users.FindByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		u.log.Error("find user failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdateRole(ctx, targetUserID, newRole); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}
		u.log.Error("update role failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.writeAudit(ctx, adminUserID, targetUserID, target.Role, newRole)
	return nil
}

// ロール変更の監査ログを残す。失敗しても本処理は成功扱い
func (u *UserUsecase) writeAudit(ctx context.Context, adminUserID, targetUserID int64, before, after model.Role) {
	beforeJSON, _ := json.Marshal(map[string]string{"role": string(before)})
	afterJSON, _ := json.Marshal(map[string]string{"role": string(after)})

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
	}); err != nil {
		u.log.Warn("write audit log failed", zap.Error(err))
	}
}
