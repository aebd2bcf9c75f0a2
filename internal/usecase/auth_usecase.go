package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name, email, password, phoneNumber string) error
	ValidateLogin(ctx context.Context, email, password string) error
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

type LoginOutput struct {
	AccessToken string
	Role        model.Role
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
	log       *zap.Logger
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
	log *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		log:       log,
	}
}

// Register は一般ユーザーの会員登録
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return u.register(ctx, in, model.RoleUser)
}

// RegisterAdmin は管理者の登録。
// handler側でセットアップトークンを確認してから呼ぶこと
func (u *AuthUsecase) RegisterAdmin(ctx context.Context, in RegisterInput) (*model.User, error) {
	return u.register(ctx, in, model.RoleAdmin)
}

func (u *AuthUsecase) register(ctx context.Context, in RegisterInput, role model.Role) (*model.User, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password, in.PhoneNumber); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)

	//email重複チェック
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		u.log.Error("find user by email failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "user already exists")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Error("bcrypt hash failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(pwHash),
		Role:         role,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusConflict, "user already exists")
		}
		u.log.Error("create user failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return user, nil
}

// Login はemail+passwordを照合してaccess tokenを発行する
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*LoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		u.log.Error("find user by email failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	accessToken, err := u.issueAccessToken(user)
	if err != nil {
		u.log.Error("issue access token failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &LoginOutput{
		AccessToken: accessToken,
		Role:        user.Role,
	}, nil
}

// jwt発行。subにuser_idを入れる
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	return signed, nil
}
