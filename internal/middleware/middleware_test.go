package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type MwUserRepoMock struct{ mock.Mock }

func (m *MwUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in middleware tests")
}

func (m *MwUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MwUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in middleware tests")
}

func (m *MwUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in middleware tests")
}

func (m *MwUserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in middleware tests")
}

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(userID int64, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(15 * time.Minute).Unix(),
	}
}

// AuthJWT越しにhandlerを叩いてrecorderを返す
func runAuthJWT(token string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := middleware.AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	if captured != nil {
		return rec, captured
	}
	return rec, c
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runAuthJWT("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", validClaims(1, "user"))
	rec, _ := runAuthJWT(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims(1, "user")
	claims["exp"] = time.Now().Add(-1 * time.Minute).Unix()

	token := signToken(t, testSecret, claims)
	rec, _ := runAuthJWT(token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken_SetsContext(t *testing.T) {
	token := signToken(t, testSecret, validClaims(7, "admin"))
	rec, c := runAuthJWT(token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "admin", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_RejectsNonBearerScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func runAdminGuard(userID interface{}, uRepo *MwUserRepoMock) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set(middleware.CtxUserIDKey, userID)
	}

	h := middleware.AdminRoleGuard(uRepo)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestAdminRoleGuard_NoUserIDInContext(t *testing.T) {
	rec := runAdminGuard(nil, new(MwUserRepoMock))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_UserNotFound(t *testing.T) {
	uRepo := new(MwUserRepoMock)
	uRepo.On("FindByID", mock.Anything, int64(7)).Return(nil, repo.ErrUserNotFound)

	rec := runAdminGuard(int64(7), uRepo)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_NonAdminRejected(t *testing.T) {
	uRepo := new(MwUserRepoMock)
	//tokenのroleがadminでもDBがuserなら拒否される
	uRepo.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Role: model.RoleUser}, nil)

	rec := runAdminGuard(int64(7), uRepo)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_AdminPasses(t *testing.T) {
	uRepo := new(MwUserRepoMock)
	uRepo.On("FindByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Role: model.RoleAdmin}, nil)

	rec := runAdminGuard(int64(7), uRepo)
	assert.Equal(t, http.StatusOK, rec.Code)

	uRepo.AssertExpectations(t)
}
