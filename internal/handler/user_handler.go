package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users 配下（管理者専用）
type UserHandler struct {
	cfg      config.Config
	userRepo repository.UserRepository
	uc       *usecase.UserUsecase
}

func NewUserHandler(cfg config.Config, userRepo repository.UserRepository, uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{cfg: cfg, userRepo: userRepo, uc: uc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	// /users 配下は全部「JWT必須 + admin限定」
	g := e.Group(
		"/users",
		middleware.AuthJWT(h.cfg),
		middleware.AdminRoleGuard(h.userRepo),
	)

	g.GET("", h.list)
	g.PATCH("/:id/role", h.updateRole)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) list(c echo.Context) error {
	out, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) updateRole(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateRole(c.Request().Context(), adminID, targetID, model.Role(req.Role)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "User role updated successfully"})
}
