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

type ReviewHandler struct {
	cfg      config.Config
	userRepo repository.UserRepository
	uc       *usecase.ReviewUsecase
}

func NewReviewHandler(cfg config.Config, userRepo repository.UserRepository, uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{cfg: cfg, userRepo: userRepo, uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	//レビューの閲覧・投稿は公開
	e.GET("/products/:id/reviews", h.list)
	e.POST("/products/:id/reviews", h.create)

	//モデレーションはadmin限定
	adminGuard := []echo.MiddlewareFunc{
		middleware.AuthJWT(h.cfg),
		middleware.AdminRoleGuard(h.userRepo),
	}
	e.PATCH("/reviews/:id/approve", h.approve, adminGuard...)
	e.PATCH("/reviews/:id/reject", h.reject, adminGuard...)
}

type reviewCreateRequest struct {
	UserID     int64  `json:"user_id"`
	Rating     *int   `json:"rating"`
	ReviewText string `json:"review_text"`
}

func (h *ReviewHandler) list(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) create(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req reviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	_, err = h.uc.CreateReview(c.Request().Context(), productID, usecase.CreateReviewInput{
		UserID:     req.UserID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{Message: "Review added successfully"})
}

func (h *ReviewHandler) approve(c echo.Context) error {
	return h.moderate(c, model.ReviewStatusApproved, "Review approved successfully")
}

func (h *ReviewHandler) reject(c echo.Context) error {
	return h.moderate(c, model.ReviewStatusRejected, "Review rejected successfully")
}

func (h *ReviewHandler) moderate(c echo.Context, status model.ReviewStatus, message string) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.ModerateReview(c.Request().Context(), adminID, reviewID, status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: message})
}
