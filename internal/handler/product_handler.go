package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products の公開API＋管理者用のCRUD
type ProductHandler struct {
	cfg      config.Config
	userRepo repository.UserRepository
	uc       *usecase.ProductUsecase
}

// DI
func NewProductHandler(cfg config.Config, userRepo repository.UserRepository, uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{cfg: cfg, userRepo: userRepo, uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	//公開（誰でも読める）
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	//書き込みはadmin限定。ルート登録時にguardを合成する
	adminGuard := []echo.MiddlewareFunc{
		middleware.AuthJWT(h.cfg),
		middleware.AdminRoleGuard(h.userRepo),
	}
	e.POST("/products", h.create, adminGuard...)
	e.PUT("/products/:id", h.update, adminGuard...)
	e.DELETE("/products/:id", h.delete, adminGuard...)
}

// 作成は必須チェックのためpointerで受ける
type productCreateRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int64   `json:"stock_quantity"`
	Category      *string  `json:"category"`
	ImageURL      *string  `json:"image_url"`
}

// 部分更新。入っていない項目は変更しない
type productUpdateRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int64   `json:"stock_quantity"`
	Category      *string  `json:"category"`
	ImageURL      *string  `json:"image_url"`
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//必須項目の欠けをまとめて返す
	missing := []string{}
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.Description == nil {
		missing = append(missing, "description")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if req.StockQuantity == nil {
		missing = append(missing, "stock_quantity")
	}
	if req.Category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("missing fields: %s", strings.Join(missing, ", ")),
		})
	}

	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	_, err := h.uc.AdminCreateProduct(c.Request().Context(), adminID, usecase.AdminCreateProductInput{
		Name:          *req.Name,
		Description:   *req.Description,
		Price:         decimal.NewFromFloat(*req.Price),
		StockQuantity: *req.StockQuantity,
		Category:      *req.Category,
		ImageURL:      imageURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{Message: "Product added successfully"})
}

func (h *ProductHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.AdminUpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		in.Price = &price
	}

	if err := h.uc.AdminUpdateProduct(c.Request().Context(), adminID, id, in); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product updated successfully"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted successfully"})
}
