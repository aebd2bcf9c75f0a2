package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductUsecase struct {
	products repo.ProductRepository
	audit    repo.AuditLogRepository
	log      *zap.Logger
}

// DI
func NewProductUsecase(
	products repo.ProductRepository,
	audit repo.AuditLogRepository,
	log *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		audit:    audit,
		log:      log,
	}
}

// API返却用。priceは数値で返す
type ProductOutput struct {
	ProductID     int64   `json:"product_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
	}
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		u.log.Error("list products failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		u.log.Error("find product failed", zap.Error(err))
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return toProductOutput(p), nil
}

type AdminCreateProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int64
	Category      string
	ImageURL      string
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in AdminCreateProductInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price.Round(2),
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
	})
	if err != nil {
		u.log.Error("create product failed", zap.Error(err))
		return 0, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreateProduct, p.ID, nil, toProductOutput(p))
	return p.ID, nil
}

// 部分更新の入力。nilの項目は変更しない
type AdminUpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int64
	Category      *string
	ImageURL      *string
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminUpdateProductInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	//変更前の状態（存在確認＋監査ログ用）
	before, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		u.log.Error("find product failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//入っている項目だけをUPDATE対象にする（shallow merge）
	fields := map[string]interface{}{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return NewHTTPError(http.StatusBadRequest, "name required")
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		fields["price"] = in.Price.Round(2)
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
		}
		fields["stock_quantity"] = *in.StockQuantity
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}

	if err := u.products.UpdateFields(ctx, productID, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		u.log.Error("update product failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdateProduct, productID, toProductOutput(before), fields)
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	before, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		u.log.Error("find product failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		u.log.Error("delete product failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDeleteProduct, productID, toProductOutput(before), nil)
	return nil
}

// 商品操作の監査ログを残す。失敗しても本処理は成功扱い
func (u *ProductUsecase) writeAudit(ctx context.Context, adminUserID int64, action model.AuditAction, productID int64, before, after interface{}) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
	}); err != nil {
		u.log.Warn("write audit log failed", zap.Error(err))
	}
}
