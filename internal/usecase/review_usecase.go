package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

type ReviewUsecase struct {
	reviews  repo.ReviewRepository
	users    repo.UserRepository
	products repo.ProductRepository
	audit    repo.AuditLogRepository
	log      *zap.Logger
}

func NewReviewUsecase(
	reviews repo.ReviewRepository,
	users repo.UserRepository,
	products repo.ProductRepository,
	audit repo.AuditLogRepository,
	log *zap.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviews:  reviews,
		users:    users,
		products: products,
		audit:    audit,
		log:      log,
	}
}

type CreateReviewInput struct {
	UserID     int64
	Rating     *int
	ReviewText string
}

type ReviewOutput struct {
	ReviewID   int64  `json:"review_id"`
	UserID     int64  `json:"user_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	Status     string `json:"status"`
}

// CreateReview はレビューを作成する。statusはpendingで始まる
func (u *ReviewUsecase) CreateReview(ctx context.Context, productID int64, in CreateReviewInput) (int64, error) {
	if productID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating == nil {
		return 0, NewHTTPError(http.StatusBadRequest, "rating is required")
	}
	if *in.Rating < 1 || *in.Rating > 5 {
		return 0, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	//レビュー投稿者の存在確認
	user, err := u.users.FindByID(ctx, in.UserID)
	if err != nil || user == nil {
		if err == nil || errors.Is(err, repo.ErrUserNotFound) {
			return 0, NewHTTPError(http.StatusNotFound, "user not found")
		}
		u.log.Error("find user failed", zap.Error(err))
		return 0, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//対象商品の存在確認
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, NewHTTPError(http.StatusNotFound, "product not found")
		}
		u.log.Error("find product failed", zap.Error(err))
		return 0, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	review, err := u.reviews.Create(ctx, model.Review{
		ProductID:  productID,
		UserID:     in.UserID,
		Rating:     *in.Rating,
		ReviewText: in.ReviewText,
		Status:     model.ReviewStatusPending,
	})
	if err != nil {
		u.log.Error("create review failed", zap.Error(err))
		return 0, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return review.ID, nil
}

func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	reviews, err := u.reviews.ListByProductID(ctx, productID)
	if err != nil {
		u.log.Error("list reviews failed", zap.Error(err))
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	outs := make([]ReviewOutput, 0, len(reviews))
	for _, r := range reviews {
		outs = append(outs, ReviewOutput{
			ReviewID:   r.ID,
			UserID:     r.UserID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			Status:     string(r.Status),
		})
	}
	return outs, nil
}

// ModerateReview は承認/却下（管理者用）。
// すでに同じstatusならno-opで成功を返す（IDベースで冪等）
func (u *ReviewUsecase) ModerateReview(ctx context.Context, adminUserID int64, reviewID int64, status model.ReviewStatus) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reviewID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	if status != model.ReviewStatusApproved && status != model.ReviewStatusRejected {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	review, err := u.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "review not found")
	}
	if err != nil {
		u.log.Error("find review failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//同じstatusへの再適用は何もしない
	if review.Status == status {
		return nil
	}

	if err := u.reviews.UpdateStatus(ctx, reviewID, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "review not found")
		}
		u.log.Error("update review status failed", zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	u.writeAudit(ctx, adminUserID, reviewID, review.Status, status)
	return nil
}

// モデレーションの監査ログを残す。失敗しても本処理は成功扱い
func (u *ReviewUsecase) writeAudit(ctx context.Context, adminUserID, reviewID int64, before, after model.ReviewStatus) {
	beforeJSON, _ := json.Marshal(map[string]string{"status": string(before)})
	afterJSON, _ := json.Marshal(map[string]string{"status": string(after)})

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionModerateReview,
		ResourceType: model.AuditResourceReview,
		ResourceID:   reviewID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
	}); err != nil {
		u.log.Warn("write audit log failed", zap.Error(err))
	}
}
