package repository

import (
	"context"

	"app/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (model.Review, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	FindByID(ctx context.Context, reviewID int64) (model.Review, error)

	//モデレーション状態の更新
	UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus) error
}
