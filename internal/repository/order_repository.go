package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//状態の更新（キャンセルなど）
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
