package repository

import "context"

// 在庫の増減を約束
type InventoryRepository interface {
	// 在庫が足りるときだけ減算する。減らせなかったらfalse
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
