package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)

	//部分更新。fieldsに入っているカラムだけを書き換える
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	//物理削除（明細・レビューはDBのCASCADEで消える）
	Delete(ctx context.Context, id int64) error
}
