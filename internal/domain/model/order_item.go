package model

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"order_item_id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	//購入時点の単価スナップショット。作成後は変更しない
	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_at_purchase"`
}
