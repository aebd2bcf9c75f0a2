package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"product_id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`

	//価格は小数2桁の固定小数点（numeric(10,2)）
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null" json:"stock_quantity"`
	Category      string          `gorm:"type:varchar(100);not null" json:"category"`
	ImageURL      string          `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	// 商品削除時は明細・レビューもDB側のCASCADEで削除する
	OrderItems []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews    []Review    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
