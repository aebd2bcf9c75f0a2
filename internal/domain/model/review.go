package model

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type Review struct {
	ID         int64        `gorm:"primaryKey;autoIncrement" json:"review_id"`
	ProductID  int64        `gorm:"not null;index" json:"product_id"`
	UserID     int64        `gorm:"not null;index" json:"user_id"`
	Rating     int          `gorm:"not null" json:"rating"`
	ReviewText string       `gorm:"type:text" json:"review_text"`
	Status     ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}
