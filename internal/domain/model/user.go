package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// 管理者ロールかどうか
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ロールとして受け付ける値か（user / admin のみ）
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(30);not null" json:"phone_number"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	// ユーザー削除時は注文・レビューもDB側のCASCADEで削除する
	Orders  []Order  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
