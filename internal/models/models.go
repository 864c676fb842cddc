package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Flower struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	ImageURL    string  `json:"image_url"`
}

type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	FlowerID   uint      `gorm:"not null"                 json:"flower_id"`
	Quantity   uint      `gorm:"not null;check:quantity>0" json:"quantity"`
	TotalPrice float64   `gorm:"not null"                 json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderWithFlower is the read model for order listings, enriched with the
// referenced flower's display fields.
type OrderWithFlower struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	FlowerID   uint      `json:"flower_id"`
	Quantity   uint      `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	FlowerName string    `json:"flower_name"`
	ImageURL   string    `json:"image_url"`
}

// Session is the server-side record behind the opaque cookie token. The
// token itself never touches the database, only its HMAC digest.
type Session struct {
	TokenHash string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"index;not null"     json:"user_id"`
	UserName  string    `gorm:"not null"           json:"user_name"`
	ExpiresAt time.Time `gorm:"index;not null"     json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
