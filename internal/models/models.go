package models

import (
	"time"
)

type User struct {
	UserID   uint   `gorm:"primaryKey;autoIncrement" json:"userId"`
	Nickname string `gorm:"unique;not null" json:"nickname"`
	Password string `gorm:"not null" json:"-"`
}

type Post struct {
	PostID    uint      `gorm:"primaryKey;autoIncrement" json:"postId"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	Like      int       `gorm:"not null;default:0" json:"like"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Goods struct {
	GoodsID      uint   `gorm:"primaryKey;autoIncrement" json:"goodsId"`
	Name         string `gorm:"not null" json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Category     string `gorm:"index" json:"category"`
	Price        int    `gorm:"not null;check:price>=0" json:"price"`
}

// Cart is keyed by (UserID, GoodsID), so a user holds at most one row per goods.
type Cart struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	GoodsID  uint `gorm:"primaryKey;autoIncrement:false" json:"goodsId"`
	Quantity int  `gorm:"not null;check:quantity>0" json:"quantity"`
}

func (Goods) TableName() string {
	return "goods"
}

func (Cart) TableName() string {
	return "carts"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Post{}, &Goods{}, &Cart{}}
}
