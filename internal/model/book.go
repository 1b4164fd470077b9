package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents a book listed for sale.
// A book starts available (IsSold=false, BuyerID=nil) and is marked sold
// exactly once by the purchase flow, which also sets the buyer.
type Book struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Title     string          `json:"title" gorm:"size:255;not null"`
	Author    string          `json:"author" gorm:"size:255;not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsSold    bool            `json:"is_sold" gorm:"default:false;index"`
	BuyerID   *uint           `json:"buyer_id,omitempty"`
	Buyer     *User           `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
