package models

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cents is a money amount stored as an integer number of cents.
// JSON values are plain decimal numbers (9.99); input is rounded
// half-up to the nearest cent, so subtotals and totals are exact.
type Cents int64

func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c) / 100)
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Cents(math.Round(f * 100))
	return nil
}

type Product struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null"             json:"name"`
	Description string `gorm:"not null"             json:"description"`
	Price       Cents  `gorm:"not null"             json:"price"`
	Image       string `json:"image"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null"             json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CartLine holds one (user, product) cart entry. The composite unique
// index keeps at most one line per pair even under concurrent adds.
type CartLine struct {
	ID        string `gorm:"primaryKey;type:uuid"                            json:"id"`
	UserID    string `gorm:"uniqueIndex:idx_user_product;type:uuid;not null" json:"user_id"`
	ProductID string `gorm:"uniqueIndex:idx_user_product;type:uuid;not null" json:"product_id"`
	Quantity  uint   `gorm:"check:quantity>0"                                json:"quantity"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}
