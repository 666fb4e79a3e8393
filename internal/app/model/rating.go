package model

import (
	"time"
)

// Rating is one user's score for one store. The composite unique index
// guarantees at most one row per (store, user); a resubmission updates
// the existing row instead of inserting a second one.
type Rating struct {
	ID      uint `gorm:"primarykey" json:"id"`
	StoreID uint `gorm:"not null;index:idx_store_user_rating,unique" json:"store_id"`
	UserID  uint `gorm:"not null;index:idx_store_user_rating,unique" json:"user_id"`
	Value   int  `gorm:"not null;check:value >= 1 AND value <= 5" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
