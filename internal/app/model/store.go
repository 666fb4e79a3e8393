package model

import (
	"time"
)

type Store struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Address string `gorm:"type:varchar(400)" json:"address"`

	// One store per owner: the unique index is the backstop for the
	// check-then-create in OwnerCreateStore under concurrent requests.
	OwnerID uint `gorm:"not null;uniqueIndex" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// Cached average of all ratings for this store, rounded to one
	// decimal. 0 when unrated. Recomputed on every rating write and
	// reconciled hourly by the scheduler.
	Rating float64 `gorm:"not null;default:0" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Ratings []Rating `gorm:"foreignKey:StoreID" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
