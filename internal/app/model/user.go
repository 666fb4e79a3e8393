package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
	RoleStoreOwner UserRole = "store_owner"
)

// ValidRole reports whether s is one of the three known roles.
// Role checks everywhere go through the UserRole constants; free-form
// strings never reach the database.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Address      string   `gorm:"type:varchar(400)" json:"address"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// A store_owner owns at most one store (enforced by the unique index
	// on stores.owner_id). Deletes are hard deletes so the cascade in
	// UserService keeps ratings and stores consistent.
	Store *Store `gorm:"foreignKey:OwnerID" json:"store,omitempty"`
}

func (User) TableName() string {
	return "users"
}
