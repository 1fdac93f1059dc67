package user

import (
	"time"
)

// User is a staff credential for the shop backend. The active session
// token is stored on the row so logout can revoke it server-side.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"type:varchar(255);not null;unique" json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Token        *string `gorm:"type:varchar(512);index" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
