package model

import "time"

// User is an account record. Password stores the bcrypt hash and is never
// serialized. Avatar holds a media-store reference, not a URL.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string    `gorm:"type:varchar(64);uniqueIndex:ux_user_username;not null" json:"username"`
	Email     string    `gorm:"type:varchar(128);uniqueIndex:ux_user_email;not null" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	Age       *int      `json:"age,omitempty"`
	Bio       string    `gorm:"type:varchar(255)" json:"bio"`
	Avatar    string    `gorm:"type:varchar(255)" json:"avatar"`
	IsStaff   bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
