package model

import (
	"time"
)

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"` // unique, matched case-insensitively
	Email        string    `json:"email"`    // unique, matched case-insensitively
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// SellerSummary is the public view of a user attached to product detail
// responses. It deliberately exposes only id and username.
type SellerSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u *User) Summary() *SellerSummary {
	return &SellerSummary{ID: u.ID, Username: u.Username}
}
