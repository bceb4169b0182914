package domain

import "time"

const (
	DefaultAbout  = "Пока ничего не рассказал о себе"
	DefaultAvatar = "https://i.pravatar.cc/300"
)

// User represents a registered account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	About     string    `json:"about"`
	Avatar    string    `json:"avatar"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate carries optional profile changes. Nil fields stay untouched.
type UserUpdate struct {
	Username *string
	About    *string
	Avatar   *string
	Email    *string
	Password *string
}
