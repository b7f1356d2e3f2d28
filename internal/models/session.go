package models

import "time"

// Session binds an opaque token to an authenticated user
type Session struct {
	Token     string    `json:"-"` // opaque, never serialized
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
