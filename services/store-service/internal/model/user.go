package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered identity. Credential and token fields never leave the service.
type User struct {
	ID                   bson.ObjectID `bson:"_id,omitempty"                    json:"id"`
	FirstName            string        `bson:"firstname"                        json:"firstname"`
	LastName             string        `bson:"lastname"                         json:"lastname"`
	Email                string        `bson:"email"                            json:"email"`
	Mobile               string        `bson:"mobile,omitempty"                 json:"mobile,omitempty"`
	PasswordHash         string        `bson:"password_hash"                    json:"-"`
	Role                 Role          `bson:"role"                             json:"role"`
	IsBlocked            bool          `bson:"is_blocked"                       json:"is_blocked"`
	RefreshToken         string        `bson:"refresh_token,omitempty"          json:"-"`
	PasswordChangedAt    *time.Time    `bson:"password_changed_at,omitempty"    json:"password_changed_at,omitempty"`
	PasswordResetToken   string        `bson:"password_reset_token,omitempty"   json:"-"`
	PasswordResetExpires *time.Time    `bson:"password_reset_expires,omitempty" json:"-"`
	CreatedAt            time.Time     `bson:"created_at"                       json:"created_at"`
	UpdatedAt            time.Time     `bson:"updated_at"                       json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Sanitized returns a copy of u with every credential and token field cleared.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	c := *u
	c.PasswordHash = ""
	c.RefreshToken = ""
	c.PasswordResetToken = ""
	c.PasswordResetExpires = nil

	return &c
}
