package domain

import "time"

const RoleAdmin = "admin"

// Identity is the trusted result of verifying a bearer token.
type Identity struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Anonymous reports whether no verified identity is bound.
func (i Identity) Anonymous() bool { return i.Email == "" }

// User is a registered account. Role is written only by admin promotion.
type User struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role      string    `json:"role,omitempty" bson:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
