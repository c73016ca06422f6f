package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field.
// IsVerified only ever moves from false to true.
type User struct {
	ID         int64
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Country    string
	Image      string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PublicUser is the outward projection of a User. It has no password field.
type PublicUser struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Country    string    `json:"country"`
	Image      string    `json:"image"`
	IsVerified bool      `json:"isVerify"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Country:    u.Country,
		Image:      u.Image,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UserPatch holds the profile fields an update may change. A nil field
// leaves the current value in place; a pointer to "" clears it.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Country   *string
	Image     *string
}

// Apply copies the set fields of p onto u and reports whether anything changed.
func (p UserPatch) Apply(u *User) bool {
	changed := false
	set := func(dst *string, v *string) {
		if v != nil && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.Country, p.Country)
	set(&u.Image, p.Image)
	return changed
}
