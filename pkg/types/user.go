package types

import "time"

// User is an account row in the admin console.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	RoleName    string    `json:"roleName,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserUpdate is a partial profile change. Nil fields are not sent.
type UserUpdate struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,max=120"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Apply copies the set fields onto u.
func (p UserUpdate) Apply(u User) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.ImageURL != nil {
		u.ImageURL = *p.ImageURL
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}

// NewUser is the admin create body of POST /api/user.
type NewUser struct {
	FullName    string `json:"fullName" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=32"`
	RoleName    string `json:"roleName" validate:"required,oneof=USER ADMIN"`
}
