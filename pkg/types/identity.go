package types

import "github.com/angelmondragon/scent-storefront/pkg/enums"

// Identity is the signed-in account as reported by the backend.
type Identity struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Role        enums.Role `json:"roleName"`
}

// IsAdmin reports whether the identity may use the admin console.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role.IsAdmin()
}
