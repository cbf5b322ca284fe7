package entity

import (
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleCA     = "ca"
	RoleAdmin  = "admin"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Name     string `json:"name" firestore:"name"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role     string `json:"role" firestore:"role"`
	Status   string `json:"status" firestore:"status"`
	Verified bool   `json:"verified" firestore:"verified"`

	// Pending email verification code. Never serialized to clients.
	OtpCode      string     `json:"-" firestore:"otpCode,omitempty"`
	OtpExpiresAt *time.Time `json:"-" firestore:"otpExpiresAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// OtpValid reports whether code matches the pending verification code and
// the code has not expired.
func (u *User) OtpValid(code string, now time.Time) bool {
	if u.OtpCode == "" || u.OtpExpiresAt == nil {
		return false
	}
	return u.OtpCode == code && now.Before(*u.OtpExpiresAt)
}

// HasRole is the single capability check used by every operation.
func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsReviewer reports whether the user may verify listings and arbitrate bids.
func (u *User) IsReviewer() bool {
	return u.HasRole(RoleAdmin, RoleCA)
}
