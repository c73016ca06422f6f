package entity

import "time"

// CodePurpose scopes a one-time code to the operation it authorizes.
type CodePurpose string

const (
	PurposeVerifyEmail   CodePurpose = "verify_email"
	PurposeResetPassword CodePurpose = "reset_password"
)

// EmailCode is a single-use code mailed to a user. It is deleted in the same
// transaction as the change it authorizes.
type EmailCode struct {
	ID        int64
	Code      string
	UserID    int64
	Purpose   CodePurpose
	CreatedAt time.Time
	UpdatedAt time.Time
}
