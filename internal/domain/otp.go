package domain

import "time"

// OTPPurpose acota el uso de un OTP.
type OTPPurpose string

const (
	PurposeVerifyEmail   OTPPurpose = "VERIFY_EMAIL"
	PurposeResetPassword OTPPurpose = "RESET_PASSWORD"
)

func (p OTPPurpose) Valid() bool {
	return p == PurposeVerifyEmail || p == PurposeResetPassword
}

// OTP es un codigo de un solo uso persistido unicamente como hash.
type OTP struct {
	ID        string
	UserID    string
	Email     string
	Purpose   OTPPurpose
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ExpiredAt reporta si el codigo ya no es valido en el instante now.
func (o OTP) ExpiredAt(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
