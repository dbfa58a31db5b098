package auth

import "errors"

// Tokens are issued by the identity provider; this service only verifies them.
var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrEmployeeClaimAbsent = errors.New("token carries no employee_id claim")
	ErrAdminAccessRequired = errors.New("admin access required")
)
