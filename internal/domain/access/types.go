package access

import "time"

// Config drives bearer token validation for protected endpoints.
type Config struct {
	Secret string
	Issuer string
}

// Claims is the validated subset of a bearer token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}
