package models

import "time"

// OAuthCredential is a stored third-party API token, keyed by provider name.
type OAuthCredential struct {
	Provider       string    `json:"provider" db:"provider"`
	AccessToken    string    `json:"accessToken" db:"access_token"`
	RefreshToken   string    `json:"refreshToken" db:"refresh_token"`
	DateCreatedUtc time.Time `json:"dateCreatedUtc" db:"date_created_utc"`
	DateExpiresUtc time.Time `json:"dateExpiresUtc" db:"date_expires_utc"`
	UserID         *int64    `json:"userId,omitempty" db:"user_id"`
}

// Expired reports whether the credential has a known expiry that has passed.
func (c *OAuthCredential) Expired(now time.Time) bool {
	return !c.DateExpiresUtc.IsZero() && !now.Before(c.DateExpiresUtc)
}

// Redacted returns a copy with the tokens masked, for listing in the UI.
func (c OAuthCredential) Redacted() OAuthCredential {
	c.AccessToken = mask(c.AccessToken)
	c.RefreshToken = mask(c.RefreshToken)
	return c
}

func mask(token string) string {
	if len(token) <= 4 {
		if token == "" {
			return ""
		}
		return "****"
	}
	return "****" + token[len(token)-4:]
}
