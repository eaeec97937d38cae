package dto

import "time"

// AuthResponse is returned on successful login, registration or refresh.
type AuthResponse struct {
	User               UserResponse `json:"user"`
	AccessToken        string       `json:"accessToken"`
	AccessTokenExpiry  time.Time    `json:"accessTokenExpiry"`
	RefreshToken       string       `json:"refreshToken"`
	RefreshTokenExpiry time.Time    `json:"refreshTokenExpiry"`
}
