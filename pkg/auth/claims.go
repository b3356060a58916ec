package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when the chat front end
// mints a JWT for a forwarded command.
type AccessTokenPayload struct {
	GuildID int64
	RoleIDs []int64
	// Manager is set when the caller owns the guild or holds a
	// manage-guild-equivalent permission; it bypasses role level checks.
	Manager bool
	JTI     string
}

// AccessTokenClaims represents the typed JWT attached to forwarded commands.
type AccessTokenClaims struct {
	GuildID int64   `json:"guild_id"`
	RoleIDs []int64 `json:"role_ids,omitempty"`
	Manager bool    `json:"manager,omitempty"`
	jwt.RegisteredClaims
}
