package dto

import "time"

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned when a token is generated.
type TokenResponse struct {
	Token string `json:"token"`
}

// VerifyTokenResponse is the outcome of a verification. Removed reports
// whether the matched token was consumed by this call.
type VerifyTokenResponse struct {
	Valid   bool `json:"valid"`
	Removed bool `json:"removed"`
}

// StatsResponse is a snapshot of a session's token registry.
type StatsResponse struct {
	Size    int  `json:"size"`
	Empty   bool `json:"empty"`
	Entropy int  `json:"entropy"`
	Maximum int  `json:"maximum"`
}
