package dto

type RealtimeSessionTokenResponse struct {
	ClientSecret string `json:"client_secret"`
	SessionId    string `json:"session_id"`
	ExpiresAt    string `json:"expires_at"`
}

type FeedTokenRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type FeedTokenResponse struct {
	Token string `json:"token"`
}
